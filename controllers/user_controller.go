package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/models"
	"gorm.io/gorm"
)

// CreateUserRequest represents the request body for the get-or-create login call
type CreateUserRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Name        *string `json:"name"`
}

// GetUser handles GET /api/users?id=|phone= - looks a user up by id (preferred) or phone
func GetUser(c *gin.Context) {
	rawID := c.Query("id")
	phone := c.Query("phone")

	if rawID == "" && phone == "" {
		respondError(c, http.StatusBadRequest, "Either ID or phone number parameter is required", "MISSING_PARAMETER")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())
	query := db.Model(&models.User{})
	if rawID != "" {
		id, _, valid := queryInt(c, "id")
		if !valid {
			respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
			return
		}
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("phone_number = ?", phone)
	}

	var user models.User
	if err := query.Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found", "USER_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users - returns the existing user for a phone
// number (200) or registers a new one (201)
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		respondError(c, http.StatusBadRequest, "Phone number is required", "PHONE_NUMBER_REQUIRED")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	existing, err := findUserByPhone(db, phone)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	timestamp := models.Now()
	user := models.User{
		PhoneNumber: phone,
		Name:        trimOrNil(req.Name),
		CreatedAt:   timestamp,
		UpdatedAt:   timestamp,
	}

	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent login for the same phone
		if isUniqueViolation(err) {
			winner, findErr := findUserByPhone(db, phone)
			if findErr == nil && winner != nil {
				c.JSON(http.StatusOK, winner)
				return
			}
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func findUserByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	err := db.Where("phone_number = ?", phone).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
