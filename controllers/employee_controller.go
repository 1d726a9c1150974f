package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/utils"
	"gorm.io/gorm"
)

var employeePhonePattern = regexp.MustCompile(`^\d{10}$`)

// CreateEmployeeRequest represents the request body for employee registration
type CreateEmployeeRequest struct {
	PhoneNumber    string `json:"phoneNumber"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// UpdateEmployeeRequest represents a partial employee profile update
type UpdateEmployeeRequest struct {
	Name           utils.Optional[string] `json:"name"`
	Email          utils.Optional[string] `json:"email"`
	Specialization utils.Optional[string] `json:"specialization"`
	Status         utils.Optional[string] `json:"status"`
}

// GetEmployeeProfile handles GET /api/employee/profile?phone=&id= - matches
// either identifier when both are supplied
func GetEmployeeProfile(c *gin.Context) {
	phone := c.Query("phone")
	id, idPresent, idValid := queryInt(c, "id")

	if phone == "" && !idPresent {
		respondError(c, http.StatusBadRequest, "Either phone number or id parameter is required", "MISSING_PARAMETER")
		return
	}
	if idPresent && !idValid {
		respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
		return
	}

	query := config.GetDB().WithContext(c.Request.Context()).Model(&models.Employee{})
	switch {
	case idPresent && phone != "":
		query = query.Where("id = ? OR phone_number = ?", id, phone)
	case idPresent:
		query = query.Where("id = ?", id)
	default:
		query = query.Where("phone_number = ?", phone)
	}

	var employee models.Employee
	if err := query.Take(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Employee not found", "EMPLOYEE_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// CreateEmployeeProfile handles POST /api/employee/profile - explicit registration
func CreateEmployeeProfile(c *gin.Context) {
	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	specialization := strings.TrimSpace(req.Specialization)
	if req.PhoneNumber == "" || name == "" || specialization == "" {
		respondError(c, http.StatusBadRequest, "Phone number, name, and specialization are required", "MISSING_FIELDS")
		return
	}
	if !employeePhonePattern.MatchString(req.PhoneNumber) {
		respondError(c, http.StatusBadRequest, "Invalid phone number format. Must be 10 digits", "INVALID_PHONE")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.Employee{}).Where("phone_number = ?", req.PhoneNumber).Count(&count).Error; err != nil {
		respondInternalError(c, err)
		return
	}
	if count > 0 {
		respondEmployeeExists(c)
		return
	}

	timestamp := models.Now()
	employee := models.Employee{
		PhoneNumber:    req.PhoneNumber,
		Name:           name,
		Specialization: specialization,
		Status:         models.EmployeeStatusAvailable,
		CreatedAt:      timestamp,
		UpdatedAt:      timestamp,
	}

	if err := db.Create(&employee).Error; err != nil {
		if isUniqueViolation(err) {
			respondEmployeeExists(c)
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployeeProfile handles PUT /api/employee/profile?id= - partial update,
// updatedAt is always refreshed
func UpdateEmployeeProfile(c *gin.Context) {
	id, present, valid := queryInt(c, "id")
	if !present {
		respondError(c, http.StatusBadRequest, "ID parameter is required", "MISSING_PARAMETER")
		return
	}
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var employee models.Employee
	if err := db.Take(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Employee not found", "EMPLOYEE_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{
		"updated_at": models.Now(),
	}
	// name, specialization and status are NOT NULL, so null leaves them alone
	if req.Name.Set && !req.Name.Null {
		updates["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.Email.Set {
		if req.Email.Null {
			updates["email"] = nil
		} else {
			updates["email"] = strings.ToLower(strings.TrimSpace(req.Email.Value))
		}
	}
	if req.Specialization.Set && !req.Specialization.Null {
		updates["specialization"] = strings.TrimSpace(req.Specialization.Value)
	}
	if req.Status.Set && !req.Status.Null {
		updates["status"] = req.Status.Value
	}

	if err := db.Model(&models.Employee{}).Where("id = ?", employee.ID).Updates(updates).Error; err != nil {
		respondInternalError(c, err)
		return
	}
	var updated models.Employee
	if err := db.Take(&updated, employee.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Employee not found", "EMPLOYEE_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func respondEmployeeExists(c *gin.Context) {
	respondError(c, http.StatusConflict, "Employee with this phone number already exists", "EMPLOYEE_EXISTS")
}
