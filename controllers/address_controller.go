package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/utils"
	"gorm.io/gorm"
)

// errAddressVanished marks an address deleted between the existence check and the re-read
var errAddressVanished = errors.New("address vanished during update")

// CreateAddressRequest represents the request body for adding an address
type CreateAddressRequest struct {
	UserID            utils.FlexInt `json:"userId"`
	ApartmentBuilding *string       `json:"apartmentBuilding"`
	StreetArea        *string       `json:"streetArea"`
	City              *string       `json:"city"`
	State             *string       `json:"state"`
	Pincode           *string       `json:"pincode"`
	IsDefault         bool          `json:"isDefault"`
}

// UpdateAddressRequest represents a partial address update; only sent keys change
type UpdateAddressRequest struct {
	ApartmentBuilding utils.Optional[string] `json:"apartmentBuilding"`
	StreetArea        utils.Optional[string] `json:"streetArea"`
	City              utils.Optional[string] `json:"city"`
	State             utils.Optional[string] `json:"state"`
	Pincode           utils.Optional[string] `json:"pincode"`
	IsDefault         utils.Optional[bool]   `json:"isDefault"`
}

// ListAddresses handles GET /api/addresses?userId= - default address first, then newest
func ListAddresses(c *gin.Context) {
	userID, _, valid := queryInt(c, "userId")
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid userId is required", "INVALID_USER_ID")
		return
	}

	addresses := []models.Address{}
	err := config.GetDB().WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&addresses).Error
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// CreateAddress handles POST /api/addresses - a default address replaces the
// user's previous default atomically
func CreateAddress(c *gin.Context) {
	var req CreateAddressRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.UserID.Present {
		respondError(c, http.StatusBadRequest, "userId is required", "MISSING_USER_ID")
		return
	}
	if !req.UserID.IsID() {
		respondError(c, http.StatusBadRequest, "userId must be a valid number", "INVALID_USER_ID")
		return
	}

	address := models.Address{
		UserID:            req.UserID.Uint(),
		ApartmentBuilding: trimOrNil(req.ApartmentBuilding),
		StreetArea:        trimOrNil(req.StreetArea),
		City:              trimOrNil(req.City),
		State:             trimOrNil(req.State),
		Pincode:           trimOrNil(req.Pincode),
		IsDefault:         req.IsDefault,
		CreatedAt:         models.Now(),
	}

	err := config.GetDB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaultAddresses(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// UpdateAddress handles PUT /api/addresses?id= - partial update
func UpdateAddress(c *gin.Context) {
	id, _, valid := queryInt(c, "id")
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var existing models.Address
	if err := db.Take(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Address not found", "ADDRESS_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	var req UpdateAddressRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	setOptionalString(updates, "apartment_building", req.ApartmentBuilding)
	setOptionalString(updates, "street_area", req.StreetArea)
	setOptionalString(updates, "city", req.City)
	setOptionalString(updates, "state", req.State)
	setOptionalString(updates, "pincode", req.Pincode)
	if req.IsDefault.Set && !req.IsDefault.Null {
		updates["is_default"] = req.IsDefault.Value
	}

	var updated models.Address
	err := db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault.Set && !req.IsDefault.Null && req.IsDefault.Value {
			if err := clearDefaultAddresses(tx, existing.UserID); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Address{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := tx.Take(&updated, existing.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAddressVanished
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errAddressVanished) {
		respondError(c, http.StatusNotFound, "Address not found", "ADDRESS_NOT_FOUND")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func clearDefaultAddresses(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

// setOptionalString records a trimmed string update; explicit null or blank clears the column
func setOptionalString(updates map[string]interface{}, column string, field utils.Optional[string]) {
	if !field.Set {
		return
	}
	if value := trimOrNil(field.Ptr()); value != nil {
		updates[column] = *value
		return
	}
	updates[column] = nil
}
