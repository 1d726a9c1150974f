package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/metrics"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/services"
	"github.com/kendall-kelly/snapfix-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	UserID          utils.FlexInt `json:"userId"`
	AddressID       utils.FlexInt `json:"addressId"`
	ServiceType     string        `json:"serviceType"`
	SubService      *string       `json:"subService"`
	WorkDescription *string       `json:"workDescription"`
	PhotoURL        *string       `json:"photoUrl"`
	PhotoKey        *string       `json:"photoKey"`
	BookingDate     *string       `json:"bookingDate"`
}

// UpdateBookingRequest represents a partial booking update; only sent keys change
type UpdateBookingRequest struct {
	Status              utils.Optional[string] `json:"status"`
	ProfessionalName    utils.Optional[string] `json:"professionalName"`
	ProfessionalContact utils.Optional[string] `json:"professionalContact"`
	CompletionDate      utils.Optional[string] `json:"completionDate"`
	ServiceType         utils.Optional[string] `json:"serviceType"`
	SubService          utils.Optional[string] `json:"subService"`
	WorkDescription     utils.Optional[string] `json:"workDescription"`
	PhotoURL            utils.Optional[string] `json:"photoUrl"`
	PhotoKey            utils.Optional[string] `json:"photoKey"`
	BookingDate         utils.Optional[string] `json:"bookingDate"`
}

var (
	invalidServiceTypeMessage = fmt.Sprintf("serviceType must be one of: %s", strings.Join(models.ServiceTypes, ", "))
	invalidStatusMessage      = fmt.Sprintf("status must be one of: %s", strings.Join(models.BookingStatuses, ", "))
)

// GetBookings handles GET /api/bookings?id=|userId= - one booking by id, or a
// user's bookings newest first
func GetBookings(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	if id, present, valid := queryInt(c, "id"); present {
		if !valid {
			respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
			return
		}

		var booking models.Booking
		if err := db.Take(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
				return
			}
			respondInternalError(c, err)
			return
		}
		withPhotoURL(c, &booking)
		c.JSON(http.StatusOK, booking)
		return
	}

	if userID, present, valid := queryInt(c, "userId"); present {
		if !valid {
			respondError(c, http.StatusBadRequest, "Valid userId is required", "INVALID_USER_ID")
			return
		}

		bookings := []models.Booking{}
		err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Order("id DESC").
			Find(&bookings).Error
		if err != nil {
			respondInternalError(c, err)
			return
		}
		for i := range bookings {
			withPhotoURL(c, &bookings[i])
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	respondError(c, http.StatusBadRequest, "Either id or userId parameter is required", "MISSING_PARAMETER")
}

// CreateBooking handles POST /api/bookings - new bookings always start pending
func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.UserID.Present {
		respondError(c, http.StatusBadRequest, "userId is required", "MISSING_USER_ID")
		return
	}
	if !req.AddressID.Present {
		respondError(c, http.StatusBadRequest, "addressId is required", "MISSING_ADDRESS_ID")
		return
	}
	if req.ServiceType == "" {
		respondError(c, http.StatusBadRequest, "serviceType is required", "MISSING_SERVICE_TYPE")
		return
	}
	if !req.UserID.IsID() {
		respondError(c, http.StatusBadRequest, "userId must be a valid integer", "INVALID_USER_ID")
		return
	}
	if !req.AddressID.IsID() {
		respondError(c, http.StatusBadRequest, "addressId must be a valid integer", "INVALID_ADDRESS_ID")
		return
	}

	serviceType, ok := models.NormalizeServiceType(req.ServiceType)
	if !ok {
		respondError(c, http.StatusBadRequest, invalidServiceTypeMessage, "INVALID_SERVICE_TYPE")
		return
	}

	now := models.Now()
	bookingDate := now
	if req.BookingDate != nil && *req.BookingDate != "" {
		bookingDate = *req.BookingDate
	}

	booking := models.Booking{
		UserID:          req.UserID.Uint(),
		AddressID:       req.AddressID.Uint(),
		ServiceType:     serviceType,
		SubService:      emptyToNil(req.SubService),
		WorkDescription: emptyToNil(req.WorkDescription),
		PhotoURL:        emptyToNil(req.PhotoURL),
		PhotoKey:        emptyToNil(req.PhotoKey),
		Status:          models.StatusPending,
		BookingDate:     bookingDate,
		CreatedAt:       now,
	}

	if err := config.GetDB().WithContext(c.Request.Context()).Create(&booking).Error; err != nil {
		respondInternalError(c, err)
		return
	}
	metrics.RecordBookingCreated(serviceType)

	withPhotoURL(c, &booking)
	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PUT /api/bookings?id= - overwrites any subset of the
// mutable fields. Status changes are not restricted to a transition table.
func UpdateBooking(c *gin.Context) {
	id, _, valid := queryInt(c, "id")
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid ID is required", "INVALID_ID")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var booking models.Booking
	if err := db.Take(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{}

	if req.Status.Set {
		status, ok := models.NormalizeBookingStatus(req.Status.Value)
		if req.Status.Null || !ok {
			respondError(c, http.StatusBadRequest, invalidStatusMessage, "INVALID_STATUS")
			return
		}
		updates["status"] = status
	}
	if req.ServiceType.Set {
		serviceType, ok := models.NormalizeServiceType(req.ServiceType.Value)
		if req.ServiceType.Null || !ok {
			respondError(c, http.StatusBadRequest, invalidServiceTypeMessage, "INVALID_SERVICE_TYPE")
			return
		}
		updates["service_type"] = serviceType
	}

	setOptionalRaw(updates, "professional_name", req.ProfessionalName)
	setOptionalRaw(updates, "professional_contact", req.ProfessionalContact)
	setOptionalRaw(updates, "completion_date", req.CompletionDate)
	setOptionalRaw(updates, "sub_service", req.SubService)
	setOptionalRaw(updates, "work_description", req.WorkDescription)
	setOptionalRaw(updates, "photo_url", req.PhotoURL)
	setOptionalRaw(updates, "photo_key", req.PhotoKey)
	if req.BookingDate.Set && !req.BookingDate.Null {
		updates["booking_date"] = req.BookingDate.Value
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
			respondInternalError(c, err)
			return
		}
		var updated models.Booking
		if err := db.Take(&updated, booking.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
				return
			}
			respondInternalError(c, err)
			return
		}
		booking = updated
	}

	withPhotoURL(c, &booking)
	c.JSON(http.StatusOK, booking)
}

// withPhotoURL replaces PhotoURL with a freshly signed URL for PhotoKey.
// On failure the stored URL is kept and the error logged.
func withPhotoURL(c *gin.Context, booking *models.Booking) {
	if booking.PhotoKey == nil || *booking.PhotoKey == "" {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	url, err := imageService.GetImageURL(c.Request.Context(), *booking.PhotoKey)
	if err != nil {
		logger.FromContext(c).Warn("failed to sign photo URL",
			zap.Uint("booking_id", booking.ID),
			zap.String("photo_key", *booking.PhotoKey),
			zap.Error(err),
		)
		return
	}
	booking.PhotoURL = &url
}

// setOptionalRaw records an untrimmed string update; explicit null clears the column
func setOptionalRaw(updates map[string]interface{}, column string, field utils.Optional[string]) {
	if !field.Set {
		return
	}
	if field.Null {
		updates[column] = nil
		return
	}
	updates[column] = field.Value
}
