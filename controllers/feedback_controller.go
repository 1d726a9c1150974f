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

// CreateFeedbackRequest represents the request body for rating a booking
type CreateFeedbackRequest struct {
	BookingID utils.FlexInt `json:"bookingId"`
	UserID    utils.FlexInt `json:"userId"`
	Rating    utils.FlexInt `json:"rating"`
	Comments  *string       `json:"comments"`
}

// GetFeedback handles GET /api/feedback?bookingId=
func GetFeedback(c *gin.Context) {
	bookingID, _, valid := queryInt(c, "bookingId")
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid bookingId is required", "INVALID_BOOKING_ID")
		return
	}

	var feedback models.Feedback
	err := config.GetDB().WithContext(c.Request.Context()).
		Where("booking_id = ?", bookingID).
		Take(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Feedback not found for this booking", "FEEDBACK_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// CreateFeedback handles POST /api/feedback - one feedback per booking
func CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.BookingID.Present {
		respondError(c, http.StatusBadRequest, "bookingId is required", "MISSING_BOOKING_ID")
		return
	}
	if !req.UserID.Present {
		respondError(c, http.StatusBadRequest, "userId is required", "MISSING_USER_ID")
		return
	}
	if !req.Rating.Present {
		respondError(c, http.StatusBadRequest, "rating is required", "MISSING_RATING")
		return
	}
	if !req.BookingID.IsID() {
		respondError(c, http.StatusBadRequest, "bookingId must be a valid integer", "INVALID_BOOKING_ID")
		return
	}
	if !req.UserID.IsID() {
		respondError(c, http.StatusBadRequest, "userId must be a valid integer", "INVALID_USER_ID")
		return
	}
	if !req.Rating.Valid {
		respondError(c, http.StatusBadRequest, "rating must be a valid integer", "INVALID_RATING")
		return
	}
	if req.Rating.Value < 1 || req.Rating.Value > 5 {
		respondError(c, http.StatusBadRequest, "rating must be between 1 and 5", "INVALID_RATING_RANGE")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.Feedback{}).Where("booking_id = ?", req.BookingID.Uint()).Count(&count).Error; err != nil {
		respondInternalError(c, err)
		return
	}
	if count > 0 {
		respondDuplicateFeedback(c)
		return
	}

	feedback := models.Feedback{
		BookingID: req.BookingID.Uint(),
		UserID:    req.UserID.Uint(),
		Rating:    req.Rating.Value,
		Comments:  trimOrNil(req.Comments),
		CreatedAt: models.Now(),
	}

	if err := db.Create(&feedback).Error; err != nil {
		// The unique index on booking_id catches a concurrent submission
		if isUniqueViolation(err) {
			respondDuplicateFeedback(c)
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func respondDuplicateFeedback(c *gin.Context) {
	respondError(c, http.StatusBadRequest, "Feedback already submitted for this booking", "DUPLICATE_FEEDBACK")
}
