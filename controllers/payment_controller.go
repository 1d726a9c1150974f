package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/utils"
	"gorm.io/gorm"
)

// defaultServiceCharge applies when no configuration has been loaded
const defaultServiceCharge = 499

var (
	cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3}$`)
)

// CreatePaymentRequest represents the card form submitted from the payment dialog
type CreatePaymentRequest struct {
	BookingID  utils.FlexInt `json:"bookingId"`
	Amount     utils.FlexInt `json:"amount"`
	CardNumber string        `json:"cardNumber"`
	ExpiryDate string        `json:"expiryDate"`
	CVV        string        `json:"cvv"`
}

// ListPayments handles GET /api/payments?bookingId= - newest first
func ListPayments(c *gin.Context) {
	bookingID, _, valid := queryInt(c, "bookingId")
	if !valid {
		respondError(c, http.StatusBadRequest, "Valid bookingId is required", "INVALID_BOOKING_ID")
		return
	}

	payments := []models.Payment{}
	err := config.GetDB().WithContext(c.Request.Context()).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&payments).Error
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// CreatePayment handles POST /api/payments - a simulated gateway that accepts
// any well-formed card. The booking's status is left to the client.
func CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.BookingID.Present {
		respondError(c, http.StatusBadRequest, "bookingId is required", "MISSING_BOOKING_ID")
		return
	}
	if !req.BookingID.IsID() {
		respondError(c, http.StatusBadRequest, "bookingId must be a valid integer", "INVALID_BOOKING_ID")
		return
	}

	cardNumber := strings.Join(strings.Fields(req.CardNumber), "")
	expiry := strings.TrimSpace(req.ExpiryDate)
	cvv := strings.TrimSpace(req.CVV)
	if cardNumber == "" || expiry == "" || cvv == "" {
		respondError(c, http.StatusBadRequest, "cardNumber, expiryDate and cvv are required", "MISSING_CARD_DETAILS")
		return
	}
	if !cardNumberPattern.MatchString(cardNumber) || !cardExpiryPattern.MatchString(expiry) || !cardCVVPattern.MatchString(cvv) {
		respondError(c, http.StatusBadRequest, "Card details are invalid", "INVALID_CARD_DETAILS")
		return
	}

	amount := serviceCharge()
	if req.Amount.Present {
		if !req.Amount.Valid || req.Amount.Value <= 0 {
			respondError(c, http.StatusBadRequest, "amount must be a positive integer", "INVALID_AMOUNT")
			return
		}
		amount = req.Amount.Value
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var booking models.Booking
	if err := db.Take(&booking, req.BookingID.Uint()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	payment := models.Payment{
		BookingID: booking.ID,
		Amount:    amount,
		CardLast4: cardNumber[len(cardNumber)-4:],
		Status:    models.PaymentStatusSuccess,
		Reference: uuid.New().String(),
		CreatedAt: models.Now(),
	}

	if err := db.Create(&payment).Error; err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func serviceCharge() int {
	if cfg := config.GetConfig(); cfg != nil && cfg.ServiceCharge > 0 {
		return cfg.ServiceCharge
	}
	return defaultServiceCharge
}
