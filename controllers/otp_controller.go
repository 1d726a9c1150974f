package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/metrics"
	"github.com/kendall-kelly/snapfix-api/services"
	"github.com/kendall-kelly/snapfix-api/utils"
	"gorm.io/gorm"
)

// OTP actions
const (
	otpActionGenerate = "generate"
	otpActionVerify   = "verify"
)

// defaultOTPTTL applies when no configuration has been loaded
const defaultOTPTTL = 5 * time.Minute

// OTPRequest represents the request body shared by the user and employee OTP routes
type OTPRequest struct {
	PhoneNumber utils.StringField `json:"phoneNumber"`
	Action      utils.StringField `json:"action"`
	OtpCode     utils.StringField `json:"otpCode"`
}

// UserOTP handles POST /api/otp - issues or verifies a customer login code
func UserOTP(c *gin.Context) {
	handleOTP(c, metrics.AudienceUser, services.NewUserOTPService)
}

// EmployeeOTP handles POST /api/employee/otp - issues or verifies an employee login code
func EmployeeOTP(c *gin.Context) {
	handleOTP(c, metrics.AudienceEmployee, services.NewEmployeeOTPService)
}

func handleOTP(c *gin.Context, audience string, newService func(*gorm.DB, time.Duration) *services.OTPService) {
	var req OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	phone := strings.TrimSpace(req.PhoneNumber.Value)
	if !req.PhoneNumber.IsString || phone == "" {
		respondError(c, http.StatusBadRequest, "Phone number is required", "MISSING_PHONE_NUMBER")
		return
	}

	// only an omitted action defaults; null or a non-string is rejected below
	action := otpActionGenerate
	if req.Action.Set {
		action = req.Action.Value
		if !req.Action.IsString {
			action = ""
		}
	}

	svc := newService(config.GetDB(), otpTTL())
	ctx := c.Request.Context()

	switch action {
	case otpActionGenerate:
		record, err := svc.Generate(ctx, phone)
		if err != nil {
			respondInternalError(c, err)
			return
		}
		metrics.RecordOTPGenerated(audience)

		// No SMS gateway: the code goes back to the caller
		c.JSON(http.StatusCreated, gin.H{
			"message": "OTP sent successfully",
			"otpCode": record.OtpCode,
		})

	case otpActionVerify:
		code := strings.TrimSpace(req.OtpCode.Value)
		if !req.OtpCode.IsString || code == "" {
			respondError(c, http.StatusBadRequest, "OTP code is required for verification", "MISSING_OTP_CODE")
			return
		}

		err := svc.Verify(ctx, phone, code)
		switch {
		case err == nil:
			metrics.RecordOTPVerified(audience, metrics.OutcomeSuccess)
			c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
		case errors.Is(err, services.ErrOTPNotFound):
			metrics.RecordOTPVerified(audience, metrics.OutcomeNotFound)
			respondError(c, http.StatusBadRequest, "No valid OTP found for this phone number", "OTP_NOT_FOUND")
		case errors.Is(err, services.ErrOTPMismatch):
			metrics.RecordOTPVerified(audience, metrics.OutcomeMismatch)
			respondError(c, http.StatusBadRequest, "Invalid OTP code", "INVALID_OTP")
		case errors.Is(err, services.ErrOTPExpired):
			metrics.RecordOTPVerified(audience, metrics.OutcomeExpired)
			respondError(c, http.StatusBadRequest, "OTP has expired", "OTP_EXPIRED")
		default:
			metrics.RecordOTPVerified(audience, metrics.OutcomeError)
			respondInternalError(c, err)
		}

	default:
		respondError(c, http.StatusBadRequest, `Invalid action. Must be "generate" or "verify"`, "INVALID_ACTION")
	}
}

func otpTTL() time.Duration {
	if cfg := config.GetConfig(); cfg != nil && cfg.OTPTTL > 0 {
		return cfg.OTPTTL
	}
	return defaultOTPTTL
}
