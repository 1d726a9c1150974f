package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/metrics"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOTPRouter() *gin.Engine {
	router := setupTestRouter()
	router.POST("/otp", UserOTP)
	router.POST("/employee/otp", EmployeeOTP)
	return router
}

func generateOTP(t *testing.T, router *gin.Engine, path, phone string) string {
	t.Helper()
	w := performRequest(t, router, http.MethodPost, path, map[string]interface{}{"phoneNumber": phone, "action": "generate"})
	require.Equal(t, http.StatusCreated, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, "OTP sent successfully", response["message"])
	code, ok := response["otpCode"].(string)
	require.True(t, ok)
	require.Len(t, code, 6)
	return code
}

func TestOTP_GenerateThenVerifyOnce(t *testing.T) {
	setupTestDB(t)
	router := setupOTPRouter()

	code := generateOTP(t, router, "/otp", "9876543210")

	verify := map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": code}
	w := performRequest(t, router, http.MethodPost, "/otp", verify)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP verified successfully", decodeObject(t, w)["message"])

	w = performRequest(t, router, http.MethodPost, "/otp", verify)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeObject(t, w)
	assert.Equal(t, "OTP_NOT_FOUND", response["code"])
	assert.Equal(t, "No valid OTP found for this phone number", response["error"])
}

func TestOTP_ActionDefaultsToGenerate(t *testing.T) {
	db := setupTestDB(t)
	router := setupOTPRouter()

	w := performRequest(t, router, http.MethodPost, "/otp", map[string]interface{}{"phoneNumber": "9876543210"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.OtpVerification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOTP_VerifyExpired(t *testing.T) {
	db := setupTestDB(t)
	router := setupOTPRouter()

	code := generateOTP(t, router, "/otp", "9876543210")

	past := models.Timestamp(time.Now().Add(-time.Minute))
	require.NoError(t, db.Model(&models.OtpVerification{}).
		Where("phone_number = ?", "9876543210").
		Update("expires_at", past).Error)

	before := testutil.ToFloat64(metrics.OTPVerifiedTotal.WithLabelValues(metrics.AudienceUser, metrics.OutcomeExpired))

	w := performRequest(t, router, http.MethodPost, "/otp",
		map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OTP_EXPIRED", decodeObject(t, w)["code"])

	after := testutil.ToFloat64(metrics.OTPVerifiedTotal.WithLabelValues(metrics.AudienceUser, metrics.OutcomeExpired))
	assert.Equal(t, before+1, after)
}

func TestOTP_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		expectedCode string
	}{
		{"missing phone", map[string]interface{}{"action": "generate"}, "MISSING_PHONE_NUMBER"},
		{"blank phone", map[string]interface{}{"phoneNumber": "  "}, "MISSING_PHONE_NUMBER"},
		{"numeric phone", map[string]interface{}{"phoneNumber": 9876543210}, "MISSING_PHONE_NUMBER"},
		{"unknown action", map[string]interface{}{"phoneNumber": "9876543210", "action": "resend"}, "INVALID_ACTION"},
		{"null action", map[string]interface{}{"phoneNumber": "9876543210", "action": nil}, "INVALID_ACTION"},
		{"empty action", map[string]interface{}{"phoneNumber": "9876543210", "action": ""}, "INVALID_ACTION"},
		{"numeric action", map[string]interface{}{"phoneNumber": "9876543210", "action": 1}, "INVALID_ACTION"},
		{"verify without code", map[string]interface{}{"phoneNumber": "9876543210", "action": "verify"}, "MISSING_OTP_CODE"},
		{"verify with numeric code", map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": 123456}, "MISSING_OTP_CODE"},
		{"verify with null code", map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": nil}, "MISSING_OTP_CODE"},
		{"verify with nothing issued", map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": "123456"}, "OTP_NOT_FOUND"},
		{"malformed json", `{"phoneNumber"`, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			router := setupOTPRouter()

			w := performRequest(t, router, http.MethodPost, "/otp", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedCode, decodeObject(t, w)["code"])
		})
	}
}

func TestOTP_WrongCode(t *testing.T) {
	setupTestDB(t)
	router := setupOTPRouter()

	code := generateOTP(t, router, "/otp", "9876543210")
	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}

	w := performRequest(t, router, http.MethodPost, "/otp",
		map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": wrong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_OTP", decodeObject(t, w)["code"])

	// The record stays usable after a wrong guess
	w = performRequest(t, router, http.MethodPost, "/otp",
		map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": code})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeOTP_UsesSeparateTable(t *testing.T) {
	db := setupTestDB(t)
	router := setupOTPRouter()

	code := generateOTP(t, router, "/employee/otp", "9876543210")

	var count int64
	db.Model(&models.EmployeeOtpVerification{}).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.OtpVerification{}).Count(&count)
	assert.Equal(t, int64(0), count)

	verify := map[string]interface{}{"phoneNumber": "9876543210", "action": "verify", "otpCode": code}

	w := performRequest(t, router, http.MethodPost, "/otp", verify)
	assert.Equal(t, "OTP_NOT_FOUND", decodeObject(t, w)["code"])

	w = performRequest(t, router, http.MethodPost, "/employee/otp", verify)
	assert.Equal(t, http.StatusOK, w.Code)
}
