package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestDB(t)
	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performRequest sends body as JSON; a string body is sent verbatim
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

func strPtr(s string) *string {
	return &s
}

func createTestUser(t *testing.T, db *gorm.DB, phone string) models.User {
	t.Helper()
	now := models.Now()
	user := models.User{PhoneNumber: phone, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestBooking(t *testing.T, db *gorm.DB, userID uint, createdAt string) models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:      userID,
		AddressID:   1,
		ServiceType: models.ServicePlumber,
		Status:      models.StatusPending,
		BookingDate: createdAt,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func createTestEmployee(t *testing.T, db *gorm.DB, phone string) models.Employee {
	t.Helper()
	now := models.Now()
	employee := models.Employee{
		PhoneNumber:    phone,
		Name:           "Ramesh Yadav",
		Specialization: models.ServicePlumber,
		Status:         models.EmployeeStatusAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
