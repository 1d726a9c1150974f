package controllers

import (
	"net/http"
	"testing"

	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter()
	router.POST("/users", CreateUser)

	body := map[string]interface{}{"phone_number": " 9876543210 ", "name": " Rajesh Kumar "}

	first := performRequest(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, first.Code)
	created := decodeObject(t, first)
	assert.Equal(t, "9876543210", created["phoneNumber"])
	assert.Equal(t, "Rajesh Kumar", created["name"])
	assert.NotEmpty(t, created["createdAt"])

	second := performRequest(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, second.Code)
	existing := decodeObject(t, second)
	assert.Equal(t, created["id"], existing["id"])

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{"missing phone", map[string]interface{}{"name": "Amit"}, http.StatusBadRequest, "PHONE_NUMBER_REQUIRED"},
		{"blank phone", map[string]interface{}{"phone_number": "   "}, http.StatusBadRequest, "PHONE_NUMBER_REQUIRED"},
		{"empty body", nil, http.StatusBadRequest, "PHONE_NUMBER_REQUIRED"},
		{"malformed json", `{"phone_number": `, http.StatusBadRequest, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			router := setupTestRouter()
			router.POST("/users", CreateUser)

			w := performRequest(t, router, http.MethodPost, "/users", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeObject(t, w)["code"])
		})
	}
}

func TestCreateUser_NameOptional(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()
	router.POST("/users", CreateUser)

	w := performRequest(t, router, http.MethodPost, "/users", map[string]interface{}{"phone_number": "9988112233"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, decodeObject(t, w)["name"])
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "9123456789")
	other := createTestUser(t, db, "9000000000")

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCode   string
		expectedID     uint
	}{
		{"by id", "/users?id=" + itoa(user.ID), http.StatusOK, "", user.ID},
		{"by phone", "/users?phone=9123456789", http.StatusOK, "", user.ID},
		{"id takes precedence", "/users?id=" + itoa(other.ID) + "&phone=9123456789", http.StatusOK, "", other.ID},
		{"no parameters", "/users", http.StatusBadRequest, "MISSING_PARAMETER", 0},
		{"non-numeric id", "/users?id=abc", http.StatusBadRequest, "INVALID_ID", 0},
		{"unknown id", "/users?id=999", http.StatusNotFound, "USER_NOT_FOUND", 0},
		{"unknown phone", "/users?phone=1111111111", http.StatusNotFound, "USER_NOT_FOUND", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.GET("/users", GetUser)

			w := performRequest(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeObject(t, w)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, response["code"])
				return
			}
			assert.Equal(t, float64(tt.expectedID), response["id"])
		})
	}
}
