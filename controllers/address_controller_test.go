package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAddressRouter() *gin.Engine {
	router := setupTestRouter()
	router.GET("/addresses", ListAddresses)
	router.POST("/addresses", CreateAddress)
	router.PUT("/addresses", UpdateAddress)
	return router
}

func TestCreateAddress(t *testing.T) {
	setupTestDB(t)
	router := setupAddressRouter()

	w := performRequest(t, router, http.MethodPost, "/addresses", map[string]interface{}{
		"userId":            "7",
		"apartmentBuilding": "  Shanti Apartments, Flat 302 ",
		"streetArea":        "MG Road",
		"city":              "",
		"pincode":           "400001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, float64(7), response["userId"])
	assert.Equal(t, "Shanti Apartments, Flat 302", response["apartmentBuilding"])
	assert.Nil(t, response["city"])
	assert.Nil(t, response["state"])
	assert.Equal(t, false, response["isDefault"])
}

func TestCreateAddress_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		expectedCode string
	}{
		{"missing userId", map[string]interface{}{"city": "Pune"}, "MISSING_USER_ID"},
		{"zero userId", map[string]interface{}{"userId": 0}, "MISSING_USER_ID"},
		{"non-numeric userId", map[string]interface{}{"userId": "abc"}, "INVALID_USER_ID"},
		{"negative userId", map[string]interface{}{"userId": -1}, "INVALID_USER_ID"},
		{"userId beyond int64", map[string]interface{}{"userId": 1e20}, "INVALID_USER_ID"},
		{"malformed json", `{`, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			router := setupAddressRouter()

			w := performRequest(t, router, http.MethodPost, "/addresses", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedCode, decodeObject(t, w)["code"])
		})
	}
}

func TestCreateAddress_DefaultReplacesPreviousDefault(t *testing.T) {
	db := setupTestDB(t)
	router := setupAddressRouter()

	for _, city := range []string{"Mumbai", "Pune"} {
		w := performRequest(t, router, http.MethodPost, "/addresses",
			map[string]interface{}{"userId": 1, "city": city, "isDefault": true})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Another user's default is untouched
	w := performRequest(t, router, http.MethodPost, "/addresses",
		map[string]interface{}{"userId": 2, "city": "Delhi", "isDefault": true})
	require.Equal(t, http.StatusCreated, w.Code)

	var defaults []models.Address
	require.NoError(t, db.Where("user_id = ? AND is_default = ?", 1, true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "Pune", *defaults[0].City)

	var count int64
	db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", 2, true).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListAddresses_DefaultFirstThenNewest(t *testing.T) {
	db := setupTestDB(t)
	router := setupAddressRouter()

	fixtures := []models.Address{
		{UserID: 1, City: strPtr("oldest"), IsDefault: false, CreatedAt: "2025-01-01T00:00:00.000Z"},
		{UserID: 1, City: strPtr("default"), IsDefault: true, CreatedAt: "2025-01-02T00:00:00.000Z"},
		{UserID: 1, City: strPtr("newest"), IsDefault: false, CreatedAt: "2025-01-03T00:00:00.000Z"},
		{UserID: 2, City: strPtr("someone else"), IsDefault: true, CreatedAt: "2025-01-04T00:00:00.000Z"},
	}
	for i := range fixtures {
		require.NoError(t, db.Create(&fixtures[i]).Error)
	}

	w := performRequest(t, router, http.MethodGet, "/addresses?userId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	addresses := decodeArray(t, w)
	require.Len(t, addresses, 3)
	assert.Equal(t, "default", addresses[0]["city"])
	assert.Equal(t, "newest", addresses[1]["city"])
	assert.Equal(t, "oldest", addresses[2]["city"])
}

func TestListAddresses_EmptyAndInvalid(t *testing.T) {
	setupTestDB(t)
	router := setupAddressRouter()

	w := performRequest(t, router, http.MethodGet, "/addresses?userId=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	for _, path := range []string{"/addresses", "/addresses?userId=abc"} {
		w := performRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_USER_ID", decodeObject(t, w)["code"])
	}
}

func TestUpdateAddress_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	router := setupAddressRouter()

	address := models.Address{
		UserID:     1,
		StreetArea: strPtr("Bandra West"),
		City:       strPtr("Mumbai"),
		State:      strPtr("Maharashtra"),
		CreatedAt:  models.Now(),
	}
	require.NoError(t, db.Create(&address).Error)

	w := performRequest(t, router, http.MethodPut, "/addresses?id="+itoa(address.ID), map[string]interface{}{
		"city":  " Thane ",
		"state": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, "Thane", response["city"])
	assert.Nil(t, response["state"])
	assert.Equal(t, "Bandra West", response["streetArea"])
}

func TestUpdateAddress_EmptyBodyReturnsCurrentRow(t *testing.T) {
	db := setupTestDB(t)
	router := setupAddressRouter()

	address := models.Address{UserID: 1, City: strPtr("Chennai"), CreatedAt: models.Now()}
	require.NoError(t, db.Create(&address).Error)

	w := performRequest(t, router, http.MethodPut, "/addresses?id="+itoa(address.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chennai", decodeObject(t, w)["city"])
}

func TestUpdateAddress_MakeDefault(t *testing.T) {
	db := setupTestDB(t)
	router := setupAddressRouter()

	current := models.Address{UserID: 1, City: strPtr("Mumbai"), IsDefault: true, CreatedAt: models.Now()}
	other := models.Address{UserID: 1, City: strPtr("Pune"), CreatedAt: models.Now()}
	require.NoError(t, db.Create(&current).Error)
	require.NoError(t, db.Create(&other).Error)

	w := performRequest(t, router, http.MethodPut, "/addresses?id="+itoa(other.ID), map[string]interface{}{"isDefault": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeObject(t, w)["isDefault"])

	var defaults []models.Address
	require.NoError(t, db.Where("user_id = ? AND is_default = ?", 1, true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, other.ID, defaults[0].ID)
}

func TestUpdateAddress_Errors(t *testing.T) {
	setupTestDB(t)
	router := setupAddressRouter()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCode   string
	}{
		{"missing id", "/addresses", http.StatusBadRequest, "INVALID_ID"},
		{"non-numeric id", "/addresses?id=x", http.StatusBadRequest, "INVALID_ID"},
		{"unknown id", "/addresses?id=404", http.StatusNotFound, "ADDRESS_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, router, http.MethodPut, tt.path, map[string]interface{}{"city": "Pune"})
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeObject(t, w)["code"])
		})
	}
}
