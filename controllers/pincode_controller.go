package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/services"
	"go.uber.org/zap"
)

// LookupPincode handles GET /api/pincode/:pincode - resolves a postal code to city/state.
// Lookup failures are reported as not found so the form stays editable.
func LookupPincode(c *gin.Context) {
	svc := services.GetPincodeService()
	if svc == nil {
		respondInternalError(c, errors.New("pincode service not configured"))
		return
	}

	data, err := svc.Lookup(c.Request.Context(), c.Param("pincode"))
	if errors.Is(err, services.ErrInvalidPincode) {
		respondError(c, http.StatusBadRequest, "Pincode must be 6 digits", "INVALID_PINCODE")
		return
	}
	if err != nil {
		logger.FromContext(c).Warn("pincode lookup failed",
			zap.String("pincode", c.Param("pincode")),
			zap.Error(err),
		)
	}
	if data == nil {
		respondError(c, http.StatusNotFound, "Pincode not found", "PINCODE_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, data)
}
