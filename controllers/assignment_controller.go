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

// CreateAssignmentRequest represents the request body for sending an employee to a booking
type CreateAssignmentRequest struct {
	BookingID  utils.FlexInt `json:"bookingId"`
	EmployeeID utils.FlexInt `json:"employeeId"`
}

// ListAssignments handles GET /api/booking-assignments?bookingId=|employeeId=
func ListAssignments(c *gin.Context) {
	query := config.GetDB().WithContext(c.Request.Context()).Model(&models.BookingAssignment{})

	if bookingID, present, valid := queryInt(c, "bookingId"); present {
		if !valid {
			respondError(c, http.StatusBadRequest, "Valid bookingId is required", "INVALID_BOOKING_ID")
			return
		}
		query = query.Where("booking_id = ?", bookingID)
	} else if employeeID, present, valid := queryInt(c, "employeeId"); present {
		if !valid {
			respondError(c, http.StatusBadRequest, "Valid employeeId is required", "INVALID_EMPLOYEE_ID")
			return
		}
		query = query.Where("employee_id = ?", employeeID)
	} else {
		respondError(c, http.StatusBadRequest, "Either bookingId or employeeId parameter is required", "MISSING_PARAMETER")
		return
	}

	assignments := []models.BookingAssignment{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&assignments).Error; err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment handles POST /api/booking-assignments. It does not touch the
// booking row; professional details are written through PUT /api/bookings.
func CreateAssignment(c *gin.Context) {
	var req CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.BookingID.Present {
		respondError(c, http.StatusBadRequest, "bookingId is required", "MISSING_BOOKING_ID")
		return
	}
	if !req.EmployeeID.Present {
		respondError(c, http.StatusBadRequest, "employeeId is required", "MISSING_EMPLOYEE_ID")
		return
	}
	if !req.BookingID.IsID() {
		respondError(c, http.StatusBadRequest, "bookingId must be a valid integer", "INVALID_BOOKING_ID")
		return
	}
	if !req.EmployeeID.IsID() {
		respondError(c, http.StatusBadRequest, "employeeId must be a valid integer", "INVALID_EMPLOYEE_ID")
		return
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

	var employee models.Employee
	if err := db.Take(&employee, req.EmployeeID.Uint()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Employee not found", "EMPLOYEE_NOT_FOUND")
			return
		}
		respondInternalError(c, err)
		return
	}

	assignment := models.BookingAssignment{
		BookingID:  booking.ID,
		EmployeeID: employee.ID,
		Status:     models.AssignmentStatusAssigned,
		CreatedAt:  models.Now(),
	}
	if err := db.Create(&assignment).Error; err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}
