package models

import (
	"slices"
	"strings"
)

// Service types a booking can request
const (
	ServicePlumber     = "plumber"
	ServiceElectrician = "electrician"
	ServiceCarpenter   = "carpenter"
	ServicePainter     = "painter"
	ServiceHouseHelp   = "househelp"
)

// Booking statuses. Any status may follow any other.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ServiceTypes lists the accepted service types in display order
var ServiceTypes = []string{ServicePlumber, ServiceElectrician, ServiceCarpenter, ServicePainter, ServiceHouseHelp}

// BookingStatuses lists the accepted booking statuses in display order
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

// Booking is a single request for a home-service visit.
// When PhotoKey is set, PhotoURL in responses is signed from it on every read.
type Booking struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	UserID              uint     `gorm:"not null;index" json:"userId"`
	User                *User    `gorm:"foreignKey:UserID" json:"-"`
	AddressID           uint     `gorm:"not null;index" json:"addressId"`
	Address             *Address `gorm:"foreignKey:AddressID" json:"-"`
	ServiceType         string   `gorm:"not null" json:"serviceType"`
	SubService          *string  `json:"subService"`
	WorkDescription     *string  `json:"workDescription"`
	PhotoURL            *string  `gorm:"column:photo_url" json:"photoUrl"`
	PhotoKey            *string  `gorm:"column:photo_key" json:"photoKey"`
	Status              string   `gorm:"not null;default:'pending'" json:"status"`
	ProfessionalName    *string  `json:"professionalName"`
	ProfessionalContact *string  `json:"professionalContact"`
	BookingDate         string   `gorm:"not null" json:"bookingDate"`
	CompletionDate      *string  `json:"completionDate"`
	CreatedAt           string   `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// NormalizeServiceType lower-cases value and reports whether it is a known service type
func NormalizeServiceType(value string) (string, bool) {
	normalized := strings.ToLower(value)
	return normalized, slices.Contains(ServiceTypes, normalized)
}

// NormalizeBookingStatus lower-cases value and reports whether it is a known status
func NormalizeBookingStatus(value string) (string, bool) {
	normalized := strings.ToLower(value)
	return normalized, slices.Contains(BookingStatuses, normalized)
}
