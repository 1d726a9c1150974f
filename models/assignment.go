package models

// AssignmentStatusAssigned is the status of a freshly created assignment
const AssignmentStatusAssigned = "assigned"

// BookingAssignment links a booking to the employee sent to do the work
type BookingAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookingID  uint      `gorm:"not null;index" json:"bookingId"`
	Booking    *Booking  `gorm:"foreignKey:BookingID" json:"-"`
	EmployeeID uint      `gorm:"not null;index" json:"employeeId"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
	Status     string    `gorm:"not null" json:"status"`
	CreatedAt  string    `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the BookingAssignment model
func (BookingAssignment) TableName() string {
	return "booking_assignments"
}
