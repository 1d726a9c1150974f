package models

// EmployeeStatusAvailable is the status given to newly registered employees
const EmployeeStatusAvailable = "available"

// Employee is a service professional who registers through the employee flow
type Employee struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	PhoneNumber    string  `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	Name           string  `gorm:"not null" json:"name"`
	Email          *string `json:"email"`
	Specialization string  `gorm:"not null" json:"specialization"`
	Status         string  `gorm:"not null;default:'available'" json:"status"`
	CreatedAt      string  `gorm:"not null" json:"createdAt"`
	UpdatedAt      string  `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
