package models

import "gorm.io/gorm"

// All returns every model in foreign-key dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Address{},
		&Booking{},
		&Feedback{},
		&OtpVerification{},
		&Employee{},
		&EmployeeOtpVerification{},
		&Payment{},
		&BookingAssignment{},
	}
}

// AutoMigrate creates or updates the schema for every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
