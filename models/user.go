package models

// User is a customer, identified by phone number and created on first OTP login
type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PhoneNumber string  `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	Name        *string `json:"name"`
	CreatedAt   string  `gorm:"not null" json:"createdAt"`
	UpdatedAt   string  `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
