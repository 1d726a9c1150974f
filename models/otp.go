package models

// OtpVerification is one issued login code. Several may exist per phone;
// verification only considers the newest unverified one.
type OtpVerification struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PhoneNumber string `gorm:"not null;index" json:"phoneNumber"`
	OtpCode     string `gorm:"not null" json:"otpCode"`
	ExpiresAt   string `gorm:"not null" json:"expiresAt"`
	IsVerified  bool   `gorm:"not null;default:false" json:"isVerified"`
	CreatedAt   string `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the OtpVerification model
func (OtpVerification) TableName() string {
	return "otp_verifications"
}

// EmployeeOtpVerification mirrors OtpVerification in a table of its own
type EmployeeOtpVerification struct {
	OtpVerification
}

// TableName specifies the table name for the EmployeeOtpVerification model
func (EmployeeOtpVerification) TableName() string {
	return "employee_otp_verifications"
}
