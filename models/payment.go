package models

// PaymentStatusSuccess is the only outcome of the mocked gateway
const PaymentStatusSuccess = "success"

// Payment records a (simulated) card payment for a booking
type Payment struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	BookingID uint     `gorm:"not null;index" json:"bookingId"`
	Booking   *Booking `gorm:"foreignKey:BookingID" json:"-"`
	Amount    int      `gorm:"not null;check:amount > 0" json:"amount"`
	CardLast4 string   `gorm:"column:card_last4;not null" json:"cardLast4"`
	Status    string   `gorm:"not null" json:"status"`
	Reference string   `gorm:"uniqueIndex;not null" json:"reference"`
	CreatedAt string   `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
