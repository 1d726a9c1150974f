package models

// Feedback is the single rating a user leaves for a completed booking
type Feedback struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	BookingID uint     `gorm:"not null;uniqueIndex" json:"bookingId"` // one feedback per booking
	Booking   *Booking `gorm:"foreignKey:BookingID" json:"-"`
	UserID    uint     `gorm:"not null;index" json:"userId"`
	User      *User    `gorm:"foreignKey:UserID" json:"-"`
	Rating    int      `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comments  *string  `json:"comments"`
	CreatedAt string   `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}
