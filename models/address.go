package models

// Address is a service location belonging to a user
type Address struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	UserID            uint    `gorm:"not null;index" json:"userId"` // foreign key to users table
	User              *User   `gorm:"foreignKey:UserID" json:"-"`
	ApartmentBuilding *string `json:"apartmentBuilding"`
	StreetArea        *string `json:"streetArea"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	Pincode           *string `json:"pincode"`
	IsDefault         bool    `gorm:"not null;default:false" json:"isDefault"` // at most one per user
	CreatedAt         string  `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}
