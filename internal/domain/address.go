package domain

// Address Model
type Address struct {
	ID        uint   `gorm:"primaryKey" json:"id"`         // Primary key
	UserID    uint   `gorm:"index;not null" json:"userId"` // Foreign key to owning User
	Street    string `gorm:"not null" json:"street"`       // Street line
	City      string `gorm:"not null" json:"city"`         // City name
	State     string `gorm:"not null" json:"state"`        // State name
	Phone     string `gorm:"not null" json:"phone"`        // Contact phone number
	IsDefault bool   `json:"isDefault"`                    // Exactly one per user once any address exists
}
