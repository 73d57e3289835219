package domain

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name        string    `gorm:"not null" json:"name"`             // Product name
	Description string    `gorm:"not null" json:"description"`      // Product description
	Price       float64   `gorm:"not null" json:"price"`            // Current unit price
	Quantity    int       `gorm:"not null" json:"quantity"`         // Available stock
	Color       string    `gorm:"not null" json:"color"`            // Product color
	CategoryID  uint      `gorm:"index;not null" json:"categoryId"` // Foreign key to Category
	Category    *Category `json:"category,omitempty"`               // Category relation, loaded with Preload
	UserID      uint      `gorm:"index;not null" json:"userId"`     // Authoring admin user
}
