package domain

// Cart Model
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                         // Primary key
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`           // One cart per user
	CartItems []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"cartItems"` // Line items, removed with the cart
}

// CartItem Model
type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`            // Primary key
	CartID    uint     `gorm:"index;not null" json:"cartId"`    // Foreign key to owning Cart
	Cart      *Cart    `json:"-"`                               // Cart relation, loaded for ownership checks
	ProductID uint     `gorm:"index;not null" json:"productId"` // Referenced product
	Product   *Product `json:"product,omitempty"`               // Product relation, loaded with Preload
	Quantity  int      `gorm:"not null" json:"quantity"`        // Never exceeds the product's stock
	Price     float64  `gorm:"not null" json:"price"`           // Unit price snapshotted when the line was created
}
