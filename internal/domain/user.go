package domain

// User roles
const (
	RoleUser  = "USER"  // Regular customer
	RoleAdmin = "ADMIN" // Administrator, may manage products and categories
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`         // Primary key
	FullName  string    `gorm:"not null" json:"fullName"`     // Display name
	Email     string    `gorm:"unique;not null" json:"email"` // Unique email, login identifier
	Password  string    `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	Role      string    `gorm:"default:USER" json:"role"`     // Role: USER or ADMIN
	Addresses []Address `json:"addresses,omitempty"`          // Shipping addresses owned by the user
	Cart      *Cart     `json:"cart,omitempty"`               // One-to-one relationship with Cart
	WishList  *WishList `json:"wishList,omitempty"`           // One-to-one relationship with WishList
	Products  []Product `json:"products,omitempty"`           // Products authored by this user (admins only)
}
