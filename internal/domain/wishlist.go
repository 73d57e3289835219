package domain

// WishList Model
type WishList struct {
	ID            uint           `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID        uint           `gorm:"uniqueIndex;not null" json:"userId"`               // One wishlist per user
	WishListItems []WishListItem `gorm:"constraint:OnDelete:CASCADE" json:"wishListItems"` // Entries, removed with the wishlist
}

// WishListItem Model
type WishListItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                        // Primary key
	WishListID uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"wishListId"` // Foreign key to owning WishList
	WishList   *WishList `json:"-"`                                                           // WishList relation, loaded for ownership checks
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"productId"`  // A product appears at most once per wishlist
	Product    *Product  `json:"product,omitempty"`                                           // Product relation, loaded with Preload
}
