package service

import (
	"errors" // Error comparison

	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// CartService maintains one cart per user with line items whose quantity
// never exceeds the product's live stock. Check-then-write sequences run in
// a single transaction so a concurrent add cannot overshoot the stock.
type CartService struct {
	db *gorm.DB // Database handle
}

// NewCartService builds a CartService on the given database
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Get returns the user's cart with items and products preloaded.
// A missing or empty cart is a 404, matching what the storefront shows.
func (s *CartService) Get(userID uint) (*domain.Cart, error) {
	cart, err := s.loadCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.CartItems) == 0 {
		return nil, apperr.NotFound("There's currently no item in cart.")
	}
	return cart, nil
}

// AddProduct puts one unit of the product into the user's cart: a new line
// at quantity 1 with the price snapshotted, or an increment of the existing
// line capped by the product's current stock.
func (s *CartService) AddProduct(userID, productID uint) (*domain.Cart, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Load the product; absent or zero stock both read as out of stock
		var product domain.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product does not exist or is currently out of stock.")
			}
			return apperr.Internal(err)
		}
		if product.Quantity == 0 {
			return apperr.NotFound("Product does not exist or is currently out of stock.")
		}
		// Load the cart with its items
		var cart domain.Cart
		err := tx.Preload("CartItems").Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No cart yet: create it with a single line at quantity 1.
			// Registration creates carts eagerly, so this path only covers
			// rows from before that behavior existed.
			cart = domain.Cart{
				UserID: userID,
				CartItems: []domain.CartItem{{
					ProductID: productID,     // Referenced product
					Quantity:  1,             // First unit
					Price:     product.Price, // Price snapshot at creation
				}},
			}
			if err := tx.Create(&cart).Error; err != nil {
				return apperr.Internal(err)
			}
			return nil
		} else if err != nil {
			return apperr.Internal(err)
		}
		// Check if the product already has a line in the cart
		for i := range cart.CartItems {
			item := &cart.CartItems[i]
			if item.ProductID != productID {
				continue
			}
			// Increment by 1, but never beyond the live stock
			if item.Quantity+1 > product.Quantity {
				return apperr.QuantityExceeded("Cannot add more than available stock.")
			}
			if err := tx.Model(item).Update("quantity", item.Quantity+1).Error; err != nil {
				return apperr.Internal(err)
			}
			return nil
		}
		// New line item at quantity 1 with the price snapshotted
		item := domain.CartItem{
			CartID:    cart.ID,       // Owning cart
			ProductID: productID,     // Referenced product
			Quantity:  1,             // First unit
			Price:     product.Price, // Price snapshot at creation
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Return the refreshed cart
	cart, err := s.loadCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.DataIntegrity("Cart disappeared after update")
	}
	return cart, nil
}

// SetQuantity overwrites a line item's quantity, rejecting targets beyond
// the product's current stock
func (s *CartService) SetQuantity(userID, itemID uint, quantity int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		item, err := loadCartItem(tx, itemID)
		if err != nil {
			return err
		}
		// The line item's cart must belong to the requesting user
		if err := authorizeOwner(item.Cart.UserID, userID); err != nil {
			return err
		}
		// Quantity is bounded by the live stock
		if quantity > item.Product.Quantity {
			return apperr.QuantityExceeded("Cannot add more than available stock.")
		}
		if err := tx.Model(item).Update("quantity", quantity).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// RemoveItem deletes one line item after an ownership check
func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		item, err := loadCartItem(tx, itemID)
		if err != nil {
			return err
		}
		// The line item's cart must belong to the requesting user
		if err := authorizeOwner(item.Cart.UserID, userID); err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Clear deletes every line item of the user's cart
func (s *CartService) Clear(userID uint) error {
	var cart domain.Cart
	// Load the user's cart
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("You do not have a cart yet.")
		}
		return apperr.Internal(err)
	}
	// Remove all line items, keeping the cart row
	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// loadCart fetches the user's cart with items and products preloaded,
// returning nil without error when the cart does not exist
func (s *CartService) loadCart(db *gorm.DB, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := db.Preload("CartItems.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, apperr.Internal(err)
	}
	return &cart, nil
}

// loadCartItem fetches a line item with its cart and product for ownership
// and stock checks
func loadCartItem(tx *gorm.DB, itemID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := tx.Preload("Cart").Preload("Product").First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This cart item does not exist")
		}
		return nil, apperr.Internal(err)
	}
	return &item, nil
}
