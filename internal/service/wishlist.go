package service

import (
	"errors" // Error comparison

	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// WishListService maintains one wishlist per user where a product appears
// at most once. The existence check and insert share one transaction, and
// the composite unique index backs the rule at the schema level.
type WishListService struct {
	db *gorm.DB // Database handle
}

// NewWishListService builds a WishListService on the given database
func NewWishListService(db *gorm.DB) *WishListService {
	return &WishListService{db: db}
}

// Get returns the user's wishlist with items and products preloaded
func (s *WishListService) Get(userID uint) (*domain.WishList, error) {
	return s.loadWishList(s.db, userID)
}

// AddProduct puts a product on the user's wishlist, rejecting duplicates
func (s *WishListService) AddProduct(userID, productID uint) (*domain.WishList, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Load the product
		var product domain.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product does not exist.")
			}
			return apperr.Internal(err)
		}
		// Load the wishlist. Registration creates it, so a missing row is
		// a state no valid sequence produces.
		var wishList domain.WishList
		if err := tx.Where("user_id = ?", userID).First(&wishList).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.DataIntegrity("Wishlist does not exist. Please contact support.")
			}
			return apperr.Internal(err)
		}
		// Reject a product that is already on the wishlist
		var existing domain.WishListItem
		err := tx.Where("wish_list_id = ? AND product_id = ?", wishList.ID, productID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Product is already in your wishlist.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Internal(err)
		}
		// Create the entry
		item := domain.WishListItem{
			WishListID: wishList.ID, // Owning wishlist
			ProductID:  productID,   // Referenced product
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Return the refreshed wishlist
	return s.loadWishList(s.db, userID)
}

// RemoveItem deletes one wishlist entry after an ownership check
func (s *WishListService) RemoveItem(userID, itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Load the entry with its wishlist for the ownership check
		var item domain.WishListItem
		if err := tx.Preload("WishList").First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Wishlist item not found.")
			}
			return apperr.Internal(err)
		}
		// The entry's wishlist must belong to the requesting user
		if err := authorizeOwner(item.WishList.UserID, userID); err != nil {
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Clear deletes every entry of the user's wishlist
func (s *WishListService) Clear(userID uint) error {
	var wishList domain.WishList
	// Load the user's wishlist
	if err := s.db.Where("user_id = ?", userID).First(&wishList).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("You do not have a wishlist yet.")
		}
		return apperr.Internal(err)
	}
	// Remove all entries, keeping the wishlist row
	if err := s.db.Where("wish_list_id = ?", wishList.ID).Delete(&domain.WishListItem{}).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// loadWishList fetches the user's wishlist with items and products
// preloaded, as a 404 when absent
func (s *WishListService) loadWishList(db *gorm.DB, userID uint) (*domain.WishList, error) {
	var wishList domain.WishList
	err := db.Preload("WishListItems.Product").Where("user_id = ?", userID).First(&wishList).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("There's currently no wishlist.")
		}
		return nil, apperr.Internal(err)
	}
	return &wishList, nil
}
