package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/apperr"  // Error kinds
	"storefront/internal/service" // Wishlist uniqueness manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for adding a product to the wishlist
type WishListRequest struct {
	ProductID uint `json:"productId" binding:"required"` // Product to add
}

// GetWishListHandler returns the authenticated user's wishlist
func GetWishListHandler(wishlists *service.WishListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishList, err := wishlists.Get(currentUserID(c)) // Fetch the wishlist
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, "Successful.", gin.H{"wishList": wishList})
	}
}

// AddWishListItemHandler puts a product on the user's wishlist once
func AddWishListItemHandler(wishlists *service.WishListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WishListRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		userID := currentUserID(c) // Authenticated user
		wishList, err := wishlists.AddProduct(userID, req.ProductID)
		if err != nil {
			fail(c, err)
			return
		}
		// Log the addition
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,        // Owning user
			"product_id":  req.ProductID, // Added product
			"wishlist_id": wishList.ID,   // Wishlist ID
		}).Info("Product added to wishlist")
		respond(c, http.StatusCreated, "Wishlist item added successfully.", gin.H{"wishList": wishList})
	}
}

// RemoveWishListItemHandler deletes one entry from the user's wishlist
func RemoveWishListItemHandler(wishlists *service.WishListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		userID := currentUserID(c) // Authenticated user
		if err := wishlists.RemoveItem(userID, itemID); err != nil {
			fail(c, err)
			return
		}
		// Log the removal
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // Owning user
			"item_id": itemID, // Removed entry
		}).Info("Wishlist item removed")
		respond(c, http.StatusOK, "Successful.", nil)
	}
}

// ClearWishListHandler deletes all entries from the user's wishlist
func ClearWishListHandler(wishlists *service.WishListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c) // Authenticated user
		if err := wishlists.Clear(userID); err != nil {
			fail(c, err)
			return
		}
		// Log the clear
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // Owning user
		}).Info("Wishlist cleared")
		respond(c, http.StatusOK, "Successful.", nil)
	}
}
