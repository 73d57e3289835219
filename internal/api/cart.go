package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/apperr"  // Error kinds
	"storefront/internal/service" // Cart quantity manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for adding a product to the cart
type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"` // Product to add
}

// Request struct for overwriting a line item quantity
type CartItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"` // Target quantity, at least 1
}

// GetCartHandler returns the authenticated user's cart with its items
func GetCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(currentUserID(c)) // Fetch the cart
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, "Successful.", gin.H{"userCart": cart})
	}
}

// AddToCartHandler puts one unit of a product into the user's cart
func AddToCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		userID := currentUserID(c) // Authenticated user
		cart, err := carts.AddProduct(userID, req.ProductID)
		if err != nil {
			fail(c, err)
			return
		}
		// Log the addition
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,        // Owning user
			"product_id": req.ProductID, // Added product
			"cart_id":    cart.ID,       // Cart ID
		}).Info("Product added to cart")
		respond(c, http.StatusOK, "Successful.", gin.H{"cart": cart})
	}
}

// UpdateCartItemHandler overwrites a line item's quantity within stock
func UpdateCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var req CartItemQuantityRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		userID := currentUserID(c) // Authenticated user
		if err := carts.SetQuantity(userID, itemID, req.Quantity); err != nil {
			fail(c, err)
			return
		}
		// Log the quantity change
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,       // Owning user
			"item_id":  itemID,       // Line item ID
			"quantity": req.Quantity, // New quantity
		}).Info("Cart item quantity updated")
		respond(c, http.StatusOK, "Successful.", nil)
	}
}

// RemoveCartItemHandler deletes one line item from the user's cart
func RemoveCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		userID := currentUserID(c) // Authenticated user
		if err := carts.RemoveItem(userID, itemID); err != nil {
			fail(c, err)
			return
		}
		// Log the removal
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // Owning user
			"item_id": itemID, // Removed line item
		}).Info("Cart item removed")
		respond(c, http.StatusOK, "Successful.", nil)
	}
}

// ClearCartHandler deletes all line items from the user's cart
func ClearCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c) // Authenticated user
		if err := carts.Clear(userID); err != nil {
			fail(c, err)
			return
		}
		// Log the clear
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // Owning user
		}).Info("Cart cleared")
		respond(c, http.StatusOK, "Successful.", nil)
	}
}
