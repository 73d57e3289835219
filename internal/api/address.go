package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/apperr"  // Error kinds
	"storefront/internal/service" // Address invariant manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for address create and update
type AddressRequest struct {
	Street    string `json:"street" binding:"required,min=3"` // Street must be at least 3 characters
	City      string `json:"city" binding:"required,min=3"`   // City must be at least 3 characters
	State     string `json:"state" binding:"required,min=3"`  // State must be at least 3 characters
	Phone     string `json:"phone" binding:"required,min=3"`  // Phone must be at least 3 characters
	IsDefault bool   `json:"isDefault"`                       // Requested default flag, defaults to false
}

// input converts the request into the service input shape
func (r *AddressRequest) input() service.AddressInput {
	return service.AddressInput{
		Street:    r.Street,    // Street line
		City:      r.City,      // City name
		State:     r.State,     // State name
		Phone:     r.Phone,     // Contact phone number
		IsDefault: r.IsDefault, // Requested default flag
	}
}

// ListAddressesHandler returns the authenticated user's addresses
func ListAddressesHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := addresses.List(currentUserID(c)) // Fetch addresses, default first
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, "Addresses fetched successfully.", gin.H{"addresses": list})
	}
}

// CreateAddressHandler adds an address, keeping exactly one default
func CreateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		userID := currentUserID(c) // Authenticated user
		newAddress, err := addresses.Create(userID, req.input())
		if err != nil {
			fail(c, err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,               // Owning user
			"address_id": newAddress.ID,        // New address ID
			"is_default": newAddress.IsDefault, // Resolved default flag
		}).Info("Address created")
		respond(c, http.StatusCreated, "Successful.", gin.H{"newAddress": newAddress})
	}
}

// UpdateAddressHandler modifies an address, keeping exactly one default
func UpdateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var req AddressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		userID := currentUserID(c) // Authenticated user
		updatedAddress, err := addresses.Update(userID, addressID, req.input())
		if err != nil {
			fail(c, err)
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,                   // Owning user
			"address_id": updatedAddress.ID,        // Address ID
			"is_default": updatedAddress.IsDefault, // Resolved default flag
		}).Info("Address updated")
		respond(c, http.StatusOK, "Address updated successfully.", gin.H{"updatedAddress": updatedAddress})
	}
}

// DeleteAddressHandler removes an address, promoting a replacement default
// when needed
func DeleteAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		userID := currentUserID(c) // Authenticated user
		if err := addresses.Delete(userID, addressID); err != nil {
			fail(c, err)
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,    // Owning user
			"address_id": addressID, // Deleted address ID
		}).Info("Address deleted")
		respond(c, http.StatusOK, "Address deleted successfully.", gin.H{})
	}
}
