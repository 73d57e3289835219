package api

import (
	"strconv" // String conversion

	"storefront/internal/apperr"     // Error kinds
	"storefront/internal/middleware" // Context keys

	"github.com/gin-gonic/gin" // Gin web framework
)

// respond writes the success envelope shared by every endpoint
func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	// Data is optional
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail attaches the error for the boundary translator and stops the chain
func fail(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// currentUserID returns the authenticated user's ID from the context
func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.CtxUserID)
}

// currentRole returns the authenticated user's role from the context
func currentRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid id parameter")
	}
	return uint(id), nil
}
