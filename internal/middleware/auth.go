package middleware

import (
	"storefront/internal/apperr" // Error kinds
	"storefront/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by AuthRequired
const (
	CtxUserID = "userID"   // Authenticated user's ID
	CtxRole   = "userRole" // Authenticated user's role
)

// SessionCookie is the HTTP-only cookie carrying the signed session token
const SessionCookie = "accessToken"

// AuthRequired validates the session cookie and attaches identity and role
// to the request context
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Read the session cookie
		// Check if the cookie is present
		if err != nil || token == "" {
			// If not, reject as unauthenticated
			c.Error(apperr.Authentication("Token not found"))
			c.Abort()
			return
		}
		claims, err := utils.ParseJWT(token, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, reject as unauthenticated
			c.Error(apperr.Authentication("Invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID) // Store userID in context
		c.Set(CtxRole, claims.Role)     // Store role in context
		c.Next()                        // Proceed to the next handler
	}
}
