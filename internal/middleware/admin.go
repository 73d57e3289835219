package middleware

import (
	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Role constants

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnly gates category and product mutation on the signed role claim.
// The claim travels inside the session token, so no DB read is needed here.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if the role claim carries admin rights
		if c.GetString(CtxRole) != domain.RoleAdmin {
			// If not, reject as unauthorized
			c.Error(apperr.Authorization("Unauthorized to perform this action."))
			c.Abort()
			return
		}
		c.Next() // Proceed to the next handler
	}
}
