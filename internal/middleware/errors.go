package middleware

import (
	"storefront/internal/apperr" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorHandler is the single boundary translator: every handler and
// middleware attaches errors with c.Error, and this middleware maps the
// last one to a JSON envelope and HTTP status. Underlying causes are
// exposed only outside production.
func ErrorHandler(isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Run the rest of the chain first
		// Nothing to translate
		if len(c.Errors) == 0 {
			return
		}
		ae := apperr.From(c.Errors.Last().Err) // Coerce to an application error
		// Unexpected failures get logged with request context
		if ae.Kind == apperr.KindInternal || ae.Kind == apperr.KindDataIntegrity {
			logrus.WithFields(logrus.Fields{
				"method": c.Request.Method,        // HTTP method
				"path":   c.Request.URL.Path,      // Request path
				"kind":   string(ae.Kind),         // Error kind
				"error":  c.Errors.Last().Error(), // Error message
			}).Error("Request failed")
		}
		// Build the error envelope
		body := gin.H{"success": false, "message": ae.Message}
		// Include the underlying cause outside production
		if !isProd && ae.Err != nil {
			body["stack"] = ae.Err.Error()
		}
		c.JSON(ae.Status, body) // Write the envelope with the error's status
	}
}
