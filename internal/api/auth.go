package api

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"storefront/internal/apperr"     // Error kinds
	"storefront/internal/domain"     // Domain models
	"storefront/internal/middleware" // Session cookie name
	"storefront/internal/service"    // Capability checks
	"storefront/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`       // Full name must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email must be provided
	Password string `json:"password" binding:"required,min=6"` // Password must be at least 6 characters
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Valid email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// isValidPassword checks that the password carries at least one uppercase
// letter and one digit on top of the length the binding enforces
func isValidPassword(password string) bool {
	upper, _ := regexp.MatchString(`[A-Z]`, password) // At least one uppercase letter
	digit, _ := regexp.MatchString(`[0-9]`, password) // At least one digit
	return upper && digit
}

// userPayload is the public shape of a user in auth responses
func userPayload(user *domain.User) gin.H {
	return gin.H{
		"userId":   user.ID,       // User ID
		"fullName": user.FullName, // Display name
		"email":    user.Email,    // Email address
	}
}

// RegisterHandler creates a user together with an empty cart and wishlist,
// so later cart and wishlist reads never hit a missing row
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		// Validate password complexity
		if !isValidPassword(req.Password) {
			fail(c, apperr.Validation("Password must include at least one uppercase letter and one number"))
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Normalize email for uniqueness
		// Reject duplicate emails
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			fail(c, apperr.Conflict("Email already exists."))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.Internal(err))
			return
		}
		// Hash the password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		user := domain.User{
			FullName: strings.TrimSpace(req.FullName), // Display name
			Email:    email,                           // Normalized email
			Password: string(hash),                    // Bcrypt hash
			Role:     domain.RoleUser,                 // New accounts are regular users
		}
		// Create the user with an empty cart and wishlist in one transaction
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if err := tx.Create(&domain.Cart{UserID: user.ID}).Error; err != nil {
				return err
			}
			return tx.Create(&domain.WishList{UserID: user.ID}).Error
		})
		if err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Email address
		}).Info("User registered")
		// Return the public user shape
		respond(c, http.StatusCreated, "Registration successful.", userPayload(&user))
	}
}

// LoginHandler authenticates a user and issues the session cookie
func LoginHandler(db *gorm.DB, jwtSecret string, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
			// If user not found, return not found
			fail(c, apperr.NotFound("User does not exist."))
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			fail(c, apperr.Authentication("Email or password is wrong."))
			return
		}
		// Generate the signed session token with identity and role
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Issue the HTTP-only session cookie, Secure and cross-site in prod
		sameSite := http.SameSiteLaxMode
		if isProd {
			sameSite = http.SameSiteNoneMode
		}
		c.SetSameSite(sameSite)
		c.SetCookie(middleware.SessionCookie, token, int(utils.SessionDuration.Seconds()), "/", "", isProd, true)
		// Log the login
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // User ID
			"role":    user.Role, // User role
		}).Info("User logged in")
		// Return the public user shape
		respond(c, http.StatusOK, "Login successful.", userPayload(&user))
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Expire the cookie immediately
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		respond(c, http.StatusOK, "Logged out", nil)
	}
}

// GetUserHandler returns a user's public data to the user themselves or an
// admin
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var user domain.User // Fetch the target user
		if err := db.First(&user, targetID).Error; err != nil {
			fail(c, apperr.NotFound("User does not exist."))
			return
		}
		// Self-or-admin capability check
		if err := service.AuthorizeSelfOrAdmin(currentUserID(c), currentRole(c), user.ID); err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, "Successful", gin.H{
			"userId":   user.ID,       // User ID
			"email":    user.Email,    // Email address
			"fullName": user.FullName, // Display name
		})
	}
}
