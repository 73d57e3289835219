package api

import (
	"storefront/internal/config"     // Application configuration
	"storefront/internal/middleware" // Auth gate, admin gate, error translator
	"storefront/internal/service"    // Invariant managers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route of the storefront API. rdb may be nil; the
// catalog handlers then skip caching.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()                                 // Gin router instance
	r.Use(gin.Recovery())                          // Recover from panics
	r.Use(middleware.ErrorHandler(cfg.IsProd))     // Single boundary error translator
	auth := middleware.AuthRequired(cfg.JWTSecret) // Session cookie gate
	admin := middleware.AdminOnly()                // Role gate for catalog writes

	// Invariant managers
	addresses := service.NewAddressService(db)  // Default-address invariant
	carts := service.NewCartService(db)         // Cart quantity invariant
	wishlists := service.NewWishListService(db) // Wishlist uniqueness invariant

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(db))                      // Registration endpoint
	authGroup.POST("/login", LoginHandler(db, cfg.JWTSecret, cfg.IsProd)) // Login endpoint, sets the session cookie
	authGroup.POST("/logout", LogoutHandler())                            // Logout endpoint, clears the cookie
	authGroup.POST("/users/:id", auth, GetUserHandler(db))                // User data, self or admin

	// Address routes (owner only)
	addressGroup := r.Group("/api/addresses", auth)
	addressGroup.GET("", ListAddressesHandler(addresses))        // List addresses
	addressGroup.POST("", CreateAddressHandler(addresses))       // Create address
	addressGroup.PATCH("/:id", UpdateAddressHandler(addresses))  // Update address
	addressGroup.DELETE("/:id", DeleteAddressHandler(addresses)) // Delete address

	// Cart routes (owner only)
	cartGroup := r.Group("/api/carts", auth)
	cartGroup.GET("", GetCartHandler(carts))                        // Fetch cart
	cartGroup.POST("", AddToCartHandler(carts))                     // Add product to cart
	cartGroup.DELETE("", ClearCartHandler(carts))                   // Clear cart
	cartGroup.PATCH("/cartItem/:id", UpdateCartItemHandler(carts))  // Overwrite line item quantity
	cartGroup.DELETE("/cartItem/:id", RemoveCartItemHandler(carts)) // Remove line item

	// Wishlist routes (owner only)
	wishListGroup := r.Group("/api/wishlists", auth)
	wishListGroup.GET("", GetWishListHandler(wishlists))                        // Fetch wishlist
	wishListGroup.POST("", AddWishListItemHandler(wishlists))                   // Add product to wishlist
	wishListGroup.DELETE("", ClearWishListHandler(wishlists))                   // Clear wishlist
	wishListGroup.DELETE("/wishlist/:id", RemoveWishListItemHandler(wishlists)) // Remove entry

	// Category routes (public read, admin write)
	categoryGroup := r.Group("/api/categories")
	categoryGroup.GET("", ListCategoriesHandler(db, rdb))                     // List categories
	categoryGroup.GET("/:id", GetCategoryHandler(db, rdb))                    // Fetch category
	categoryGroup.POST("", auth, admin, CreateCategoryHandler(db, rdb))       // Create category
	categoryGroup.PUT("/:id", auth, admin, UpdateCategoryHandler(db, rdb))    // Update category
	categoryGroup.DELETE("/:id", auth, admin, DeleteCategoryHandler(db, rdb)) // Delete category

	// Product routes (public read, admin write)
	productGroup := r.Group("/api/products")
	productGroup.GET("", ListProductsHandler(db, rdb))                      // List products
	productGroup.GET("/:id", GetProductHandler(db, rdb))                    // Fetch product
	productGroup.POST("", auth, admin, CreateProductHandler(db, rdb))       // Create product
	productGroup.PUT("/:id", auth, admin, UpdateProductHandler(db, rdb))    // Update product
	productGroup.DELETE("/:id", auth, admin, DeleteProductHandler(db, rdb)) // Delete product

	return r
}
