package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error comparison
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Domain models
	"storefront/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for product create and update. The category travels by
// name and must already exist.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`        // Product name must be provided
	Description string  `json:"description" binding:"required"` // Description must be provided
	Price       float64 `json:"price" binding:"required,gt=0"`  // Price must be greater than 0
	Quantity    int     `json:"quantity" binding:"gte=0"`       // Stock must be 0 or more
	Color       string  `json:"color" binding:"required"`       // Color must be provided
	Category    string  `json:"category" binding:"required"`    // Category name must be provided
}

// Cache keys for public product reads
const productsCacheKey = "products:all"

// productCacheKey builds the cache key for one product
func productCacheKey(id uint) string {
	return "product:" + strconv.Itoa(int(id))
}

// invalidateProductCache drops the cached product reads after a write
func invalidateProductCache(rdb *redis.Client, id uint) {
	_ = utils.DeleteCache(context.Background(), rdb, productsCacheKey, productCacheKey(id))
}

// resolveCategory looks a category up by name for product writes
func resolveCategory(db *gorm.DB, name string) (*domain.Category, error) {
	var category domain.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Category does not exist, try creating it.")
		}
		return nil, apperr.Internal(err)
	}
	return &category, nil
}

// ListProductsHandler returns all products with categories, public and
// cached
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Products []domain.Product `json:"products"` // Product listing
			Count    int64            `json:"count"`    // Total product count
		}
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, productsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"success": true,          // Envelope flag
				"message": "successful.", // Envelope message
				"count":   cached.Count,  // Total product count
				"data":    gin.H{"products": cached.Products},
			})
			return
		}
		var products []domain.Product // Fetch products with their categories
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		var count int64 // Total product count
		if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		cached.Products = products                                             // Fill the cache shape
		cached.Count = count                                                   // Fill the cache shape
		_ = utils.SetCache(ctx, rdb, productsCacheKey, cached, utils.CacheTTL) // Cache the listing
		c.JSON(http.StatusOK, gin.H{
			"success": true,          // Envelope flag
			"message": "successful.", // Envelope message
			"count":   count,         // Total product count
			"data":    gin.H{"products": products},
		})
	}
}

// GetProductHandler returns one product with its category, public and
// cached
func GetProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		ctx := context.Background() // Context for Redis operations
		var product domain.Product
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, productCacheKey(id), &product); err == nil && found {
			respond(c, http.StatusOK, "Successful.", gin.H{"product": product})
			return
		}
		// Fetch from the database with the category
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			fail(c, apperr.NotFound("Product not found."))
			return
		}
		_ = utils.SetCache(ctx, rdb, productCacheKey(id), product, utils.CacheTTL) // Cache the product
		respond(c, http.StatusOK, "Successful.", gin.H{"product": product})
	}
}

// CreateProductHandler creates a product, admin only, recording the
// authoring admin
func CreateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		// Resolve the category by name
		category, err := resolveCategory(db, req.Category)
		if err != nil {
			fail(c, err)
			return
		}
		product := domain.Product{
			Name:        req.Name,         // Product name
			Description: req.Description,  // Product description
			Price:       req.Price,        // Unit price
			Quantity:    req.Quantity,     // Available stock
			Color:       req.Color,        // Product color
			CategoryID:  category.ID,      // Resolved category
			UserID:      currentUserID(c), // Authoring admin
		}
		if err := db.Create(&product).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		product.Category = category // Include the category in the response
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,       // New product ID
			"name":       product.Name,     // Product name
			"user_id":    currentUserID(c), // Acting admin
		}).Info("Product created")
		invalidateProductCache(rdb, product.ID) // Drop stale cache entries
		respond(c, http.StatusCreated, "Product created successfully.", gin.H{"product": product})
	}
}

// UpdateProductHandler rewrites a product, admin only
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		var product domain.Product // Fetch the product
		if err := db.First(&product, id).Error; err != nil {
			fail(c, apperr.NotFound("Product not found."))
			return
		}
		// Resolve the category by name
		category, err := resolveCategory(db, req.Category)
		if err != nil {
			fail(c, err)
			return
		}
		updates := map[string]any{
			"name":        req.Name,        // Product name
			"description": req.Description, // Product description
			"price":       req.Price,       // Unit price
			"quantity":    req.Quantity,    // Available stock
			"color":       req.Color,       // Product color
			"category_id": category.ID,     // Resolved category
		}
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		product.Category = category // Include the category in the response
		// Log the update
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,       // Product ID
			"user_id":    currentUserID(c), // Acting admin
		}).Info("Product updated")
		invalidateProductCache(rdb, product.ID) // Drop stale cache entries
		respond(c, http.StatusOK, "Product updated successfully.", gin.H{"product": product})
	}
}

// DeleteProductHandler removes a product, admin only
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var product domain.Product // Fetch the product
		if err := db.First(&product, id).Error; err != nil {
			fail(c, apperr.NotFound("Product not found."))
			return
		}
		// Delete the product
		if err := db.Delete(&product).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,       // Deleted product ID
			"user_id":    currentUserID(c), // Acting admin
		}).Info("Product deleted")
		invalidateProductCache(rdb, product.ID) // Drop stale cache entries
		respond(c, http.StatusOK, "Product deleted successfully.", nil)
	}
}
