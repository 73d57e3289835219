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

// Request struct for category create and update
type CategoryRequest struct {
	Name string `json:"name" binding:"required"` // Category name must be provided
}

// Cache keys for public category reads
const categoriesCacheKey = "categories:all"

// categoryCacheKey builds the cache key for one category
func categoryCacheKey(id uint) string {
	return "category:" + strconv.Itoa(int(id))
}

// invalidateCategoryCache drops the cached category reads after a write
func invalidateCategoryCache(rdb *redis.Client, id uint) {
	_ = utils.DeleteCache(context.Background(), rdb, categoriesCacheKey, categoryCacheKey(id))
}

// ListCategoriesHandler returns all categories, public and cached
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var categories []domain.Category
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, categoriesCacheKey, &categories); err == nil && found {
			respond(c, http.StatusOK, "successful", gin.H{"categories": categories})
			return
		}
		// Fetch from the database
		if err := db.Find(&categories).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		_ = utils.SetCache(ctx, rdb, categoriesCacheKey, categories, utils.CacheTTL) // Cache the listing
		respond(c, http.StatusOK, "successful", gin.H{"categories": categories})
	}
}

// GetCategoryHandler returns one category, public and cached
func GetCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		ctx := context.Background() // Context for Redis operations
		var category domain.Category
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, categoryCacheKey(id), &category); err == nil && found {
			respond(c, http.StatusOK, "successful", gin.H{"category": category})
			return
		}
		// Fetch from the database
		if err := db.First(&category, id).Error; err != nil {
			fail(c, apperr.NotFound("Category not found"))
			return
		}
		_ = utils.SetCache(ctx, rdb, categoryCacheKey(id), category, utils.CacheTTL) // Cache the category
		respond(c, http.StatusOK, "successful", gin.H{"category": category})
	}
}

// CreateCategoryHandler creates a category, admin only
func CreateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		// Reject duplicate names
		var existing domain.Category
		if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			fail(c, apperr.Conflict("Category already exists."))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.Internal(err))
			return
		}
		newCategory := domain.Category{Name: req.Name} // New category
		if err := db.Create(&newCategory).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"category_id": newCategory.ID,   // New category ID
			"name":        newCategory.Name, // Category name
			"user_id":     currentUserID(c), // Acting admin
		}).Info("Category created")
		invalidateCategoryCache(rdb, newCategory.ID) // Drop stale cache entries
		respond(c, http.StatusCreated, "Category created successfully.", gin.H{"newCategory": newCategory})
	}
}

// UpdateCategoryHandler renames a category, admin only
func UpdateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			fail(c, apperr.Validation("Invalid request body"))
			return
		}
		var category domain.Category // Fetch the category
		if err := db.First(&category, id).Error; err != nil {
			fail(c, apperr.NotFound("Category not found, try creating it."))
			return
		}
		// Apply the rename
		if err := db.Model(&category).Update("name", req.Name).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,      // Category ID
			"name":        category.Name,    // New name
			"user_id":     currentUserID(c), // Acting admin
		}).Info("Category updated")
		invalidateCategoryCache(rdb, category.ID) // Drop stale cache entries
		respond(c, http.StatusOK, "Category updated successfully.", gin.H{"updatedCategory": category})
	}
}

// DeleteCategoryHandler removes a category, admin only
func DeleteCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c) // Parse the :id parameter
		if err != nil {
			fail(c, err)
			return
		}
		var category domain.Category // Fetch the category
		if err := db.First(&category, id).Error; err != nil {
			fail(c, apperr.NotFound("Category not found."))
			return
		}
		// Delete the category
		if err := db.Delete(&category).Error; err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,      // Deleted category ID
			"user_id":     currentUserID(c), // Acting admin
		}).Info("Category deleted")
		invalidateCategoryCache(rdb, category.ID) // Drop stale cache entries
		respond(c, http.StatusOK, "Category deleted successfully.", nil)
	}
}
