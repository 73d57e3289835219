package service

import (
	"testing"

	storedb "storefront/internal/db"
	"storefront/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep the single in-memory connection alive
	require.NoError(t, db.AutoMigrate(storedb.Models()...))
	return db
}

// seedUser creates a user with an empty cart and wishlist, mirroring what
// registration does
func seedUser(t *testing.T, db *gorm.DB, email, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{FullName: "Test User", Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&domain.Cart{UserID: user.ID}).Error)
	require.NoError(t, db.Create(&domain.WishList{UserID: user.ID}).Error)
	return &user
}

// seedProduct creates a category and a product with the given stock
func seedProduct(t *testing.T, db *gorm.DB, admin *domain.User, name string, price float64, stock int) *domain.Product {
	t.Helper()
	category := domain.Category{Name: "category-for-" + name}
	require.NoError(t, db.Create(&category).Error)
	product := domain.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Quantity:    stock,
		Color:       "black",
		CategoryID:  category.ID,
		UserID:      admin.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// seedAddress inserts an address row directly
func seedAddress(t *testing.T, db *gorm.DB, userID uint, isDefault bool) *domain.Address {
	t.Helper()
	address := domain.Address{
		UserID:    userID,
		Street:    "1 Main Street",
		City:      "Springfield",
		State:     "Illinois",
		Phone:     "5550100",
		IsDefault: isDefault,
	}
	require.NoError(t, db.Create(&address).Error)
	return &address
}
