package service

import (
	"testing"

	"storefront/internal/apperr"
	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProductCreatesLineAtOne(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 1, cart.CartItems[0].Quantity)
	assert.Equal(t, product.Price, cart.CartItems[0].Price)
}

func TestAddProductCreatesCartLazily(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	// Remove the eagerly created cart to exercise the lazy path
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&domain.Cart{}).Error)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 1, cart.CartItems[0].Quantity)
}

func TestAddSameProductMergesLine(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 3)
	svc := NewCartService(db)

	// Three sequential adds collapse into one line at quantity 3
	for i := 0; i < 3; i++ {
		_, err := svc.AddProduct(user.ID, product.ID)
		require.NoError(t, err)
	}
	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 3, cart.CartItems[0].Quantity)

	// The fourth add would exceed stock and is rejected without effect
	_, err = svc.AddProduct(user.ID, product.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindQuantityExceeded))

	cart, err = svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 3, cart.CartItems[0].Quantity)
}

func TestAddMissingOrOutOfStockProduct(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	empty := seedProduct(t, db, admin, "sold-out", 9.99, 0)
	svc := NewCartService(db)

	_, err := svc.AddProduct(user.ID, 999)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.AddProduct(user.ID, empty.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSetQuantityWithinStock(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(user.ID, product.ID)
	require.NoError(t, err)
	item := cart.CartItems[0]

	require.NoError(t, svc.SetQuantity(user.ID, item.ID, 5))

	var reloaded domain.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 5, reloaded.Quantity)
}

func TestSetQuantityExceedingStockPreservesPrior(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(user.ID, product.ID)
	require.NoError(t, err)
	item := cart.CartItems[0]

	err = svc.SetQuantity(user.ID, item.ID, 6)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindQuantityExceeded))

	var reloaded domain.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 1, reloaded.Quantity)
}

func TestSetQuantityOwnershipMismatch(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleUser)
	intruder := seedUser(t, db, "intruder@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(owner.ID, product.ID)
	require.NoError(t, err)
	item := cart.CartItems[0]

	err = svc.SetQuantity(intruder.ID, item.ID, 2)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	var reloaded domain.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 1, reloaded.Quantity)
}

func TestPriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(user.ID, product.ID)
	require.NoError(t, err)
	item := cart.CartItems[0]

	// Later price changes do not touch the snapshot
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", product.ID).Update("price", 29.99).Error)
	_, err = svc.AddProduct(user.ID, product.ID) // increments the same line
	require.NoError(t, err)

	var reloaded domain.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 19.99, reloaded.Price)
	assert.Equal(t, 2, reloaded.Quantity)
}

func TestRemoveItemAndOwnership(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleUser)
	intruder := seedUser(t, db, "intruder@example.com", domain.RoleUser)
	product := seedProduct(t, db, admin, "lamp", 19.99, 5)
	svc := NewCartService(db)

	cart, err := svc.AddProduct(owner.ID, product.ID)
	require.NoError(t, err)
	item := cart.CartItems[0]

	err = svc.RemoveItem(intruder.ID, item.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	require.NoError(t, svc.RemoveItem(owner.ID, item.ID))

	err = svc.RemoveItem(owner.ID, item.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	first := seedProduct(t, db, admin, "lamp", 19.99, 5)
	second := seedProduct(t, db, admin, "desk", 99.99, 2)
	svc := NewCartService(db)

	_, err := svc.AddProduct(user.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.AddProduct(user.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(user.ID))

	// The cart row survives, the items are gone
	_, err = svc.Get(user.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetMissingCartIs404(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", domain.RoleUser)
	// Drop the cart entirely
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&domain.Cart{}).Error)
	svc := NewCartService(db)

	_, err := svc.Get(user.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
