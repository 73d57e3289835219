package service

import (
	"net/http"
	"testing"

	"storefront/internal/apperr"
	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// assertExactlyOneDefault checks the core invariant: a user with at least
// one address has exactly one default
func assertExactlyOneDefault(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	var total, defaults int64
	require.NoError(t, db.Model(&domain.Address{}).Where("user_id = ?", userID).Count(&total).Error)
	require.NoError(t, db.Model(&domain.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&defaults).Error)
	if total > 0 {
		assert.EqualValues(t, 1, defaults, "expected exactly one default among %d addresses", total)
	}
}

func addressInput(isDefault bool) AddressInput {
	return AddressInput{
		Street:    "2 Oak Avenue",
		City:      "Portland",
		State:     "Oregon",
		Phone:     "5550199",
		IsDefault: isDefault,
	}
}

func TestCreateFirstAddressForcedDefault(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	// The requested flag is false, the first address still becomes default
	created, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)
	assert.True(t, created.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestCreateDefaultFlipsPreviousDefault(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	first, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)
	second, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	var reloaded domain.Address
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	assert.False(t, reloaded.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestCreateNonDefaultLeavesDefaultAlone(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	first, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	second, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	var reloaded domain.Address
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	assert.True(t, reloaded.IsDefault)
}

func TestCreateDefaultWithoutExistingDefaultFails(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	// Seed a corrupted state: one address, none default
	seedAddress(t, db, user.ID, false)

	_, err := svc.Create(user.ID, addressInput(true))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDataIntegrity))
	assert.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestUpdateOnlyAddressForcedDefault(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	created, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)

	// Turning the flag off on the only address is overridden
	updated, err := svc.Update(user.ID, created.ID, addressInput(false))
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestUpdateDemoteDefaultPromotesOther(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	a, err := svc.Create(user.ID, addressInput(true)) // A is default
	require.NoError(t, err)
	b, err := svc.Create(user.ID, addressInput(false)) // B is not
	require.NoError(t, err)

	// Update A to isDefault false: B becomes default, A loses it
	updated, err := svc.Update(user.ID, a.ID, addressInput(false))
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)

	var reloadedA, reloadedB domain.Address
	require.NoError(t, db.First(&reloadedA, a.ID).Error)
	require.NoError(t, db.First(&reloadedB, b.ID).Error)
	assert.False(t, reloadedA.IsDefault)
	assert.True(t, reloadedB.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestUpdatePromoteNonDefaultDemotesDefault(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	a, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	b, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, b.ID, addressInput(true))
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	var reloadedA domain.Address
	require.NoError(t, db.First(&reloadedA, a.ID).Error)
	assert.False(t, reloadedA.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestUpdateOwnershipMismatch(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", domain.RoleUser)
	intruder := seedUser(t, db, "intruder@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	created, err := svc.Create(owner.ID, addressInput(true))
	require.NoError(t, err)

	_, err = svc.Update(intruder.ID, created.ID, addressInput(false))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	// No mutation happened
	var reloaded domain.Address
	require.NoError(t, db.First(&reloaded, created.ID).Error)
	assert.True(t, reloaded.IsDefault)
	assert.Equal(t, created.Street, reloaded.Street)
}

func TestUpdateMissingAddress(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	_, err := svc.Update(user.ID, 999, addressInput(false))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteOnlyAddressLeavesZero(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	created, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(user.ID, created.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Address{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteDefaultPromotesEarliestOther(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	a, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	b, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)
	c, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, a.ID))

	// The earliest remaining address is promoted
	var reloadedB, reloadedC domain.Address
	require.NoError(t, db.First(&reloadedB, b.ID).Error)
	require.NoError(t, db.First(&reloadedC, c.ID).Error)
	assert.True(t, reloadedB.IsDefault)
	assert.False(t, reloadedC.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestDeleteNonDefaultDirect(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	a, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	b, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, b.ID))

	var reloadedA domain.Address
	require.NoError(t, db.First(&reloadedA, a.ID).Error)
	assert.True(t, reloadedA.IsDefault)
	assertExactlyOneDefault(t, db, user.ID)
}

func TestDeleteOwnershipMismatch(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", domain.RoleUser)
	intruder := seedUser(t, db, "intruder@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	created, err := svc.Create(owner.ID, addressInput(true))
	require.NoError(t, err)

	err = svc.Delete(intruder.ID, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	var count int64
	require.NoError(t, db.Model(&domain.Address{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestInvariantHoldsAcrossMixedSequence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", domain.RoleUser)
	svc := NewAddressService(db)

	a, err := svc.Create(user.ID, addressInput(false))
	require.NoError(t, err)
	assertExactlyOneDefault(t, db, user.ID)

	b, err := svc.Create(user.ID, addressInput(true))
	require.NoError(t, err)
	assertExactlyOneDefault(t, db, user.ID)

	_, err = svc.Update(user.ID, b.ID, addressInput(false))
	require.NoError(t, err)
	assertExactlyOneDefault(t, db, user.ID)

	require.NoError(t, svc.Delete(user.ID, a.ID))
	assertExactlyOneDefault(t, db, user.ID)
}
