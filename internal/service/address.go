package service

import (
	"errors" // Error comparison

	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// AddressInput carries the writable address fields
type AddressInput struct {
	Street    string // Street line
	City      string // City name
	State     string // State name
	Phone     string // Contact phone number
	IsDefault bool   // Requested default flag
}

// AddressService maintains the invariant that a user with at least one
// address has exactly one marked default. Every multi-step flip runs inside
// a single transaction so concurrent requests cannot observe two defaults.
type AddressService struct {
	db *gorm.DB // Database handle
}

// NewAddressService builds an AddressService on the given database
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// List returns the user's addresses, default first
func (s *AddressService) List(userID uint) ([]domain.Address, error) {
	var addresses []domain.Address
	// Query all addresses for the user, default address first
	if err := s.db.Where("user_id = ?", userID).Order("is_default desc, id asc").Find(&addresses).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return addresses, nil
}

// Create adds an address for the user. The first address is forced default
// regardless of the requested flag; a requested default flips the previous
// default off in the same transaction.
func (s *AddressService) Create(userID uint, in AddressInput) (*domain.Address, error) {
	address := domain.Address{
		UserID: userID,    // Owning user
		Street: in.Street, // Street line
		City:   in.City,   // City name
		State:  in.State,  // State name
		Phone:  in.Phone,  // Contact phone number
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64 // Number of addresses the user already has
		if err := tx.Model(&domain.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		// First address is always the default
		if count == 0 {
			address.IsDefault = true
			return createAddress(tx, &address)
		}
		// Non-default address needs no flip
		if !in.IsDefault {
			return createAddress(tx, &address)
		}
		// Requested default: demote the current default first. A user with
		// addresses but no default is a state no valid sequence produces.
		var current domain.Address
		if err := tx.Where("user_id = ? AND is_default = ?", userID, true).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.DataIntegrityMissing("Please contact support")
			}
			return apperr.Internal(err)
		}
		if err := tx.Model(&current).Update("is_default", false).Error; err != nil {
			return apperr.Internal(err)
		}
		address.IsDefault = true
		return createAddress(tx, &address)
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Update modifies an address. The user's only address stays default; a
// default address losing the flag promotes the earliest other address; a
// non-default address gaining the flag demotes the current default.
func (s *AddressService) Update(userID, addressID uint, in AddressInput) (*domain.Address, error) {
	var address domain.Address
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Load the target address
		if err := tx.First(&address, addressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("This address does not exist")
			}
			return apperr.Internal(err)
		}
		// Only the owning user may update
		if err := authorizeOwner(address.UserID, userID); err != nil {
			return err
		}
		var count int64 // Number of addresses the user has
		if err := tx.Model(&domain.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		// The user's only address is always the default
		if count == 1 {
			return applyAddressUpdate(tx, &address, in, true)
		}
		switch {
		case address.IsDefault && !in.IsDefault:
			// Losing the default flag: promote a replacement first
			replacement, err := earliestOtherAddress(tx, userID, addressID)
			if err != nil {
				return err
			}
			if err := tx.Model(replacement).Update("is_default", true).Error; err != nil {
				return apperr.Internal(err)
			}
			return applyAddressUpdate(tx, &address, in, false)
		case !address.IsDefault && in.IsDefault:
			// Gaining the default flag: demote the current default first
			var current domain.Address
			if err := tx.Where("user_id = ? AND is_default = ?", userID, true).First(&current).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.DataIntegrityMissing("Please contact support - something went wrong.")
				}
				return apperr.Internal(err)
			}
			if err := tx.Model(&current).Update("is_default", false).Error; err != nil {
				return apperr.Internal(err)
			}
			return applyAddressUpdate(tx, &address, in, true)
		default:
			// Default flag unchanged
			return applyAddressUpdate(tx, &address, in, address.IsDefault)
		}
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Delete removes an address. Deleting the default while siblings exist
// promotes the earliest other address before the row goes away.
func (s *AddressService) Delete(userID, addressID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var address domain.Address
		// Load the target address
		if err := tx.First(&address, addressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("This address does not exist")
			}
			return apperr.Internal(err)
		}
		// Only the owning user may delete
		if err := authorizeOwner(address.UserID, userID); err != nil {
			return err
		}
		var count int64 // Number of addresses the user has
		if err := tx.Model(&domain.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		// The only address or a non-default one can go directly
		if count == 1 || !address.IsDefault {
			if err := tx.Delete(&address).Error; err != nil {
				return apperr.Internal(err)
			}
			return nil
		}
		// Deleting the default: promote a replacement first
		replacement, err := earliestOtherAddress(tx, userID, addressID)
		if err != nil {
			return err
		}
		if err := tx.Model(replacement).Update("is_default", true).Error; err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Delete(&address).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// createAddress inserts the row, wrapping driver failures
func createAddress(tx *gorm.DB, address *domain.Address) error {
	if err := tx.Create(address).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// applyAddressUpdate writes the input fields and the resolved default flag
func applyAddressUpdate(tx *gorm.DB, address *domain.Address, in AddressInput, isDefault bool) error {
	updates := map[string]any{
		"street":     in.Street, // Street line
		"city":       in.City,   // City name
		"state":      in.State,  // State name
		"phone":      in.Phone,  // Contact phone number
		"is_default": isDefault, // Resolved default flag
	}
	if err := tx.Model(address).Updates(updates).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// earliestOtherAddress picks the replacement default: the user's earliest
// created address other than the excluded one. Missing replacement means
// the caller's count was wrong, which only a bug can cause.
func earliestOtherAddress(tx *gorm.DB, userID, excludeID uint) (*domain.Address, error) {
	var replacement domain.Address
	err := tx.Where("user_id = ? AND id <> ?", userID, excludeID).Order("id asc").First(&replacement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.DataIntegrityMissing("This address does not exist - something went wrong.")
		}
		return nil, apperr.Internal(err)
	}
	return &replacement, nil
}
