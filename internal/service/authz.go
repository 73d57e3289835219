package service

import (
	"storefront/internal/apperr" // Error kinds
	"storefront/internal/domain" // Role constants
)

// authorizeOwner enforces the owner-only rule used across addresses, cart
// items and wishlist items
func authorizeOwner(ownerID, actorID uint) error {
	if ownerID != actorID {
		return apperr.Authorization("You are not authorized to perform this action")
	}
	return nil
}

// AuthorizeSelfOrAdmin enforces the self-or-admin rule used for user
// profile reads
func AuthorizeSelfOrAdmin(actorID uint, actorRole string, targetID uint) error {
	if actorRole != domain.RoleAdmin && actorID != targetID {
		return apperr.Authorization("Unauthorized.")
	}
	return nil
}
