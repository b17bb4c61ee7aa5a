package service

import (
	"slices"

	"artshare/internal/http-api/models"
)

// Principal is the authenticated caller of an operation. A nil *Principal
// is an anonymous visitor.
type Principal struct {
	AccountID uint
	Username  string
	Role      models.Role
}

// Authorize is the one capability check used by middleware and services.
// With no roles any authenticated caller passes.
func Authorize(p *Principal, roles ...models.Role) error {
	if p == nil {
		return ErrAuthorization
	}
	if len(roles) == 0 || slices.Contains(roles, p.Role) {
		return nil
	}
	return ErrAuthorization
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// Owns reports whether the caller owns the account-scoped resource.
func (p *Principal) Owns(accountID uint) bool {
	return p != nil && p.AccountID == accountID
}

// canSee: approved artworks are public, pending ones only for owner and admins.
func canSee(p *Principal, artwork *models.Artwork) bool {
	return !artwork.Pending || p.Owns(artwork.AccountID) || p.IsAdmin()
}
