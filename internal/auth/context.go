package auth

import (
	"context"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
)

// UserContext holds the identity decoded from a bearer token
type UserContext struct {
	UserID             uuid.UUID
	Email              string
	Name               string
	Company            string
	UserType           domain.UserType
	ForcePasswordReset bool
}

type userContextKey struct{}

func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// FromContext returns the identity stored by Authenticate. A nil identity counts as absent.
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	return user, ok && user != nil
}

// HasUserType reports whether the stored user type is one of types.
// This is an exact match: a "both" account does not satisfy "supplier".
func (u *UserContext) HasUserType(types ...domain.UserType) bool {
	for _, t := range types {
		if u.UserType == t {
			return true
		}
	}
	return false
}

// IsAdmin is true for operator accounts, which may act on any listing
func (u *UserContext) IsAdmin() bool {
	return u.UserType == domain.UserTypeAdmin
}
