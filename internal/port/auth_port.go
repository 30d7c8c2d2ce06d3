package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CredentialRegistry interface {
	// Authenticate returns the identity registered under email when password matches it.
	Authenticate(email, password string) (domain.Identity, error)
	Exists(email string) bool
	// Owns reports whether id belongs to a registered identity.
	Owns(id string) bool
}

type Notifier interface {
	PasswordReset(ctx context.Context, email string) error
}
