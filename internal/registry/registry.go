package registry

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/crypto/bcrypt"
)

// Account is a registry entry before hashing.
type Account struct {
	Identity domain.Identity
	Password string
}

type entry struct {
	identity     domain.Identity
	passwordHash []byte
}

// Registry is a fixed, read-only set of accounts keyed by exact email.
type Registry struct {
	byEmail map[string]entry
	ids     map[string]struct{}
}

var _ port.CredentialRegistry = (*Registry)(nil)

// DefaultAccounts are the demo owner and customer.
func DefaultAccounts() []Account {
	return []Account{
		{
			Identity: domain.Identity{
				ID:           "1",
				Email:        "owner@example.com",
				FirstName:    "John",
				LastName:     "Owner",
				ProfileImage: "https://randomuser.me/api/portraits/men/1.jpg",
				Role:         domain.RoleOwner,
			},
			Password: "password",
		},
		{
			Identity: domain.Identity{
				ID:           "2",
				Email:        "customer@example.com",
				FirstName:    "Jane",
				LastName:     "Customer",
				ProfileImage: "https://randomuser.me/api/portraits/women/1.jpg",
				Role:         domain.RoleCustomer,
			},
			Password: "password",
		},
	}
}

// New hashes the account passwords with cost. bcrypt.MinCost is enough for a demo registry.
func New(accounts []Account, cost int) (*Registry, error) {
	r := &Registry{
		byEmail: make(map[string]entry, len(accounts)),
		ids:     make(map[string]struct{}, len(accounts)),
	}

	for _, a := range accounts {
		if a.Identity.Email == "" {
			return nil, fmt.Errorf("account[%s] email is empty", a.Identity.ID)
		}
		if _, ok := r.byEmail[a.Identity.Email]; ok {
			return nil, fmt.Errorf("account[%s] is duplicated", a.Identity.Email)
		}
		if !a.Identity.Role.Valid() {
			return nil, fmt.Errorf("account[%s] role[%s] is not valid", a.Identity.Email, a.Identity.Role)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("bcrypt.GenerateFromPassword[%s]: %w", a.Identity.Email, err)
		}

		r.byEmail[a.Identity.Email] = entry{identity: a.Identity, passwordHash: hash}
		r.ids[a.Identity.ID] = struct{}{}
	}

	return r, nil
}

func (r *Registry) Authenticate(email, password string) (domain.Identity, error) {
	e, ok := r.byEmail[email]
	if !ok {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(e.passwordHash, []byte(password)); err != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	return e.identity, nil
}

func (r *Registry) Exists(email string) bool {
	_, ok := r.byEmail[email]
	return ok
}

func (r *Registry) Owns(id string) bool {
	_, ok := r.ids[id]
	return ok
}
