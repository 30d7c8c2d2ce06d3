package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// Identity is the profile of the authenticated user. It never carries a password.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         Role   `json:"role"`
}

func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}

// ProfileUpdate lists the identity fields a user may change. Nil fields are left as is.
// ID and Role are deliberately absent.
type ProfileUpdate struct {
	Email        *string
	FirstName    *string
	LastName     *string
	ProfileImage *string
}

// Apply returns a copy of identity with the non-nil fields of u merged in.
func (u ProfileUpdate) Apply(identity Identity) Identity {
	if u.Email != nil {
		identity.Email = *u.Email
	}
	if u.FirstName != nil {
		identity.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		identity.LastName = *u.LastName
	}
	if u.ProfileImage != nil {
		identity.ProfileImage = *u.ProfileImage
	}

	return identity
}
