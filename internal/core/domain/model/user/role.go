package user

import (
	"fmt"
	"strings"

	"cafeteria/internal/pkg/errs"
)

// Role gates which operations a credential may authorize.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole resolves a role name. An empty name means RoleUser, which is what
// self-registration defaults to.
func ParseRole(name string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of user, admin", name))
	}
}

// Validate rejects anything but RoleUser and RoleAdmin.
func (r Role) Validate() error {
	if r != RoleUser && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of user, admin", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
