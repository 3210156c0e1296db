// Package auth holds the authorization guard that runs in front of every
// protected operation.
package auth

import (
	"errors"
	"strings"

	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// ErrGuardIsNotConstructed is returned by a Guard that has no codec.
var ErrGuardIsNotConstructed = errors.New("Guard must be created via NewGuard constructor")

const bearerScheme = "Bearer"

// Guard turns a raw credential into a principal and enforces a required role.
// It performs no I/O beyond the codec's pure verification and keeps no state.
type Guard struct {
	codec ports.CredentialCodec
}

// NewGuard creates a guard backed by codec.
func NewGuard(codec ports.CredentialCodec) *Guard {
	return &Guard{codec: codec}
}

// Authenticate verifies a credential without requiring a role.
//
// Returns:
//   - ports.Principal on success
//   - errs.RejectedError with MissingCredential when token is blank
//   - the codec's Malformed, InvalidSignature or Expired rejection otherwise
func (g *Guard) Authenticate(token string) (ports.Principal, error) {
	if g == nil || g.codec == nil {
		return ports.Principal{}, ErrGuardIsNotConstructed
	}

	raw := StripBearer(token)
	if raw == "" {
		return ports.Principal{}, errs.NewRejectedError(errs.ReasonMissingCredential)
	}

	return g.codec.Verify(raw)
}

// Authorize verifies token and requires the principal to hold exactly required.
// A principal with another role gets errs.RejectedError with InsufficientRole,
// naming both the role held and the role required.
func (g *Guard) Authorize(token string, required user.Role) (ports.Principal, error) {
	principal, err := g.Authenticate(token)
	if err != nil {
		return ports.Principal{}, err
	}

	if err = Require(principal, required); err != nil {
		return ports.Principal{}, err
	}

	return principal, nil
}

// Require checks an already verified principal against a role.
func Require(principal ports.Principal, required user.Role) error {
	if principal.Role != required {
		return errs.NewInsufficientRoleError(principal.Role.String(), required.String())
	}
	return nil
}

// StripBearer accepts both "Bearer <token>" and a bare token, as sent by older clients.
func StripBearer(header string) string {
	trimmed := strings.TrimSpace(header)
	scheme, rest, _ := strings.Cut(trimmed, " ")
	if strings.EqualFold(scheme, bearerScheme) {
		return strings.TrimSpace(rest)
	}
	return trimmed
}
