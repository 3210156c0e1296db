package commands

import (
	"context"
	"errors"
	"sync"

	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// LoginCommandHandler verifies a password and issues a credential.
//
// Failure modes:
//   - unknown email or wrong password: errs.RejectedError with InvalidCredentials,
//     the same for both so accounts cannot be probed
//   - right password, other portal: errs.RejectedError with RoleMismatch naming the stored role
//
// The password is checked before the role, so the stored role is only disclosed
// to someone who knows the password. An unknown email is still compared against
// a decoy hash, so both failures take as long as one hash comparison.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	codec      ports.CredentialCodec
	decoy      *decoyHash
}

// decoyPassword is hashed once per handler to get a hash of the configured cost.
const decoyPassword = "cafeteria-login-decoy"

type decoyHash struct {
	once  sync.Once
	value string
}

func (d *decoyHash) get(hasher ports.PasswordHasher) string {
	d.once.Do(func() {
		d.value, _ = hasher.Hash(decoyPassword)
	})
	return d.value
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	codec ports.CredentialCodec,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		codec:      codec,
		decoy:      &decoyHash{},
	}
}

// Handle returns the signed credential. Login reads only, so no transaction is opened.
func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (ports.Credential, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Credential{}, err
	}

	account, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		_, _ = h.hasher.Matches(h.decoy.get(h.hasher), cmd.Password())
		return ports.Credential{}, errs.NewRejectedError(errs.ReasonInvalidCredentials)
	}
	if err != nil {
		return ports.Credential{}, errs.NewUnavailableError("user store", err)
	}

	ok, err := h.hasher.Matches(account.PasswordHash(), cmd.Password())
	if err != nil {
		return ports.Credential{}, err
	}
	if !ok {
		return ports.Credential{}, errs.NewRejectedError(errs.ReasonInvalidCredentials)
	}

	if account.Role() != cmd.Role() {
		return ports.Credential{}, errs.NewRoleMismatchError(account.Role().String(), cmd.Role().String())
	}

	return h.codec.Issue(ports.Principal{
		Subject: account.ID().String(),
		Role:    account.Role(),
	})
}
