package commands

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand exchanges an email and password for a credential. Role is the
// portal the user logs in through; it must match the stored role.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    kernel.Email
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password, role string) (LoginCommand, error) {
	cmd := LoginCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
		cmd.setRole(role),
	); err != nil {
		return LoginCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() kernel.Email {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}

func (c LoginCommand) Role() user.Role {
	return c.role
}

func (c *LoginCommand) setEmail(raw string) error {
	email, err := kernel.NewEmail(raw)
	if err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *LoginCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}

func (c *LoginCommand) setRole(raw string) error {
	role, err := user.ParseRole(raw)
	if err != nil {
		return err
	}
	c.role = role
	return nil
}
