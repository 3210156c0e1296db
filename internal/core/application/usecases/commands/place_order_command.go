package commands

import (
	"errors"
	"fmt"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrMissingEmail = errs.NewValueIsRequiredError("email")
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header stored in Redis.
const maxIdempotencyKeyLength = 128

// PlaceOrderCommand represents a customer checking out a cart.
// Prices are not part of the command: they are always taken from the menu.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(
//	    "b@x.com",
//	    []services.CartLine{{Name: "Tea", Quantity: 2}},
//	    "Cash",
//	    c.Request().Header.Get("Idempotency-Key"),
//	)
//	if errors.Is(err, ErrMissingEmail) {
//	    return echo.NewHTTPError(http.StatusBadRequest, "email missing")
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	fmt.Println(placed.Token()) // CAF-1001
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	email          kernel.Email
	lines          []services.CartLine
	paymentMethod  string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand normalizes the email and checks the cart has at least one line.
// An empty email fails with ErrMissingEmail before anything else is looked at.
func NewPlaceOrderCommand(
	email string,
	lines []services.CartLine,
	paymentMethod string,
	idempotencyKey string,
) (PlaceOrderCommand, error) {
	if strings.TrimSpace(email) == "" {
		return PlaceOrderCommand{}, ErrMissingEmail
	}

	cmd := PlaceOrderCommand{
		paymentMethod: strings.TrimSpace(paymentMethod),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setLines(lines),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Email returns the normalized customer email.
func (c PlaceOrderCommand) Email() kernel.Email {
	return c.email
}

// Lines returns a copy of the cart lines.
func (c PlaceOrderCommand) Lines() []services.CartLine {
	lines := make([]services.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// PaymentMethod returns the free-form payment label.
func (c PlaceOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// IdempotencyKey returns the client supplied key, empty when none was sent.
func (c PlaceOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// ItemNames lists the distinct dish names of the cart, used to load prices.
func (c PlaceOrderCommand) ItemNames() []string {
	seen := make(map[string]struct{}, len(c.lines))
	names := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		key := strings.ToLower(strings.TrimSpace(line.Name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, strings.TrimSpace(line.Name))
	}
	return names
}

func (c *PlaceOrderCommand) setEmail(raw string) error {
	email, err := kernel.NewEmail(raw)
	if err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []services.CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for idx, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			return errs.NewValueIsRequiredErrorWithCause("item name", fmt.Errorf("line %d has no name", idx))
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded")
		}
	}
	c.lines = make([]services.CartLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *PlaceOrderCommand) setIdempotencyKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if len(trimmed) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(trimmed), 0, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = trimmed
	return nil
}
