package kernel

import (
	"errors"
	"strings"

	"cafeteria/internal/pkg/errs"
)

// ErrEmailIsNotConstructed is returned when validating a zero-value Email.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email")

// Email is a normalized customer or account address: trimmed and lower-cased.
// Two addresses differing only in case or surrounding blanks are the same Email,
// which is what makes order history lookups and account uniqueness work.
type Email struct {
	value string
}

// NewEmail normalizes raw and checks it has the local@domain shape.
// An empty or blank input yields a ValueIsRequiredError for "email".
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	local, domain, found := strings.Cut(normalized, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") || strings.ContainsAny(normalized, " \t") {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", errors.New("expected local@domain"))
	}

	return Email{value: normalized}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// IsEqual compares normalized addresses.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

// Validate returns ErrEmailIsNotConstructed for the zero value.
func (e Email) Validate() error {
	if e.value == "" {
		return ErrEmailIsNotConstructed
	}
	return nil
}
