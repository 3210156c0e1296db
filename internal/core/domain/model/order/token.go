package order

import (
	"fmt"
	"strings"

	"cafeteria/internal/pkg/errs"
)

// DefaultTokenPrefix is prepended to the order sequence number.
const DefaultTokenPrefix = "CAF-"

// tokenOffset makes the first order of an empty store "…1001".
const tokenOffset = 1000

// Token is the unique, human-readable order identifier shown to the customer.
type Token struct {
	value string
}

// TokenFromSequence formats the n-th issued order number (n starts at 1).
func TokenFromSequence(prefix string, n int64) (Token, error) {
	if n < 1 {
		return Token{}, errs.NewValueIsOutOfRangeError("order sequence", n, 1, "unbounded")
	}
	return Token{value: fmt.Sprintf("%s%d", prefix, n+tokenOffset)}, nil
}

// NextToken is the token following count existing orders: count 0 yields prefix + "1001".
func NextToken(prefix string, count int64) (Token, error) {
	if count < 0 {
		return Token{}, errs.NewValueIsOutOfRangeError("order count", count, 0, "unbounded")
	}
	return TokenFromSequence(prefix, count+1)
}

// SequenceFromNumber maps the numeric part of a token back to its sequence
// number. Numbers at or below the offset map to 0.
func SequenceFromNumber(number int64) int64 {
	if number <= tokenOffset {
		return 0
	}
	return number - tokenOffset
}

// RestoreToken wraps a token read from storage.
func RestoreToken(value string) (Token, error) {
	if strings.TrimSpace(value) == "" {
		return Token{}, errs.NewValueIsRequiredError("token")
	}
	return Token{value: value}, nil
}

func (t Token) String() string {
	return t.value
}

// Validate rejects the zero value.
func (t Token) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("token")
	}
	return nil
}
