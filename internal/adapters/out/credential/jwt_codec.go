// Package credential implements the credential codec with signed JWTs and
// password hashing with bcrypt.
package credential

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC key accepted, matching the SHA-256 block output.
const MinSecretLength = 32

// DefaultTTL is the validity window of an issued credential.
const DefaultTTL = 24 * time.Hour

const issuer = "cafeteria"

var _ ports.CredentialCodec = (*JWTCodec)(nil)

// Claims is the signed payload: subject, role, issued-at and expiry.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies HS256 signed credentials.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Option customizes a JWTCodec.
type Option func(*JWTCodec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *JWTCodec) {
		c.now = now
	}
}

// NewJWTCodec creates a codec keyed by secret. ttl <= 0 means DefaultTTL.
func NewJWTCodec(secret []byte, ttl time.Duration, opts ...Option) (*JWTCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, errs.NewValueIsOutOfRangeError("credential secret length", len(secret), MinSecretLength, "unbounded")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &JWTCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
	)

	return c, nil
}

// Issue signs a credential for principal, valid from now for the configured ttl.
func (c *JWTCodec) Issue(principal ports.Principal) (ports.Credential, error) {
	if principal.Subject == "" {
		return ports.Credential{}, errs.NewValueIsRequiredError("subject")
	}
	if err := principal.Role.Validate(); err != nil {
		return ports.Credential{}, err
	}

	issuedAt := c.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(c.ttl)

	claims := Claims{
		Role: principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.Subject,
			ID:        kernel.NewUUID().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return ports.Credential{}, fmt.Errorf("sign credential: %w", err)
	}

	return ports.Credential{
		Token:     signed,
		Subject:   principal.Subject,
		Role:      principal.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks token and returns its principal.
//
// Expiry is decided before the signature, so a credential past its expiry is
// always Expired, whoever signed it. Everything that cannot be decoded into
// the expected claims is Malformed.
func (c *JWTCodec) Verify(token string) (ports.Principal, error) {
	var unverified Claims
	if _, _, err := c.parser.ParseUnverified(token, &unverified); err != nil {
		return ports.Principal{}, errs.NewRejectedErrorWithCause(errs.ReasonMalformed, err)
	}
	if unverified.ExpiresAt == nil {
		return ports.Principal{}, errs.NewRejectedErrorWithCause(errs.ReasonMalformed, jwt.ErrTokenRequiredClaimMissing)
	}
	if !c.now().Before(unverified.ExpiresAt.Time) {
		return ports.Principal{}, errs.NewRejectedError(errs.ReasonExpired)
	}

	var claims Claims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ports.Principal{}, errs.NewRejectedError(errs.ReasonInvalidSignature)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ports.Principal{}, errs.NewRejectedError(errs.ReasonExpired)
	default:
		return ports.Principal{}, errs.NewRejectedErrorWithCause(errs.ReasonMalformed, err)
	}

	role := user.Role(claims.Role)
	if err = role.Validate(); err != nil || claims.Subject == "" {
		return ports.Principal{}, errs.NewRejectedErrorWithCause(errs.ReasonMalformed, errors.New("subject or role missing"))
	}

	return ports.Principal{Subject: claims.Subject, Role: role}, nil
}
