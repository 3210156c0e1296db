package ports

import (
	"time"

	"cafeteria/internal/core/domain/model/user"
)

// Principal is the verified identity behind a credential.
type Principal struct {
	Subject string
	Role    user.Role
}

// Credential is a freshly issued signed token.
type Credential struct {
	Token     string
	Subject   string
	Role      user.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CredentialCodec issues and verifies signed credentials. It is pure computation:
// no I/O, safe for concurrent use, keyed by a secret injected at construction.
type CredentialCodec interface {
	// Issue signs {subject, role, issued_at, expires_at}.
	Issue(principal Principal) (Credential, error)

	// Verify returns the principal, or errs.RejectedError with reason
	// Malformed, InvalidSignature or Expired.
	Verify(token string) (Principal, error)
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Matches reports whether password hashes to hash. A malformed hash is an error.
	Matches(hash, password string) (bool, error)
}
