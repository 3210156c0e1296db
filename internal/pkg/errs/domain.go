package errs

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRejected is the sentinel matched by every RejectedError.
	ErrRejected = errors.New("request rejected")

	// ErrConflict is the sentinel matched by every ConflictError.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition is the sentinel matched by every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnavailable is the sentinel matched by every UnavailableError.
	ErrUnavailable = errors.New("service unavailable")
)

// RejectReason tells why a credential or an actor was turned away.
type RejectReason string

const (
	ReasonMissingCredential  RejectReason = "MissingCredential"
	ReasonMalformed          RejectReason = "Malformed"
	ReasonInvalidSignature   RejectReason = "InvalidSignature"
	ReasonExpired            RejectReason = "Expired"
	ReasonInsufficientRole   RejectReason = "InsufficientRole"
	ReasonInvalidCredentials RejectReason = "InvalidCredentials"
	ReasonRoleMismatch       RejectReason = "RoleMismatch"
)

// IsForbidden reports whether the caller was identified but lacks permission.
func (r RejectReason) IsForbidden() bool {
	return r == ReasonInsufficientRole || r == ReasonRoleMismatch
}

// RejectedError reports a failed authentication or authorization check.
// Role is the role the caller actually holds and RequiredRole is what the
// operation demanded; both are empty when the caller could not be identified.
type RejectedError struct {
	Reason       RejectReason
	Role         string
	RequiredRole string
	Cause        error
}

func NewRejectedError(reason RejectReason) *RejectedError {
	return &RejectedError{Reason: reason}
}

func NewRejectedErrorWithCause(reason RejectReason, cause error) *RejectedError {
	return &RejectedError{Reason: reason, Cause: cause}
}

// NewInsufficientRoleError names both the held and the required role.
func NewInsufficientRoleError(role, requiredRole string) *RejectedError {
	return &RejectedError{Reason: ReasonInsufficientRole, Role: role, RequiredRole: requiredRole}
}

// NewRoleMismatchError names the role stored for the account.
func NewRoleMismatchError(storedRole, requestedRole string) *RejectedError {
	return &RejectedError{Reason: ReasonRoleMismatch, Role: storedRole, RequiredRole: requestedRole}
}

func (e *RejectedError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s: %s (role is %s, required role is %s)", ErrRejected, e.Reason, e.Role, e.RequiredRole)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrRejected, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// RejectReasonOf extracts the reason from a RejectedError anywhere in the chain.
func RejectReasonOf(err error) (RejectReason, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}

// ConflictError reports that a unique value is already taken.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value}
}

func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s already exists (cause: %v)", ErrConflict, e.ParamName, sanitize(e.Value), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s already exists", ErrConflict, e.ParamName, sanitize(e.Value))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidTransitionError reports a status change the lifecycle does not allow.
type InvalidTransitionError struct {
	From fmt.Stringer
	To   fmt.Stringer
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnavailableError reports that a backing dependency could not serve the request.
// RetryAfter is a hint for clients and may be zero.
type UnavailableError struct {
	Component  string
	RetryAfter time.Duration
	Cause      error
}

func NewUnavailableError(component string, cause error) *UnavailableError {
	return &UnavailableError{Component: component, Cause: cause}
}

func NewUnavailableErrorWithRetry(component string, retryAfter time.Duration, cause error) *UnavailableError {
	return &UnavailableError{Component: component, RetryAfter: retryAfter, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnavailable, e.Component, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.Component)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
