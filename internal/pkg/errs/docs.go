// Package errs provides standardized error types for the cafeteria service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - RejectedError: For failed credential and permission checks, carrying a RejectReason
//   - ConflictError: For duplicate unique values such as emails, menu names or order tokens
//   - InvalidTransitionError: For order status changes the lifecycle forbids
//   - UnavailableError: For backing stores that cannot serve the request right now
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the error
//
// The HTTP adapter maps sentinels to status codes, so handlers never inspect
// error strings.
package errs
