package commands

import (
	"errors"

	"cafeteria/internal/pkg/errs"
)

// storeComponent names the order database in Unavailable errors.
const storeComponent = "order store"

// domainErrors pass through storeFailure untouched.
var domainErrors = []error{
	errs.ErrObjectNotFound,
	errs.ErrConflict,
	errs.ErrInvalidTransition,
	errs.ErrRejected,
	errs.ErrUnavailable,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	errs.ErrValueIsRequired,
}

// storeFailure reports a storage error as Unavailable unless the repository
// already classified it.
func storeFailure(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return errs.NewUnavailableError(storeComponent, err)
}
