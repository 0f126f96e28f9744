package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func userErrorf(format string, args ...any) error {
	return userError(fmt.Errorf(format, args...))
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// userErrors are sentinels caused by input rather than the environment.
var userErrors = []error{
	types.ErrIndexOutOfRange,
	types.ErrPlaceNotFound,
	types.ErrEmptyCatalog,
	types.ErrUnknownMode,
	types.ErrInvalidOp,
	types.ErrInvalidCatalog,
	types.ErrUnknownPlace,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrNoPlaces,
}

// classify wraps err as a user error when it matches a known input
// sentinel and as a system error otherwise.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps err to a process exit code. Errors that never passed
// through classify come from cobra's flag and argument parsing.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
