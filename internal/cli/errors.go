package cli

import "errors"

// ErrUsage marks errors caused by invalid flags or configuration.
var ErrUsage = errors.New("usage error")

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func (e *usageError) Is(target error) bool {
	return target == ErrUsage
}
