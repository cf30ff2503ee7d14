package calculator

import "errors"

var (
	// ErrInvalidArgument aborts an operation whose parameters can never succeed,
	// e.g. an endpoint offset not below the interval or a missing column.
	ErrInvalidArgument = errors.New("calculator: invalid argument")

	// ErrTypeMismatch marks an input to Lag/Diff that is not a numeric vector or
	// matrix. Callers may skip the item and continue.
	ErrTypeMismatch = errors.New("calculator: not a numeric vector or matrix")
)
