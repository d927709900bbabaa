package linalg

import "errors"

var (
	// ErrSingular is returned when a system matrix cannot be inverted.
	ErrSingular = errors.New("linalg: singular matrix")
	// ErrDimensionMismatch is returned when buffer lengths disagree with the system order.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")
)
