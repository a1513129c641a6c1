package registration

import "errors"

var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")

	// ErrStaleVersion means the record changed between read and write.
	ErrStaleVersion = errors.New("registration changed concurrently")
)
