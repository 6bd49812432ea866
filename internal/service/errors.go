package service

import "errors"

var (
	// ErrSelfDelete is returned when an administrator tries to delete their
	// own account.
	ErrSelfDelete = errors.New("administrators cannot delete their own account")

	// ErrInvalidPage is returned for negative pagination parameters.
	ErrInvalidPage = errors.New("invalid pagination parameters")
)
