package domain

import "errors"

// Identity errors shared by the auth service and the session store.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingRole        = errors.New("a role must be selected before registering")
)
