package testutil

import "errors"

// ErrNotFound is returned by mocks when a row does not exist
var ErrNotFound = errors.New("not found")
