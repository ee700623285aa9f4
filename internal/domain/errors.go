package domain

import "errors"

// ErrDuplicateEmail is reported by the user store when an insert loses the
// uniqueness race on the email column. The unique index is authoritative;
// callers must not rely on a prior existence check alone.
var ErrDuplicateEmail = errors.New("email already registered")
