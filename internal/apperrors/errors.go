package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrConflict indicates a uniqueness violation or a state transition
// attempted from the wrong state (including a lost concurrent update).
var ErrConflict = errors.New("conflict")

// ErrBusinessRule indicates an accounting invariant violation: an
// unbalanced entry, a closed period, an inactive account, overlapping
// fiscal years, or currency mixing.
var ErrBusinessRule = errors.New("business rule violation")

// ErrStorage indicates an underlying store failure. The cause is kept
// in the wrap chain but is not exposed to HTTP clients.
var ErrStorage = errors.New("storage error")
