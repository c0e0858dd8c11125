package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is neither the owner of the target
// resource nor an administrator.
var ErrForbidden = errors.New("access denied")

// ErrInsufficientFunds indicates that an account balance cannot cover the
// requested outgoing movement.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountClosed indicates that the target account is closed and refuses
// all balance mutations.
var ErrAccountClosed = errors.New("account is closed")

// ErrAccountBlocked indicates that the target account is blocked and refuses
// outgoing movement (withdrawals and transfers).
var ErrAccountBlocked = errors.New("account is blocked")

// ErrConflict indicates a concurrent-modification conflict in the store.
// The failed operation committed nothing, so the caller may retry it whole.
var ErrConflict = errors.New("storage conflict")
