package domain

import "errors"

// Domain error taxonomy. Every storage or auth failure crossing a layer
// boundary is mapped onto one of these; raw driver errors never escape the
// repository layer.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountDisabled   = errors.New("account is disabled")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidTradeInput = errors.New("invalid trade input")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrStoreClosed       = errors.New("store is closed")
	ErrForbidden         = errors.New("operation not permitted")
)
