package domain

import "errors"

// Token verification outcomes. Expiry is reported distinctly so callers can
// tell a stale session from a forged or malformed token.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Stable error kinds carried in the "error" field of every failure payload.
// Clients branch on the kind; the message is for humans.
const (
	KindUnauthenticated    = "unauthenticated"
	KindForbidden          = "forbidden"
	KindInvalidCredentials = "invalid_credentials"
	KindDuplicateUsername  = "duplicate_username"
	KindDuplicateName      = "duplicate_name"
	KindNotFound           = "not_found"
	KindInvalidReference   = "invalid_reference"
	KindValidation         = "validation_error"
	KindInternal           = "internal_error"
)
