package library

import (
	"fmt"
)

// Error codes carried by *Error.
const (
	CodeNotFound         = "not_found"
	CodeValidation       = "validation_error"
	CodeCorruptStore     = "corrupt_store"
	CodeStoreUnavailable = "store_unavailable"
)

// Error is a catalog error with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

// Is matches on code only, so errors.Is(err, ErrNotFound) holds for every
// not-found error regardless of its message.
func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.Code == err.Code
}

// Sentinels for errors.Is.
var (
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation       = &Error{Code: CodeValidation, Message: "validation error"}
	ErrCorruptStore     = &Error{Code: CodeCorruptStore, Message: "corrupt store"}
	ErrStoreUnavailable = &Error{Code: CodeStoreUnavailable, Message: "store unavailable"}
)

// NotFound returns an error indicating the given resource is missing.
func NotFound(resource string) error {
	return &Error{CodeNotFound, resource + " not found."}
}

func ValidationError(msg string) error {
	return &Error{CodeValidation, msg}
}

// CorruptStore reports a slot whose contents exist but cannot be decoded.
func CorruptStore(slot string, cause error) error {
	return &Error{CodeCorruptStore, fmt.Sprintf("slot %q holds malformed data: %v", slot, cause)}
}

func StoreUnavailable(slot string, cause error) error {
	return &Error{CodeStoreUnavailable, fmt.Sprintf("slot %q is unavailable: %v", slot, cause)}
}
