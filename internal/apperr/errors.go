// Package apperr holds the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the target row does not exist. Handlers map it
// to a 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when a session exists but is not an admin.
var ErrForbidden = errors.New("forbidden")

// ValidationError carries per-field messages from input validation. It is a
// normal return value, not a server fault, and is never logged as one.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ConflictError signals a business-rule conflict, e.g. deleting a product that
// has existing orders. Handlers map it to a 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// AssetUploadError wraps a storage-provider failure during upload. The
// triggering operation aborts without persisting anything.
type AssetUploadError struct {
	Op  string // "file" or "image"
	Err error
}

func (e *AssetUploadError) Error() string {
	return fmt.Sprintf("upload %s asset: %v", e.Op, e.Err)
}

func (e *AssetUploadError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
