package analyses

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrStoreNotConfigured = errors.New("object store not configured")
	ErrNotFound           = errors.New("not found")
)

const (
	ErrorCodeValidation    = "validation_error"
	ErrorCodeUnsupported   = "unsupported_media_type"
	ErrorCodeTooLarge      = "file_too_large"
	ErrorCodeNotFound      = "not_found"
	ErrorCodeNotConfigured = "store_not_configured"
	ErrorCodeInternal      = "internal_error"
)
