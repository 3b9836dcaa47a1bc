package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnreadableInput   = errors.New("unreadable input")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrTextTooLong       = errors.New("text exceeds annotator max length")
)
