package domain

import (
	"errors"
	"fmt"
)

// ErrHoneypot marks a submission that filled the hidden form field. It is
// rejected without a field error so automated abuse gets no signal.
var ErrHoneypot = errors.New("honeypot field present")

var (
	ErrStoreNotConfigured     = errors.New("document store not configured")
	ErrLeadStoreNotConfigured = errors.New("lead store not configured")
)

// ValidationError carries field-scoped, localized messages. It is
// user-correctable and never logged as a system fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// UploadError is an external media-service failure for a specific file.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %q: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// StoreWriteError is fatal to a submission. Detail stays server-side.
type StoreWriteError struct {
	StatusCode int
	Message    string
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("document store write failed (status %d): %s", e.StatusCode, e.Message)
}

// FetchError is a read-path failure with no usable cache to fall back on.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("document fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
