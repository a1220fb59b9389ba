package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrNotFound      = errors.New("not found")
	ErrPersistence   = errors.New("persistence failure")
	ErrUnauthorized  = errors.New("unauthorized")
)

// InvalidUploadError is returned before anything touches the disk.
// Either MIME/Allowed or Size/Max is set, never both.
type InvalidUploadError struct {
	MIME    string
	Allowed []string
	Size    int64
	Max     int64
	Reason  string
}

func (e *InvalidUploadError) Error() string {
	switch {
	case e.Reason != "":
		return e.Reason
	case e.Max > 0:
		return fmt.Sprintf("File too large: %d bytes. Maximum size is %d bytes", e.Size, e.Max)
	default:
		return fmt.Sprintf("Invalid file type: %s. Allowed types are: %s", e.MIME, strings.Join(e.Allowed, ", "))
	}
}

func (e *InvalidUploadError) Unwrap() error {
	return ErrInvalidUpload
}

func NewInvalidMIME(mime string, allowed []string) *InvalidUploadError {
	return &InvalidUploadError{MIME: mime, Allowed: allowed}
}

func NewTooLarge(size, max int64) *InvalidUploadError {
	return &InvalidUploadError{Size: size, Max: max}
}

func NewBadUpload(reason string) *InvalidUploadError {
	return &InvalidUploadError{Reason: reason}
}

// NotFound wraps ErrNotFound with the entity and id that were looked up.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d %w", entity, id, ErrNotFound)
}

// Persistence wraps a store failure so callers can match it with errors.Is
// while the original driver error stays reachable for logging.
func Persistence(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, cause)
}

// Status maps an error from the domain, store or upload layers to an HTTP status.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidUpload):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
