// Package apperr defines the caller-visible failure taxonomy shared by every
// package. Each kind is a sentinel usable with errors.Is and maps to a stable
// machine-readable code and an HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrNotFoundOrForbidden = errors.New("not found")
	ErrDataIntegrity       = errors.New("data integrity violation")
	ErrRenderFailure       = errors.New("render failure")
	ErrUpstream            = errors.New("upstream failure")
)

type kindInfo struct {
	status int
	code   string
	// public reports whether the error message may be shown to the caller.
	public bool
}

var kinds = map[error]kindInfo{
	ErrUnauthenticated:     {http.StatusUnauthorized, "unauthenticated", true},
	ErrForbidden:           {http.StatusForbidden, "forbidden", true},
	ErrValidation:          {http.StatusBadRequest, "validation_error", true},
	ErrConflict:            {http.StatusConflict, "conflict", true},
	ErrNotFoundOrForbidden: {http.StatusNotFound, "not_found", true},
	ErrDataIntegrity:       {http.StatusInternalServerError, "data_integrity", false},
	ErrRenderFailure:       {http.StatusBadGateway, "render_failure", false},
	ErrUpstream:            {http.StatusServiceUnavailable, "upstream_failure", false},
}

// Error is a classified failure. Message is safe to show to callers of
// public kinds; Err keeps the underlying cause for logs.
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// New classifies a failure with a caller-visible message.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies cause under kind.
func Wrap(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// WithCode classifies a failure and overrides the kind's default code.
func WithCode(kind error, code, message string) error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Describe maps err onto the status, stable code and message for a response.
// Unclassified errors are reported as internal without their text.
func Describe(err error) (status int, code string, message string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		info, ok := kinds[appErr.Kind]
		if !ok {
			return http.StatusInternalServerError, "internal", "Unexpected server error"
		}
		code = info.code
		if appErr.Code != "" {
			code = appErr.Code
		}
		message = appErr.Message
		if !info.public || message == "" {
			message = http.StatusText(info.status)
		}
		return info.status, code, message
	}
	for kind, info := range kinds {
		if errors.Is(err, kind) {
			message = http.StatusText(info.status)
			if info.public {
				message = kind.Error()
			}
			return info.status, info.code, message
		}
	}
	return http.StatusInternalServerError, "internal", "Unexpected server error"
}
