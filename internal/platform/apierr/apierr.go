package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels classify failures for callers and the HTTP layer. Match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUpstream        = errors.New("upstream failure")
	ErrNoDirectReports = errors.New("no direct reports")
	ErrForbidden       = errors.New("forbidden")
)

type Error struct {
	Status int
	Code   string
	Err    error
	kind   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Err != nil {
		out = append(out, e.Err)
	}
	if e.kind != nil {
		out = append(out, e.kind)
	}
	return out
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Err: errors.New(msg), kind: ErrNotFound}
}

func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_error", Err: errors.New(msg), kind: ErrValidation}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Err: errors.New(msg), kind: ErrForbidden}
}

func NoDirectReports(msg string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: "no_direct_reports", Err: errors.New(msg), kind: ErrNoDirectReports}
}

// Upstream wraps a failed external call. err may be nil when the failure has no cause beyond msg.
func Upstream(err error, msg string) *Error {
	var wrapped error
	switch {
	case err == nil:
		wrapped = errors.New(msg)
	case msg == "":
		wrapped = err
	default:
		wrapped = fmt.Errorf("%s: %w", msg, err)
	}
	return &Error{Status: http.StatusBadGateway, Code: "upstream_error", Err: wrapped, kind: ErrUpstream}
}

// StatusOf maps an error chain to an HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoDirectReports):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the machine code for err, "internal_error" when unknown.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	switch StatusOf(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnprocessableEntity:
		return "no_direct_reports"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadGateway:
		return "upstream_error"
	default:
		return "internal_error"
	}
}
