package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyRequests = errors.New("too many requests")
)

type Error struct {
	Status int
	Code   string
	Err    error
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

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated(msg string) error { return kind(ErrUnauthenticated, msg) }
func NotFound(msg string) error        { return kind(ErrNotFound, msg) }
func Validation(msg string) error      { return kind(ErrValidation, msg) }
func Conflict(msg string) error        { return kind(ErrConflict, msg) }
func TooManyRequests(msg string) error { return kind(ErrTooManyRequests, msg) }

func kind(sentinel error, msg string) error {
	if msg == "" {
		return sentinel
	}
	return errors.Join(sentinel, errors.New(msg))
}

// Classify maps an error onto an HTTP status and a stable machine code.
func Classify(err error) (int, string) {
	var apiErr *Error
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &apiErr) && apiErr.Status != 0:
		return apiErr.Status, apiErr.Code
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "too_many_requests"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

var sentinels = []error{ErrUnauthenticated, ErrNotFound, ErrValidation, ErrConflict, ErrForbidden, ErrTooManyRequests}

func isSentinel(err error) bool {
	for _, s := range sentinels {
		if err == s {
			return true
		}
	}
	return false
}

// Message returns the client-facing detail of a taxonomy error: the text
// joined to the sentinel, without the sentinel itself or any wrapping
// context added on the way up. Other errors are returned verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		joined, ok := cur.(interface{ Unwrap() []error })
		if !ok {
			continue
		}
		parts := joined.Unwrap()
		tagged := false
		details := make([]string, 0, len(parts))
		for _, p := range parts {
			if isSentinel(p) {
				tagged = true
				continue
			}
			details = append(details, p.Error())
		}
		if tagged && len(details) > 0 {
			return strings.Join(details, "; ")
		}
	}
	return err.Error()
}

// FromDB folds driver errors into the taxonomy. Unknown errors pass through.
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(msg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return Conflict(msg)
		case "23503", "23502", "23514", "22P02":
			return Validation(msg)
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return Conflict(msg)
	}
	return err
}
