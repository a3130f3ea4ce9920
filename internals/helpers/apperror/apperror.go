package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

type Kind string

const (
	KindValidation            Kind = "VALIDATION_ERROR"
	KindNotFound              Kind = "NOT_FOUND"
	KindDuplicateKey          Kind = "DUPLICATE_KEY"
	KindRegistrationClosed    Kind = "REGISTRATION_CLOSED"
	KindDeadlinePassed        Kind = "DEADLINE_PASSED"
	KindTournamentFull        Kind = "TOURNAMENT_FULL"
	KindDuplicateRegistration Kind = "DUPLICATE_REGISTRATION"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindForbidden             Kind = "FORBIDDEN"
	KindInternal              Kind = "INTERNAL_ERROR"
)

// Error is the failure every service returns to its caller.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey, KindRegistrationClosed, KindDeadlinePassed,
		KindTournamentFull, KindDuplicateRegistration:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// Field builds a single-field validation failure.
func Field(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}

func NotFound(msg string) *Error           { return New(KindNotFound, msg) }
func DuplicateKey(msg string) *Error       { return New(KindDuplicateKey, msg) }
func RegistrationClosed(msg string) *Error { return New(KindRegistrationClosed, msg) }
func DeadlinePassed(msg string) *Error     { return New(KindDeadlinePassed, msg) }
func TournamentFull(msg string) *Error     { return New(KindTournamentFull, msg) }
func Unauthorized(msg string) *Error       { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error          { return New(KindForbidden, msg) }

func DuplicateRegistration(msg string) *Error {
	return New(KindDuplicateRegistration, msg)
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

type sqlStateErr interface {
	SQLState() string
}

// FromDB classifies a persistence error. Unique violations become
// DuplicateKey, FK violations become Validation, anything else Internal.
func FromDB(err error, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	code := ""
	var pqErr *pq.Error
	var stateErr sqlStateErr
	switch {
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case errors.As(err, &stateErr):
		code = stateErr.SQLState()
	}

	switch code {
	case "23505":
		if duplicateMsg == "" {
			duplicateMsg = "record already exists"
		}
		return &Error{Kind: KindDuplicateKey, Message: duplicateMsg, Err: err}
	case "23503":
		return &Error{Kind: KindValidation, Message: "referenced record does not exist", Err: err}
	case "23514":
		return &Error{Kind: KindValidation, Message: "value violates a constraint", Err: err}
	}
	return Internal(err)
}
