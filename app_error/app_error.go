package app_error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Forbidden
	Unauthorized
)

type Error struct {
	kind  Kind
	field string
	err   error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Field names the offending input field for Validation errors, empty otherwise.
func (e *Error) Field() string {
	return e.field
}

func (e *Error) HTTPStatus() int {
	switch e.kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, err: fmt.Errorf(format, args...)}
}

func NewValidation(field string, format string, args ...any) *Error {
	return &Error{kind: Validation, field: field, err: fmt.Errorf(format, args...)}
}

func NewNotFound(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

func NewConflict(format string, args ...any) *Error {
	return New(Conflict, format, args...)
}

func NewForbidden(format string, args ...any) *Error {
	return New(Forbidden, format, args...)
}

func NewUnauthorized(format string, args ...any) *Error {
	return New(Unauthorized, format, args...)
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func Respond(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		body := gin.H{"error": e.Error()}
		if e.field != "" {
			body["field"] = e.field
		}
		c.JSON(e.HTTPStatus(), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
