// Package apperr defines the error taxonomy shared by services and handlers.
// Every error carries the HTTP status it maps to, so the boundary responder
// can shape the uniform failure payload without inspecting error strings.
package apperr

import "net/http"

type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}
