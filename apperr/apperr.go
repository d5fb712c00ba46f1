package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind is a stable, machine-readable error category surfaced to clients.
type Kind string

const (
	Unauthenticated       Kind = "Unauthenticated"
	InvalidCredential     Kind = "InvalidCredential"
	EmailInUse            Kind = "EmailInUse"
	UserNotFound          Kind = "UserNotFound"
	ProductNotFound       Kind = "ProductNotFound"
	ProductNotInCart      Kind = "ProductNotInCart"
	EmptyCart             Kind = "EmptyCart"
	IncompleteForm        Kind = "IncompleteForm"
	OrderSubmissionFailed Kind = "OrderSubmissionFailed"
	BadRequest            Kind = "BadRequest"
	Internal              Kind = "Internal"
)

// Error is a request-scoped failure with an HTTP status and a stable kind.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error with the given kind, HTTP status and client message.
func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Wrap is New with an underlying cause attached for logs and errors.Is.
func Wrap(kind Kind, status int, message string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

// KindOf extracts the kind from err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

type errorBody struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Write renders err as the JSON error body every handler uses. Errors that
// are not *Error are masked as a generic 500.
func Write(w http.ResponseWriter, err error) {
	body := errorBody{Status: http.StatusInternalServerError, Message: "Something went wrong", Kind: Internal}
	var e *Error
	if errors.As(err, &e) {
		body.Status = e.Status
		body.Message = e.Message
		body.Kind = e.Kind
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	json.NewEncoder(w).Encode(body)
}
