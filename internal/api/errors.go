// Package api is the client side of the club's upstream REST boundary.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindRateLimited Kind = "rate_limited"
	KindNetwork     Kind = "network"
	KindHTTP        Kind = "http"
	KindUnknown     Kind = "unknown"
)

// Wire error codes of the upstream API.
const (
	codeValidation  = "VALIDATION_ERROR"
	codeRateLimited = "RATE_LIMIT_EXCEEDED"
	codeNetwork     = "NETWORK_ERROR"
	codeHTTP        = "HTTP_ERROR"
)

// FieldError is a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned for every failed API call.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Status  int
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("api %s error", e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return KindUnknown
}

type wireError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func classify(status int, w *wireError) *Error {
	e := &Error{Code: w.Code, Message: w.Message, Status: status, Details: w.Details}

	switch {
	case status == http.StatusTooManyRequests || w.Code == codeRateLimited:
		e.Kind = KindRateLimited
	case w.Code == codeValidation || len(w.Details) > 0:
		e.Kind = KindValidation
	case status >= http.StatusBadRequest:
		e.Kind = KindHTTP
	default:
		e.Kind = KindUnknown
	}

	return e
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Code: codeNetwork, Message: err.Error(), Err: err}
}

func httpError(status int) *Error {
	return &Error{
		Kind:    KindHTTP,
		Code:    codeHTTP,
		Status:  status,
		Message: fmt.Sprintf("Error %d: %s", status, http.StatusText(status)),
	}
}
