package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNetwork    = errors.New("employee store: network failure")
	ErrHTTPStatus = errors.New("employee store: unexpected response status")
	ErrValidation = errors.New("employee store: validation failed")
	ErrNotFound   = errors.New("employee store: not found")
)

// StatusError reports a non-2xx response from the employee service.
// It matches ErrHTTPStatus, and additionally ErrNotFound for 404 and
// ErrValidation for 400 and 422.
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StatusError) Unwrap() []error {
	errs := []error{ErrHTTPStatus}
	switch e.StatusCode {
	case http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		errs = append(errs, ErrValidation)
	}
	return errs
}
