package gateway

import (
	"errors"
	"fmt"
)

// NetworkError wraps a transport failure: the request never produced a
// server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a 4xx rejection of the submitted input. Detail carries
// the server's human-readable explanation.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Detail
}

// NotFoundError means the referenced identifier does not exist on the server.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Detail
}

// ServerError is a 5xx response. The server answered but could not process
// the request.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail)
}

// Detail extracts the server-supplied human-readable detail from an API
// error, if the error carries one. Transport failures carry no detail.
func Detail(err error) (string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.Detail != "" {
		return validationErr.Detail, true
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) && notFoundErr.Detail != "" {
		return notFoundErr.Detail, true
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		return serverErr.Detail, true
	}

	return "", false
}
