package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that the backend answered 404 for the requested resource.
var ErrNotFound = errors.New("resource not found")

// StatusError is returned when the backend answers with a non-2xx status.
// The error payload, if any, is discarded; only the status is inspected.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}
