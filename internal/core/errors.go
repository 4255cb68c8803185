package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError is returned when a catalog lookup fails in transport, gets a
// non-2xx status, or receives a body that is not JSON.
type NetworkError struct {
	Op         string
	URL        string
	RequestID  string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Op, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.StatusCode == 0 && e.Message == "" && e.Err == nil {
		b.WriteString(": network error")
	}
	return b.String()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StorageError is returned when a persisted value cannot be read, written or decoded.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NetworkError for a 404 response.
func IsNotFound(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound
}
