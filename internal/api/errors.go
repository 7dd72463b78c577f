package api

import (
	"fmt"
	"net/http"
)

// FetchError reports an unreachable service or a non-2xx response.
type FetchError struct {
	Op     string
	Status int
	Err    error

	body []byte
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the same request could succeed.
func (e *FetchError) Temporary() bool {
	if e.Status == 0 {
		return true
	}
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// ParseError reports a response body that does not decode to the expected shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("api: %s: decode response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpdateError reports a failed write (update or delete) of one recipe.
type UpdateError struct {
	Op  string
	ID  string
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("api: %s recipe %s: %v", e.Op, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
