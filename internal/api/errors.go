package api

import (
	"errors"
	"fmt"
)

// ErrInvalidServerResponse marks responses that arrived but did not carry
// the fields the backend contract promises. It is a contract violation, not
// something the user can fix by retyping a form.
var ErrInvalidServerResponse = errors.New("invalid server response")

// NetworkError wraps transport failures: the request never produced an HTTP
// response (DNS, refused connection, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success HTTP response. Message carries the backend's
// own message when it sent one, otherwise a generic fallback.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a ServerError with status 404.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == 404
}
