package api

import (
	"errors"
	"fmt"
)

// Error is returned for any non-2xx response. The server did answer, so
// Result still carries whatever it said.
type Error struct {
	Status int
	Result *Result
}

func (e *Error) Error() string {
	if msg := e.Result.Display(); msg != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// DisplayMessage returns the text to show a user for the outcome of a call:
// the server's message when it answered, otherwise the transport error.
func DisplayMessage(res *Result, err error) string {
	if apiErr, ok := AsError(err); ok {
		if msg := apiErr.Result.Display(); msg != "" {
			return msg
		}
		return apiErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return res.Display()
}
