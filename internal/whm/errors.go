package whm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Returned when the account listing came back without any accounts.
var ErrNoAccounts = errors.New("no cPanel users found")

// The request never produced a response, this covers dns, refused
// connections, tls failures and timeouts.
type NetworkError struct {
	Function string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Function, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// The API answered with anything other than 200.
type StatusError struct {
	Function   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("WHM API request %s failed (%d)", e.Function, e.StatusCode)
}

// The API answered with 200 but the body was not what we expected.
type MalformedResponseError struct {
	Function string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Function, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
