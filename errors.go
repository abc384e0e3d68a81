package snooze

import (
	"fmt"
	"strings"
)

// UserMessager is implemented by errors that carry a message suitable for
// showing to the person using the client. The presentation layer is the only
// place where errors become notifications; it checks for this interface and
// falls back to a generic notice otherwise.
type UserMessager interface {
	UserMessage() string
}

// ValidationError reports required fields that were missing from a
// submission, caught before any network call is made.
type ValidationError struct {
	fieldNames []string
}

func Invalid(fieldNames ...string) *ValidationError {
	return &ValidationError{fieldNames: fieldNames}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ValidationError: %v", e.fieldNames)
}

func (e *ValidationError) UserMessage() string {
	return fmt.Sprintf("Missing required fields: %v", strings.Join(e.fieldNames, ", "))
}

// Fields returns the names of the missing fields.
func (e *ValidationError) Fields() []string {
	return e.fieldNames
}

// AuthError reports rejected credentials or a missing/expired token,
// carrying the service's rejection reason when there is one.
type AuthError struct {
	reason string
	err    error
}

func AuthFailed(reason string, err error) *AuthError {
	return &AuthError{reason: reason, err: err}
}

func (e *AuthError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("AuthError: %v: %v", e.reason, e.err)
	}
	return fmt.Sprintf("AuthError: %v", e.reason)
}

func (e *AuthError) Unwrap() error { return e.err }

func (e *AuthError) UserMessage() string { return e.reason }

// ServiceError reports a failed exchange with the remote service: network
// failure, non-2xx response or a malformed response body. The message is
// stable per operation, the cause is kept for logging.
type ServiceError struct {
	msg string
	err error
}

func ServiceFailed(msg string, err error) *ServiceError {
	return &ServiceError{msg: msg, err: err}
}

func (e *ServiceError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("ServiceError: %v: %v", e.msg, e.err)
	}
	return fmt.Sprintf("ServiceError: %v", e.msg)
}

func (e *ServiceError) Unwrap() error { return e.err }

func (e *ServiceError) UserMessage() string { return e.msg }

// MalformedURLError reports a story URL that could not be parsed as an
// absolute http(s) URL.
type MalformedURLError struct {
	url string
	err error
}

func MalformedURL(url string, err error) *MalformedURLError {
	return &MalformedURLError{url: url, err: err}
}

func (e *MalformedURLError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("MalformedURLError: %q: %v", e.url, e.err)
	}
	return fmt.Sprintf("MalformedURLError: %q", e.url)
}

func (e *MalformedURLError) Unwrap() error { return e.err }

func (e *MalformedURLError) UserMessage() string {
	return fmt.Sprintf("Not a valid link: %v", e.url)
}
