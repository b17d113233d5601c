package plotclient

import (
	"errors"
	"fmt"
)

// RepositoryError is one of *ValidationError, *AuthError, *NotFoundError or *NetworkError.
type RepositoryError interface {
	error
	// Detail is the best message available for showing to the user.
	Detail() string
	repositoryError()
}

// ValidationError is a payload the server rejected.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return "validation: " + e.Msg }
func (e *ValidationError) Detail() string { return e.Msg }
func (*ValidationError) repositoryError() {}

// AuthError means the session is missing or no longer accepted.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return "auth: " + e.Msg }
func (e *AuthError) Detail() string { return e.Msg }
func (*AuthError) repositoryError() {}

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return "not found: " + e.Msg }
func (e *NotFoundError) Detail() string { return e.Msg }
func (*NotFoundError) repositoryError() {}

// NetworkError covers transport failures, 5xx and any other unexpected response.
type NetworkError struct {
	Status int // 0 when no response was received
	Msg    string
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("network: %s: %v", e.Msg, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("network: status %d: %s", e.Status, e.Msg)
	}
	return "network: " + e.Msg
}
func (e *NetworkError) Detail() string { return e.Msg }
func (e *NetworkError) Unwrap() error { return e.Err }
func (*NetworkError) repositoryError() {}

// AsRepositoryError finds the RepositoryError in err's chain.
func AsRepositoryError(err error) (RepositoryError, bool) {
	var re RepositoryError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Kind names the error class for logs and metrics; nil is "ok".
func Kind(err error) string {
	if err == nil {
		return "ok"
	}
	re, ok := AsRepositoryError(err)
	if !ok {
		return "unknown"
	}
	switch re.(type) {
	case *ValidationError:
		return "validation"
	case *AuthError:
		return "auth"
	case *NotFoundError:
		return "not_found"
	default:
		return "network"
	}
}
