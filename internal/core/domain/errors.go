package domain

import "errors"

// Login and registration failures map onto these; the error handler turns
// them into HTTP statuses. ErrInvalidCredentials is deliberately generic so
// a missing user and a wrong password are indistinguishable to the caller.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// ValidationError reports a caller-fixable input problem. The message is
// safe to return verbatim in the response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with the given message.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}
