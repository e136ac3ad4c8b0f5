package serrors

import (
	"errors"
	"fmt"
	"net/http"
)

// BaseError is a coded error shared across services and controllers. Code is
// the stable machine-readable identifier surfaced in API error bodies; Status
// is the HTTP status the API layer emits for it.
type BaseError struct {
	Status  int
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(status int, code, message string) *BaseError {
	return &BaseError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func BadRequest(code, message string) *BaseError {
	return NewError(http.StatusBadRequest, code, message)
}

func NotFound(code, message string) *BaseError {
	return NewError(http.StatusNotFound, code, message)
}

// AsBase reports the *BaseError in err's chain, if any.
func AsBase(err error) (*BaseError, bool) {
	var be *BaseError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
