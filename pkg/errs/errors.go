package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusValidation     = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer = errors.New("Internal server error")
	ErrValidation     = errors.New("Missing or invalid fields in the request")
	ErrNotFound       = errors.New("Resource not found")
	ErrConflict       = errors.New("Conflicting record found")
)

var errorMap = map[error]int{
	ErrInternalServer: ErrStatusInternalServer,
	ErrValidation:     ErrStatusValidation,
	ErrNotFound:       ErrStatusNotFound,
	ErrConflict:       ErrStatusConflict,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
