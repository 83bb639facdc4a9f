package constant

import "net/http"

type CustomError struct {
	StatusCode int
	Message    string
}

func NewCError(StatusCode int, Message string) CustomError {
	return CustomError{StatusCode: StatusCode, Message: Message}
}

func (err CustomError) Error() string {
	return err.Message
}

var (
	ErrNotLoaded = NewCError(http.StatusServiceUnavailable,
		"catalog not loaded")
	ErrUnknownCategory = NewCError(http.StatusBadRequest,
		"unknown category: must be one of new, trending, migrated")
	ErrUnknownSortField = NewCError(http.StatusBadRequest,
		"unknown sort field")
	ErrUnknownBucket = NewCError(http.StatusBadRequest,
		"unknown filter bucket")
	ErrTokenNotFound = NewCError(http.StatusNotFound,
		"token not found")
)
