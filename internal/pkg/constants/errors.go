package constants

import "net/http"

// CodedError is an error carrying the HTTP status it should be reported with.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound            = NewCodedError("not found in db", http.StatusNotFound)
	ErrNotFound              = NewCodedError("not found", http.StatusNotFound)
	ErrBadRequest            = NewCodedError("bad request", http.StatusBadRequest)
	ErrUnauthorized          = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrMissingAuthCookie     = NewCodedError("missing auth cookie", http.StatusUnauthorized)
	ErrSizeFilterUnavailable = NewCodedError("size classes are only published for the census year, use size=all with a year", http.StatusBadRequest)
	ErrDatasetNotLoaded      = NewCodedError("datasets are not loaded", http.StatusServiceUnavailable)
	ErrNoDatabase            = NewCodedError("no database configured", http.StatusServiceUnavailable)
)
