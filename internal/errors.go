package internal

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error represents an error that could be wrapping another error, it includes a code for determining
// what triggered the error.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

// ErrorCode defines supported error codes.
type ErrorCode uint

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeNotFound
	ErrorCodeInvalidArgument
	ErrorCodeInvalidIdentifier
	ErrorCodeStorage
)

// String returns the kind name used when reporting errors to callers.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeInvalidArgument:
		return "validation"
	case ErrorCodeInvalidIdentifier:
		return "invalid_identifier"
	case ErrorCodeStorage:
		return "storage"
	}

	return "unknown"
}

// WrapErrorf returns a wrapped error.
func WrapErrorf(orig error, code ErrorCode, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// NewErrorf instantiates a new error.
func NewErrorf(code ErrorCode, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

// Error returns the message, when wrapping errors the wrapped error is returned.
func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.orig
}

// Code returns the code representing this error.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Message returns the message without the wrapped chain.
func (e *Error) Message() string {
	return e.msg
}

// CodeOf returns the code of the outermost *Error in err's chain, ErrorCodeUnknown otherwise.
func CodeOf(err error) ErrorCode {
	var ierr *Error
	if !errors.As(err, &ierr) {
		return ErrorCodeUnknown
	}

	return ierr.Code()
}

// ValidationErrors returns the field -> reason pairs carried by err, nil if err is not a validation failure.
func ValidationErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	res := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		res[field] = ferr.Error()
	}

	return res
}
