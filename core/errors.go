package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR    int = 0
	EMISSING   int = 122 // resource or font slot does not exist
	EINVALID   int = 123 // validation failed
	ECONFIG    int = 124 // configuration missing or unusable
	EINTERNAL  int = 125 // internal error
	EMALFORMED int = 126 // malformed input data
	ERANGE     int = 127 // code point outside of the table's coordinate space
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case ECONFIG:
		return "configuration error"
	case EINTERNAL:
		return "internal error"
	case EMALFORMED:
		return "malformed input"
	case ERANGE:
		return "index out of range"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg != "" && e.msg != e.error.Error() {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
	}
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// ConfigError flags a missing or unusable configuration item. Configuration
// errors are fatal: no output may be written after one has occurred.
func ConfigError(err error, format string, v ...interface{}) error {
	return WrapError(err, ECONFIG, format, v...)
}

// MalformedError flags input data which cannot be decoded.
func MalformedError(format string, v ...interface{}) error {
	return Error(EMALFORMED, format, v...)
}

// IsFatal reports whether an error must abort a generation run.
// Out-of-range codes and missing font slots are recovered where they occur.
func IsFatal(err error) bool {
	switch Code(err) {
	case NOERROR, ERANGE, EMISSING:
		return false
	}
	return true
}

// UserError prints an error to stderr, preferring the user message of
// application errors.
func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
