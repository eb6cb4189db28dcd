package constant

import (
	"errors"
	"fmt"
)

// Error is returned by services; handlers map it onto the response envelope.
type Error interface {
	error
	Code() int
	Message() string
	Field() string
}

// CustomError carries a code from ErrorMessages, the offending request field for
// validation failures, and the underlying cause for storage failures.
type CustomError struct {
	code    int
	message string
	field   string
	cause   error
}

func (e *CustomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code: %d, message: %s: %v", e.code, e.message, e.cause)
	}
	if e.field != "" {
		return fmt.Sprintf("code: %d, field: %s, message: %s", e.code, e.field, e.message)
	}
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int       { return e.code }
func (e *CustomError) Message() string { return e.message }
func (e *CustomError) Field() string   { return e.field }
func (e *CustomError) Unwrap() error   { return e.cause }

func NewError(code int) Error {
	return &CustomError{code: code, message: messageEN(code)}
}

// NewFieldError reports a validation failure on one request field.
func NewFieldError(code int, field string) Error {
	return &CustomError{code: code, message: messageEN(code), field: field}
}

// NewFieldErrorMsg is a field error with a message that does not come from the table.
func NewFieldErrorMsg(code int, field, message string) Error {
	return &CustomError{code: code, message: message, field: field}
}

// Wrap attaches a cause, typically a storage error, to a code.
func Wrap(code int, cause error) Error {
	return &CustomError{code: code, message: messageEN(code), cause: cause}
}

// CodeOf returns the code of the first constant.Error in err's chain, or
// CodeSystemError for foreign errors.
func CodeOf(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var ce Error
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return CodeSystemError
}

func IsCode(err error, code int) bool {
	return err != nil && CodeOf(err) == code
}

// GetErrorInfo looks up the bilingual message for code.
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}

func messageEN(code int) string {
	if info, ok := ErrorMessages[code]; ok {
		return info.EN
	}
	return "Unknown error"
}
