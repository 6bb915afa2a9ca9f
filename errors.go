package lattice

import "fmt"

// Code is a machine-readable error code.
type Code string

const (
	CodeOutOfBounds      Code = "OUT_OF_BOUNDS"
	CodeMissingArgument  Code = "MISSING_ARGUMENT"
	CodeArgumentType     Code = "ARGUMENT_TYPE"
	CodeTransformFailure Code = "TRANSFORM_FAILURE"
	CodeAlreadyOpen      Code = "ALREADY_OPEN"
	CodeHostUnavailable  Code = "HOST_UNAVAILABLE"
	CodeSessionClosed    Code = "SESSION_CLOSED"
	CodeUnknownRegion    Code = "UNKNOWN_REGION"
	CodeInvalidInterface Code = "INVALID_INTERFACE"
	CodeStaleView        Code = "STALE_VIEW"
)

// Error is the domain error type carried by every failure lattice reports.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks. They match any *Error with the same code.
var (
	ErrOutOfBounds      = &Error{Code: CodeOutOfBounds, Message: "cell out of bounds"}
	ErrMissingArgument  = &Error{Code: CodeMissingArgument, Message: "missing argument"}
	ErrArgumentType     = &Error{Code: CodeArgumentType, Message: "argument type mismatch"}
	ErrTransformFailure = &Error{Code: CodeTransformFailure, Message: "transform failed"}
	ErrAlreadyOpen      = &Error{Code: CodeAlreadyOpen, Message: "viewer already has an open interface"}
	ErrHostUnavailable  = &Error{Code: CodeHostUnavailable, Message: "host surface unavailable"}
	ErrSessionClosed    = &Error{Code: CodeSessionClosed, Message: "session closed"}
	ErrUnknownRegion    = &Error{Code: CodeUnknownRegion, Message: "unknown region"}
	ErrStaleView        = &Error{Code: CodeStaleView, Message: "view used after its pass"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
