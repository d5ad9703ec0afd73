package apiexception

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Error is the value a handler raises at the point of failure. It references
// an ErrorCode and optionally overrides the HTTP status, user-facing text,
// logging directives, and response headers. An Error is consumed exactly once
// by the registered middleware, which renders it into the configured response
// format and writes the matching log record.
type Error struct {
	// Code is the declared error code backing this failure.
	Code ErrorCode
	// Status is the logical outcome category. Defaults to StatusFail.
	Status Status
	// HTTPStatus, when non-zero, wins over the category default table.
	HTTPStatus int
	// Message overrides Code.Message when non-empty.
	Message string
	// Description overrides Code.Description when non-empty.
	Description string
	// Log reports whether the middleware should log this error at all.
	// Subordinate to the registration-wide logging switch.
	Log bool
	// LogMessage is extra free-text context appearing only in logs.
	LogMessage string
	// LogFields are extra structured fields appearing only in logs.
	LogFields map[string]any
	// Headers are merged onto the response, after the echo policy.
	Headers map[string]string

	// Raise-site context, captured while the raising frame is still live.
	// The deferred log record in the middleware runs after the handler has
	// returned, so capturing there would only see middleware frames.
	stack     []byte
	raiseFile string
	raiseLine int
}

// ErrorOption customizes an Error at construction time.
type ErrorOption func(*Error)

// New constructs an Error for the given code. Without options the error is a
// FAIL with the code's own message and description, logged, and with the HTTP
// status resolved from the category defaults at render time.
func New(code ErrorCode, opts ...ErrorOption) *Error {
	e := &Error{
		Code:   code,
		Status: StatusFail,
		Log:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithHTTPStatus pins the response HTTP status, bypassing the defaults table.
func WithHTTPStatus(status int) ErrorOption {
	return func(e *Error) { e.HTTPStatus = status }
}

// WithStatus sets the logical outcome category (SUCCESS/WARNING/FAIL).
func WithStatus(s Status) ErrorOption {
	return func(e *Error) { e.Status = s }
}

// WithMessage overrides the code's user-facing message.
func WithMessage(msg string) ErrorOption {
	return func(e *Error) { e.Message = msg }
}

// WithDescription overrides the code's detailed description.
func WithDescription(desc string) ErrorOption {
	return func(e *Error) { e.Description = desc }
}

// WithoutLog suppresses the log record for this error only.
func WithoutLog() ErrorOption {
	return func(e *Error) { e.Log = false }
}

// WithLogMessage attaches free-text context that appears only in logs,
// never in the response body.
func WithLogMessage(msg string) ErrorOption {
	return func(e *Error) { e.LogMessage = msg }
}

// WithLogFields attaches structured context that appears only in logs. The
// caller is responsible for masking anything sensitive before passing it in.
func WithLogFields(fields map[string]any) ErrorOption {
	return func(e *Error) { e.LogFields = fields }
}

// WithHeaders sets extra headers merged onto the response. Blank keys and
// empty values are dropped at render time.
func WithHeaders(headers map[string]string) ErrorOption {
	return func(e *Error) { e.Headers = headers }
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s (status %s)", e.Code.Code, e.message(), e.Status)
}

// message resolves the effective user-facing message: explicit override
// first, then the code's own.
func (e *Error) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code.Message
}

// description resolves the effective description the same way.
func (e *Error) description() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code.Description
}

// resolveHTTPStatus applies the precedence chain: explicit status on the
// error, then the registration's category table, then the hardcoded fallback.
func (e *Error) resolveHTTPStatus(statusCodes map[Status]int) int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	if code, ok := statusCodes[e.Status]; ok {
		return code
	}
	return fallbackStatus(e.Status)
}

// Raise attaches err to the request context and aborts the remaining handler
// chain. The middleware installed by Register renders it once the handler
// returns. Handlers should return immediately after calling Raise.
//
// Raise records the caller's location and, when the error is to be logged,
// its stack, so the log record points at the raise site rather than at the
// middleware that renders it.
func Raise(c *gin.Context, err *Error) {
	if _, file, line, ok := runtime.Caller(1); ok {
		err.raiseFile, err.raiseLine = file, line
	}
	if err.Log {
		err.stack = debug.Stack()
	}
	_ = c.Error(err)
	c.Abort()
}
