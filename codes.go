package apiexception

// ErrorCode is an immutable record pairing a stable, machine-readable code
// string with default user-facing text. Applications declare their own codes
// as package-level values and reference them when raising an Error:
//
//	var (
//	    CodeLoginFailed = apiexception.NewErrorCode(
//	        "AUTH-1000", "Incorrect username and password.", "Failed authentication attempt.")
//	    CodeEmailTaken = apiexception.NewErrorCode(
//	        "RGST-1000", "An account with this email already exists.", "Duplicate email during registration.")
//	)
//
// Declaring codes is additive: each value is independent and nothing here
// detects duplicate code strings across packages. Keeping codes unique is a
// documentation convention, the same way HTTP-layer code constants are kept
// unique by review rather than by a registry.
type ErrorCode struct {
	// Code is the stable identifier clients branch on, e.g. "USR-404".
	Code string
	// Message is the default user-facing message for this code.
	Message string
	// Description is the default detailed description. May be empty.
	Description string
	// ProblemType is an optional URI reference identifying the problem type,
	// used as the "type" member when rendering RFC 7807 bodies.
	ProblemType string
	// ProblemInstance is an optional URI reference for the occurrence, used
	// as the "instance" member when rendering RFC 7807 bodies.
	ProblemInstance string
}

// NewErrorCode declares an error code. The description is optional; only the
// first value is used when more than one is passed.
func NewErrorCode(code, message string, description ...string) ErrorCode {
	ec := ErrorCode{Code: code, Message: message}
	if len(description) > 0 {
		ec.Description = description[0]
	}
	return ec
}

// WithProblem returns a copy of the code carrying RFC 7807 metadata. The
// type URI identifies the problem class (usually a documentation URL); the
// instance identifies the occurrence (usually a request path).
func (ec ErrorCode) WithProblem(typeURI, instance string) ErrorCode {
	ec.ProblemType = typeURI
	ec.ProblemInstance = instance
	return ec
}

// Built-in codes. CodeInternal and CodeValidation back the two fallback
// conversion paths; the rest mirror common HTTP status semantics and feed the
// default documented failure examples.
var (
	CodeBadRequest   = NewErrorCode("BAD-400", "Bad Request", "Your request is invalid or malformed.")
	CodeUnauthorized = NewErrorCode("AUTH-401", "Unauthorized", "Authentication credentials were missing or invalid.")
	CodeForbidden    = NewErrorCode("PERM-403", "Forbidden", "You do not have permission to access this resource.")
	CodeNotFound     = NewErrorCode("RES-404", "Not Found", "The requested resource could not be found.")
	CodeValidation   = NewErrorCode("VAL-422", "Validation Error", "Input validation failed.")
	CodeInternal     = NewErrorCode("ISE-500", "Something went wrong.", "An unexpected error occurred. Please try again later.")
)

// DefaultFailureExamples returns the standard failure envelope for each of
// the common HTTP error statuses, keyed by status code. Intended for OpenAPI
// documents that want predictable non-2xx examples without hand-writing them.
func DefaultFailureExamples() map[int]Response {
	byStatus := map[int]ErrorCode{
		400: CodeBadRequest,
		401: CodeUnauthorized,
		403: CodeForbidden,
		404: CodeNotFound,
		422: CodeValidation,
		500: CodeInternal,
	}
	out := make(map[int]Response, len(byStatus))
	for status, ec := range byStatus {
		out[status] = failureEnvelope(ec.Code, StatusFail, ec.Message, ec.Description)
	}
	return out
}
