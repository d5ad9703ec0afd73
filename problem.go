package apiexception

// ProblemMediaType is the content type for RFC 7807 bodies.
const ProblemMediaType = "application/problem+json"

// ProblemDetails is the RFC 7807 "Problem Details for HTTP APIs" body, the
// alternate serialization of an Error selected with FormatProblem.
//
// The title carries the resolved message and detail the resolved description.
// Type and instance come from the ErrorCode's problem metadata and are
// omitted when the code declares none; detail is serialized even when null so
// the field set stays stable.
type ProblemDetails struct {
	// URI reference identifying the problem type, e.g. a documentation URL.
	Type string `json:"type,omitempty" example:"https://example.com/errors/forbidden"`
	// Short human-readable summary of the problem.
	Title string `json:"title" example:"Permission denied."`
	// HTTP status code applicable to this occurrence.
	Status int `json:"status" example:"403"`
	// Human-readable explanation specific to this occurrence.
	Detail *string `json:"detail" example:"You do not have permission to access this resource."`
	// URI reference identifying this occurrence, e.g. the request path.
	Instance string `json:"instance,omitempty" example:"/admin/panel"`
}

// problemFromError maps a resolved Error onto the RFC 7807 shape.
func problemFromError(e *Error, httpStatus int) ProblemDetails {
	return ProblemDetails{
		Type:     e.Code.ProblemType,
		Title:    e.message(),
		Status:   httpStatus,
		Detail:   optionalString(e.description()),
		Instance: e.Code.ProblemInstance,
	}
}
