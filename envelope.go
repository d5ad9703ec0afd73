// This file defines the uniform response envelope shared by success and
// failure responses. The envelope always serializes all five fields: data is
// an explicit null on failure and error_code an explicit null on success, so
// clients can parse every response through the same branchless code path.
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{
//	  "data": {"user_id": 1, "name": "John Doe"},
//	  "status": "SUCCESS",
//	  "message": "Operation completed successfully.",
//	  "error_code": null,
//	  "description": null
//	}
package apiexception

import "github.com/gin-gonic/gin"

// DefaultSuccessMessage is the envelope message used when the caller does not
// supply one.
const DefaultSuccessMessage = "Operation completed successfully."

// Response is the uniform envelope returned by every endpoint.
//
// Invariants: error_code is non-null iff status != SUCCESS; data is null on
// failure regardless of the endpoint's declared payload type. None of the
// fields use omitempty: explicit nulls are intentional.
type Response struct {
	// Main content of the response. Always null on failure.
	Data any `json:"data"`
	// Outcome category: SUCCESS, WARNING, or FAIL.
	Status Status `json:"status" example:"SUCCESS"`
	// Human-readable message, safe to show to users.
	Message string `json:"message" example:"Operation completed successfully."`
	// Stable, machine-readable code. Null on success.
	ErrorCode *string `json:"error_code" example:"USR-404"`
	// Optional detailed context for the message.
	Description *string `json:"description" example:"The user has been retrieved."`
}

// Success builds a SUCCESS envelope around the given payload with the default
// message. Chain WithMessage/WithDescription to adjust the text.
func Success(data any) Response {
	return Response{
		Data:    data,
		Status:  StatusSuccess,
		Message: DefaultSuccessMessage,
	}
}

// WithMessage returns a copy of the envelope with the given message.
func (r Response) WithMessage(msg string) Response {
	r.Message = msg
	return r
}

// WithDescription returns a copy of the envelope with the given description.
func (r Response) WithDescription(desc string) Response {
	r.Description = &desc
	return r
}

// failureEnvelope builds the failure shape: data forced null, error_code
// always set, description null when the code declares none.
func failureEnvelope(code string, status Status, message, description string) Response {
	return Response{
		Data:        nil,
		Status:      status,
		Message:     message,
		ErrorCode:   &code,
		Description: optionalString(description),
	}
}

// optionalString maps the empty string to a JSON null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// OK writes a success envelope around data. The HTTP status comes from the
// process-wide category defaults for SUCCESS (normally 200), adjustable with
// SetDefaultHTTPStatus; per-registration Config.StatusCodes overrides apply
// to rendered errors only, not to success writers.
func OK(c *gin.Context, data any) {
	status, ok := defaultStatusCodes[StatusSuccess]
	if !ok {
		status = fallbackStatus(StatusSuccess)
	}
	c.JSON(status, Success(data))
}

// Respond writes an explicit envelope with the given HTTP status. Useful for
// 201/202 responses or envelopes customized beyond what OK covers.
func Respond(c *gin.Context, status int, resp Response) {
	c.JSON(status, resp)
}
