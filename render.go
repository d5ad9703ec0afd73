// This file turns a resolved Error into bytes on the wire. Rendering is the
// only place the three output formats diverge; status, message, and
// description resolution is shared.
package apiexception

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

// envelope maps the error onto the uniform Response shape. error_code is
// forced null when the category is SUCCESS and data is always null on
// failure, upholding the envelope invariants.
func (e *Error) envelope() Response {
	if e.Status == StatusSuccess {
		return Response{
			Data:        nil,
			Status:      StatusSuccess,
			Message:     e.message(),
			Description: optionalString(e.description()),
		}
	}
	return failureEnvelope(e.Code.Code, e.Status, e.message(), e.description())
}

// dict is the plain-dictionary format: the same field set as the envelope
// without going through the Response type.
func (e *Error) dict() gin.H {
	out := gin.H{
		"data":        nil,
		"status":      string(e.Status),
		"message":     e.message(),
		"error_code":  e.Code.Code,
		"description": nil,
	}
	if d := e.description(); d != "" {
		out["description"] = d
	}
	if e.Status == StatusSuccess {
		out["error_code"] = nil
	}
	return out
}

// render writes the response for e in the configured format, merging any
// error-carried headers over the echo set. If a handler already wrote a
// response the body is left alone; rendering only aborts the chain.
func (h *handler) render(c *gin.Context, e *Error) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	status := e.resolveHTTPStatus(h.statusCodes)

	for k, v := range e.Headers {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		c.Header(k, v)
	}

	switch h.format {
	case FormatProblem:
		body, err := json.Marshal(problemFromError(e, status))
		if err != nil {
			// Marshal of a plain struct cannot realistically fail; fall
			// back to the envelope rather than an empty body.
			c.AbortWithStatusJSON(status, e.envelope())
			return
		}
		c.Data(status, ProblemMediaType, body)
		c.Abort()
	case FormatDict:
		c.AbortWithStatusJSON(status, e.dict())
	default:
		c.AbortWithStatusJSON(status, e.envelope())
	}
}
