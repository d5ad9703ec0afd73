// Package apiexception standardizes error handling and response shaping for
// Gin applications. It converts application errors, binding/validation
// failures, and recovered panics into a single, predictable JSON surface, logs
// structured diagnostics for each of them, and patches generated OpenAPI
// documents so that documented failure examples match what the wire actually
// carries.
//
// The package is built around four pieces:
//
//   - ErrorCode: an immutable record pairing a stable machine-readable code
//     with default user-facing text (and optional RFC 7807 metadata).
//     Applications declare their own codes as package-level values.
//   - Error: the value a handler raises at the point of failure. It references
//     an ErrorCode and may override the HTTP status, message, description,
//     logging behavior, and response headers.
//   - Response / ProblemDetails: the two failure body shapes. The envelope
//     always carries all five fields (data, status, message, error_code,
//     description) with explicit nulls so client parsing stays branchless;
//     ProblemDetails follows RFC 7807 and is served as
//     application/problem+json.
//   - Register: wires a single middleware into the engine that applies the
//     header-echo policy, recovers panics into a generic 500 envelope, and
//     renders whatever error the handler attached.
//
// Minimal usage:
//
//	var CodeUserNotFound = apiexception.NewErrorCode(
//	    "USR-404", "User not found.", "The user ID does not exist.")
//
//	r := gin.New()
//	apiexception.MustRegister(r, apiexception.DefaultConfig())
//
//	r.GET("/users/:id", func(c *gin.Context) {
//	    u, err := store.Get(c.Param("id"))
//	    if err != nil {
//	        apiexception.Raise(c, apiexception.New(CodeUserNotFound,
//	            apiexception.WithHTTPStatus(http.StatusUnauthorized)))
//	        return
//	    }
//	    apiexception.OK(c, u)
//	})
//
// Failure body (envelope format):
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "data": null,
//	  "status": "FAIL",
//	  "message": "User not found.",
//	  "error_code": "USR-404",
//	  "description": "The user ID does not exist."
//	}
//
// Logging goes through zerolog. The middleware never writes diagnostic detail
// (stack traces, raw error strings from unhandled failures) into response
// bodies; that detail is log-only.
package apiexception
