// This file defines the registration configuration. The shape follows the
// familiar middleware-config pattern: a plain struct, a DefaultConfig()
// constructor with recommended values, and validation that fails at Register
// time rather than per request.
package apiexception

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

// Format selects the failure body shape written by the middleware.
type Format string

const (
	// FormatEnvelope renders the internal five-field envelope (Response).
	FormatEnvelope Format = "envelope"
	// FormatProblem renders RFC 7807 bodies as application/problem+json.
	FormatProblem Format = "problem"
	// FormatDict renders a plain map with the same field set as the
	// envelope, without going through the Response type.
	FormatDict Format = "dict"
)

// ExtraLogFields is a user hook injecting custom fields into every log
// record. It receives the request context and the error being logged (nil is
// never passed; validation and unhandled paths pass the underlying error).
// The hook is responsible for masking anything sensitive it surfaces. A panic
// inside the hook is logged and its contribution dropped; the response and
// the base log record are unaffected.
type ExtraLogFields func(c *gin.Context, err error) map[string]any

// defaultEchoHeaders is the header set echoed back onto responses when the
// policy is left at its zero value.
var defaultEchoHeaders = []string{"x-request-id", "x-correlation-id", "x-amzn-trace-id"}

// defaultLogHeaderKeys is the allow-list of request headers included in log
// records when LogRequestContext is enabled and no explicit list is given.
var defaultLogHeaderKeys = []string{
	"x-request-id",
	"x-correlation-id",
	"x-amzn-trace-id",
	"x-forwarded-for",
	"user-agent",
	"referer",
}

// EchoPolicy controls which request headers are copied onto every response.
// The zero value echoes the default set; EchoNone disables echoing; EchoOnly
// echoes exactly the given headers.
type EchoPolicy struct {
	disabled bool
	explicit bool
	headers  []string
}

// EchoNone returns a policy that echoes nothing.
func EchoNone() EchoPolicy {
	return EchoPolicy{disabled: true}
}

// EchoOnly returns a policy that echoes exactly the given header names.
// Names are normalized to lower-case at Register time; blank names are a
// registration error.
func EchoOnly(keys ...string) EchoPolicy {
	return EchoPolicy{explicit: true, headers: keys}
}

// Config holds all registration options. Construct it with DefaultConfig and
// adjust fields as needed; a zero Config is valid but has everything
// (fallback, logging, doc patching) switched off.
type Config struct {
	// Format selects the failure body shape. Empty means FormatEnvelope.
	Format Format

	// EnableFallback installs the recovery path converting panics and
	// unclassified errors into a generic 500 response. When false those
	// propagate to Gin's own (uncontrolled) handling, which is advised
	// against outside local development.
	EnableFallback bool

	// EnableLogging is the global switch. When false nothing is logged,
	// for handled or unhandled errors, regardless of per-error flags or
	// the traceback toggles below.
	EnableLogging bool

	// LogHandledTraceback includes a stack trace in log records for raised
	// Errors. Independent from LogUnhandledTraceback.
	LogHandledTraceback bool

	// LogUnhandledTraceback includes the stack trace for recovered panics
	// and unclassified errors. Unhandled failures are the primary
	// operational signal, so this defaults to on.
	LogUnhandledTraceback bool

	// LogLevel, when non-empty, overrides the global zerolog level at
	// Register time (debug|info|warn|error|fatal|panic).
	LogLevel string

	// LogRequestContext includes allow-listed request headers in log
	// records. Only headers named in LogHeaderKeys are ever logged.
	LogRequestContext bool

	// LogHeaderKeys is the header allow-list for log records. Nil means
	// the default set. Lookup is case-insensitive.
	LogHeaderKeys []string

	// ExtraLogFields, when set, is invoked per log record to merge custom
	// fields into it.
	ExtraLogFields ExtraLogFields

	// HeaderEcho controls which request headers are copied onto responses,
	// success and failure alike. Zero value echoes the default set.
	HeaderEcho EchoPolicy

	// StatusCodes overrides the category-to-HTTP-status defaults for this
	// registration only. Snapshotted at Register time. The overrides apply
	// to rendered errors; the success writers (OK) are not bound to a
	// registration and read the process-wide defaults, adjusted with
	// SetDefaultHTTPStatus.
	StatusCodes map[Status]int

	// PatchOpenAPI runs OpenAPISpec through the null-data doc patcher at
	// Register time, so served documentation carries "data": null in
	// failure examples. A *swag.Spec is patched in place under whatever
	// instance name its package registered; other implementations are
	// wrapped and registered under the default instance name, which must
	// not be taken yet. Requires OpenAPISpec.
	PatchOpenAPI bool

	// OpenAPISpec is the swag spec instance to patch, typically the
	// generated docs.SwaggerInfo. Ignored unless PatchOpenAPI is set.
	OpenAPISpec swag.Swagger

	// Logger, when set, receives all log records. Nil uses the package
	// default sink derived from zerolog's global logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the recommended configuration: envelope format,
// fallback on, full logging with tracebacks, request context with the default
// header allow-list, default header echo, and doc patching left off until a
// spec is supplied.
func DefaultConfig() Config {
	return Config{
		Format:                FormatEnvelope,
		EnableFallback:        true,
		EnableLogging:         true,
		LogHandledTraceback:   true,
		LogUnhandledTraceback: true,
		LogRequestContext:     true,
	}
}

// normalizeHeaderKeys lower-cases and trims an allow-list, rejecting blank
// entries. Blank keys are a configuration bug, surfaced at Register time.
func normalizeHeaderKeys(keys []string) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return nil, fmt.Errorf("apiexception: invalid header key %q", k)
		}
		out = append(out, k)
	}
	return out, nil
}

// echoHeaders resolves the echo policy into the concrete header list applied
// per request. Resolution happens once, at Register time.
func (p EchoPolicy) echoHeaders() ([]string, error) {
	switch {
	case p.disabled:
		return nil, nil
	case p.explicit:
		return normalizeHeaderKeys(p.headers)
	default:
		return defaultEchoHeaders, nil
	}
}

// validateFormat rejects unknown output formats. An unrecognized format is a
// programming error and must never surface per request.
func validateFormat(f Format) (Format, error) {
	switch f {
	case "":
		return FormatEnvelope, nil
	case FormatEnvelope, FormatProblem, FormatDict:
		return f, nil
	default:
		return "", fmt.Errorf("apiexception: unknown response format %q", f)
	}
}
