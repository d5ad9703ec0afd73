// This file wires the package into a Gin engine. Register installs a single
// middleware that applies the header-echo policy on the way in and, on the
// way out, renders whatever error the handler attached: a raised Error as-is,
// a binding/validation failure as the fixed 422 code, anything else
// (including panics) as the generic 500 code.
//
// Middleware ordering: place Register's middleware early, before rate
// limiters or auth middleware that may themselves raise, so their errors are
// rendered too.
package apiexception

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// handler is the resolved, immutable runtime form of a Config. One instance
// serves every request of a registration; it holds no per-request state.
type handler struct {
	format            Format
	fallback          bool
	logEnabled        bool
	logHandledStack   bool
	logUnhandledStack bool
	logRequestContext bool
	logHeaderKeys     []string
	extraLogFields    ExtraLogFields
	echoKeys          []string
	statusCodes       map[Status]int
	log               zerolog.Logger
}

// newHandler validates cfg and resolves it into a handler. All configuration
// errors (unknown format, blank header keys) surface here, never per request.
func newHandler(cfg Config) (*handler, error) {
	format, err := validateFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	logKeys := cfg.LogHeaderKeys
	if logKeys == nil {
		logKeys = defaultLogHeaderKeys
	}
	logKeys, err = normalizeHeaderKeys(logKeys)
	if err != nil {
		return nil, err
	}

	echoKeys, err := cfg.HeaderEcho.echoHeaders()
	if err != nil {
		return nil, err
	}

	lg := log.Logger
	if cfg.Logger != nil {
		lg = *cfg.Logger
	}

	return &handler{
		format:            format,
		fallback:          cfg.EnableFallback,
		logEnabled:        cfg.EnableLogging,
		logHandledStack:   cfg.LogHandledTraceback,
		logUnhandledStack: cfg.LogUnhandledTraceback,
		logRequestContext: cfg.LogRequestContext,
		logHeaderKeys:     logKeys,
		extraLogFields:    cfg.ExtraLogFields,
		echoKeys:          echoKeys,
		statusCodes:       snapshotStatusCodes(cfg.StatusCodes),
		log:               lg,
	}, nil
}

// Register attaches the exception-handling middleware to the engine. It
// returns an error for invalid configuration; nothing is installed in that
// case. Optionally it overrides the global log level and patches the served
// OpenAPI document so failure examples carry an explicit null data field.
func Register(r *gin.Engine, cfg Config) error {
	h, err := newHandler(cfg)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "" {
		if err := SetLogLevel(cfg.LogLevel); err != nil {
			return err
		}
	}

	if cfg.PatchOpenAPI {
		if cfg.OpenAPISpec == nil {
			return errors.New("apiexception: PatchOpenAPI requires OpenAPISpec")
		}
		if err := patchSpecSource(cfg.OpenAPISpec); err != nil {
			return err
		}
	}

	r.Use(h.middleware())
	return nil
}

// MustRegister is Register but panics on configuration errors. Intended for
// main() wiring where a bad config should stop the process.
func MustRegister(r *gin.Engine, cfg Config) {
	if err := Register(r, cfg); err != nil {
		panic(err)
	}
}

// RegisterDefault registers with DefaultConfig.
func RegisterDefault(r *gin.Engine) {
	MustRegister(r, DefaultConfig())
}

// RaiseValidation attaches a binding/validation error to the context and
// aborts. The middleware renders it through the fixed 422 validation path.
// Typical use right after ShouldBindJSON:
//
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    apiexception.RaiseValidation(c, err)
//	    return
//	}
func RaiseValidation(c *gin.Context, err error) {
	if err == nil {
		return
	}
	c.Error(err).SetType(gin.ErrorTypeBind)
	c.Abort()
}

// middleware returns the per-request entry point.
func (h *handler) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.applyEcho(c)

		if h.fallback {
			defer func() {
				if rec := recover(); rec != nil {
					if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(rec) // connection is gone, nothing to render
					}
					h.logUnhandled(c, fmt.Errorf("panic: %v", rec), debug.Stack())
					h.render(c, h.internalError())
				}
			}()
		}

		c.Next()
		h.finish(c)
	}
}

// applyEcho copies the configured request headers onto the response writer
// before the handler runs, so both success and failure responses carry them.
func (h *handler) applyEcho(c *gin.Context) {
	for _, k := range h.echoKeys {
		if v := c.GetHeader(k); v != "" {
			c.Writer.Header().Set(k, v)
		}
	}
}

// finish classifies the errors a handler attached, first-detected-wins:
// a raised Error renders as-is; a validation failure renders as the fixed
// 422 code; anything left renders as the generic 500 when the fallback is
// enabled. Only the first classifiable error is rendered.
func (h *handler) finish(c *gin.Context) {
	if len(c.Errors) == 0 {
		return
	}

	for _, ge := range c.Errors {
		var apiErr *Error
		if errors.As(ge.Err, &apiErr) {
			h.logHandled(c, apiErr)
			h.render(c, apiErr)
			return
		}
		if h.fallback && isValidationError(ge) {
			h.handleValidation(c, ge.Err)
			return
		}
	}

	if !h.fallback {
		return
	}
	h.logUnhandled(c, c.Errors[0].Err, debug.Stack())
	h.render(c, h.internalError())
}

// internalError is the fixed shape every unhandled failure collapses to. The
// body is deliberately non-specific; detail goes to logs only.
func (h *handler) internalError() *Error {
	return New(CodeInternal,
		WithHTTPStatus(http.StatusInternalServerError),
		WithoutLog(), // already logged through the unhandled path
	)
}

// isValidationError reports whether a Gin error entry represents a request
// binding or validation failure.
func isValidationError(ge *gin.Error) bool {
	if ge.IsType(gin.ErrorTypeBind) {
		return true
	}
	var verrs validator.ValidationErrors
	return errors.As(ge.Err, &verrs)
}

// handleValidation converts a binding failure into the fixed validation code
// at 422. The description carries the first violation so clients see which
// input failed, mirroring the detail level of the envelope, not the logs.
func (h *handler) handleValidation(c *gin.Context, err error) {
	desc := CodeValidation.Description
	count := 1

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		count = len(verrs)
		desc = fmt.Sprintf("field %q failed on the %q rule", verrs[0].Field(), verrs[0].Tag())
	} else if err != nil {
		desc = err.Error()
	}

	h.logValidation(c, err, count, desc)
	h.render(c, New(CodeValidation,
		WithHTTPStatus(http.StatusUnprocessableEntity),
		WithDescription(desc),
		WithoutLog(),
	))
}
