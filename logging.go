// This file builds the structured log records written for handled,
// validation, and unhandled failures. Records are ephemeral: assembled per
// event, handed to zerolog, never persisted here.
//
// Field conventions:
//   - event: api_exception | validation_error | unhandled_exception
//   - base request fields: method, path, client_ip, request_id
//   - outcome fields: error_code, status, http_status, message, description
//   - headers appear only when request-context logging is on, and only the
//     allow-listed keys; unlisted headers are never logged.
//   - stack carries the raw traceback bytes when the relevant toggle is on.
package apiexception

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// logHandled writes the record for a raised Error. Honors both the global
// switch and the per-error Log flag. Stack and raise-site fields come from
// the Error itself, captured by Raise while the raising frame was live.
func (h *handler) logHandled(c *gin.Context, e *Error) {
	if !h.logEnabled || !e.Log {
		return
	}

	ev := h.base(c, "api_exception", zerolog.ErrorLevel).
		Str("error_code", e.Code.Code).
		Str("status", string(e.Status)).
		Int("http_status", e.resolveHTTPStatus(h.statusCodes)).
		Str("message", e.message()).
		Str("description", e.description())

	if e.raiseFile != "" {
		ev = ev.Str("raise_file", e.raiseFile).Int("raise_line", e.raiseLine)
	}
	if e.LogMessage != "" {
		ev = ev.Str("log_message", e.LogMessage)
	}
	if len(e.LogFields) > 0 {
		ev = ev.Fields(e.LogFields)
	}
	ev = h.withExtraFields(c, e, ev)
	if h.logHandledStack && len(e.stack) > 0 {
		ev = ev.Bytes("stack", e.stack)
	}
	ev.Msg("api exception")
}

// logValidation writes the record for a request-validation failure. A client
// input error is expected traffic, so it logs at warn rather than error.
func (h *handler) logValidation(c *gin.Context, err error, count int, first string) {
	if !h.logEnabled {
		return
	}

	ev := h.base(c, "validation_error", zerolog.WarnLevel).
		Str("error_code", CodeValidation.Code).
		Int("error_count", count).
		Str("first_error", first)
	if err != nil {
		ev = ev.Str("error", err.Error())
	}
	ev = h.withExtraFields(c, err, ev)
	ev.Msg("validation error")
}

// logUnhandled writes the record for a recovered panic or an unclassified
// error. These are the primary operational signal, so the stack rides its
// own toggle, independent from the handled one.
func (h *handler) logUnhandled(c *gin.Context, err error, stack []byte) {
	if !h.logEnabled {
		return
	}

	ev := h.base(c, "unhandled_exception", zerolog.ErrorLevel).
		Str("error_code", CodeInternal.Code)
	if err != nil {
		ev = ev.Str("error", err.Error())
	}
	ev = h.withExtraFields(c, err, ev)
	if h.logUnhandledStack && len(stack) > 0 {
		ev = ev.Bytes("stack", stack)
	}
	ev.Msg("unhandled exception")
}

// base opens an event at the given level with the shared request fields and,
// when enabled, the allow-listed request headers.
func (h *handler) base(c *gin.Context, event string, level zerolog.Level) *zerolog.Event {
	ev := h.log.WithLevel(level).
		Str("event", event).
		Str("method", c.Request.Method).
		Str("path", requestPath(c)).
		Str("client_ip", c.ClientIP())

	if rid := c.Writer.Header().Get("X-Request-ID"); rid != "" {
		ev = ev.Str("request_id", rid)
	}

	if h.logRequestContext {
		for _, k := range h.logHeaderKeys {
			if v := c.GetHeader(k); v != "" {
				ev = ev.Str(k, v)
			}
		}
	}
	return ev
}

// withExtraFields merges the user hook's fields into the event. A panicking
// hook must not cost us the base record or the response, so the call is
// isolated and its failure logged on its own.
func (h *handler) withExtraFields(c *gin.Context, err error, ev *zerolog.Event) *zerolog.Event {
	if h.extraLogFields == nil {
		return ev
	}
	fields, ok := h.callExtraFields(c, err)
	if !ok || len(fields) == 0 {
		return ev
	}
	return ev.Fields(fields)
}

func (h *handler) callExtraFields(c *gin.Context, err error) (fields map[string]any, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().
				Str("event", "extra_log_fields_panic").
				Interface("panic", rec).
				Msg("extra log fields hook failed; contribution dropped")
			fields, ok = nil, false
		}
	}()
	return h.extraLogFields(c, err), true
}

// requestPath prefers the matched route template, falling back to the raw
// URL path when no route matched.
func requestPath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
