package apiexception

import "net/http"

// Status is the logical outcome category carried by every envelope.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

// defaultStatusCodes maps each outcome category to the HTTP status used when
// an Error carries no explicit status of its own. It is read on every
// response and is expected to be adjusted, if at all, once at startup before
// traffic begins; no lock guards it.
var defaultStatusCodes = map[Status]int{
	StatusSuccess: http.StatusOK,
	StatusWarning: http.StatusBadRequest,
	StatusFail:    http.StatusBadRequest,
}

// SetDefaultHTTPStatus merges the given overrides into the process-wide
// category defaults. Entries not present in the argument are left unchanged.
//
//	apiexception.SetDefaultHTTPStatus(map[apiexception.Status]int{
//	    apiexception.StatusFail: http.StatusUnprocessableEntity,
//	})
//
// Per-application overrides belong in Config.StatusCodes instead, which is
// snapshotted at Register time; this call only seeds the process defaults.
func SetDefaultHTTPStatus(overrides map[Status]int) {
	for s, code := range overrides {
		defaultStatusCodes[s] = code
	}
}

// fallbackStatus is the last-resort HTTP status per category, used when a
// category is absent from the defaults table entirely.
func fallbackStatus(s Status) int {
	switch s {
	case StatusSuccess:
		return http.StatusOK
	case StatusWarning:
		return http.StatusAccepted
	default:
		return http.StatusBadRequest
	}
}

// snapshotStatusCodes copies the effective category table for a registration.
// Explicit per-app entries win over the process defaults.
func snapshotStatusCodes(overrides map[Status]int) map[Status]int {
	out := make(map[Status]int, len(defaultStatusCodes))
	for s, code := range defaultStatusCodes {
		out[s] = code
	}
	for s, code := range overrides {
		out[s] = code
	}
	return out
}
