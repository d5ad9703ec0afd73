package apiexception

import "testing"

func TestNewErrorCode(t *testing.T) {
	ec := NewErrorCode("USR-404", "User not found.", "The user ID does not exist.")
	if ec.Code != "USR-404" || ec.Message != "User not found." || ec.Description != "The user ID does not exist." {
		t.Fatalf("unexpected code: %+v", ec)
	}

	noDesc := NewErrorCode("API-401", "Invalid API key provided.")
	if noDesc.Description != "" {
		t.Fatalf("description=%q", noDesc.Description)
	}
}

func TestErrorCode_WithProblem(t *testing.T) {
	base := NewErrorCode("PERM-403", "Permission denied.")
	ec := base.WithProblem("https://example.com/errors/forbidden", "/admin/panel")

	if ec.ProblemType != "https://example.com/errors/forbidden" || ec.ProblemInstance != "/admin/panel" {
		t.Fatalf("unexpected problem metadata: %+v", ec)
	}
	// The receiver is untouched; codes are immutable values.
	if base.ProblemType != "" || base.ProblemInstance != "" {
		t.Fatalf("receiver mutated: %+v", base)
	}
}

func TestDefaultFailureExamples(t *testing.T) {
	examples := DefaultFailureExamples()

	wantCodes := map[int]string{
		400: "BAD-400",
		401: "AUTH-401",
		403: "PERM-403",
		404: "RES-404",
		422: "VAL-422",
		500: "ISE-500",
	}
	if len(examples) != len(wantCodes) {
		t.Fatalf("len=%d", len(examples))
	}
	for status, code := range wantCodes {
		resp, ok := examples[status]
		if !ok {
			t.Fatalf("missing example for %d", status)
		}
		if resp.Data != nil {
			t.Fatalf("%d: data=%v", status, resp.Data)
		}
		if resp.Status != StatusFail {
			t.Fatalf("%d: status=%s", status, resp.Status)
		}
		if resp.ErrorCode == nil || *resp.ErrorCode != code {
			t.Fatalf("%d: error_code=%v want %s", status, resp.ErrorCode, code)
		}
		if resp.Description == nil {
			t.Fatalf("%d: description is nil", status)
		}
	}
}
