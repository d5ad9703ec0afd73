package apiexception

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

// testDoc is a minimal Swagger 2 document with a mix of patchable,
// hand-authored, and success examples.
const testDoc = `{
  "swagger": "2.0",
  "paths": {
    "/users/{id}": {
      "get": {
        "responses": {
          "200": {
            "description": "OK",
            "examples": {
              "application/json": {
                "status": "SUCCESS",
                "message": "User found.",
                "error_code": null,
                "description": null
              }
            }
          },
          "401": {
            "description": "Unauthorized",
            "examples": {
              "application/json": {
                "status": "FAIL",
                "message": "Unauthorized",
                "error_code": "AUTH-401",
                "description": "Authentication credentials were missing or invalid."
              }
            }
          },
          "404": {
            "description": "Not Found",
            "examples": {
              "application/json": {
                "hint": "hand-authored example without the envelope shape"
              }
            }
          }
        }
      }
    }
  }
}`

// testDocV3 covers the OpenAPI 3 content/example shape.
const testDocV3 = `{
  "openapi": "3.0.0",
  "paths": {
    "/items": {
      "post": {
        "responses": {
          "422": {
            "content": {
              "application/json": {
                "example": {
                  "status": "FAIL",
                  "message": "Validation Error",
                  "error_code": "VAL-422",
                  "description": "Input validation failed."
                }
              }
            }
          }
        }
      }
    }
  }
}`

func examplesAt(t *testing.T, doc, path, method, status string) map[string]any {
	t.Helper()
	var schema map[string]any
	if err := json.Unmarshal([]byte(doc), &schema); err != nil {
		t.Fatalf("json: %v", err)
	}
	responses := schema["paths"].(map[string]any)[path].(map[string]any)[method].(map[string]any)["responses"].(map[string]any)
	return responses[status].(map[string]any)
}

func TestPatchDoc_InjectsNullData(t *testing.T) {
	patched, err := PatchDoc(testDoc)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	resp := examplesAt(t, patched, "/users/{id}", "get", "401")
	example := resp["examples"].(map[string]any)["application/json"].(map[string]any)
	data, ok := example["data"]
	if !ok {
		t.Fatalf("data not injected: %v", example)
	}
	if data != nil {
		t.Fatalf("data=%v", data)
	}
}

func TestPatchDoc_Leaves2xxAlone(t *testing.T) {
	patched, err := PatchDoc(testDoc)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	resp := examplesAt(t, patched, "/users/{id}", "get", "200")
	example := resp["examples"].(map[string]any)["application/json"].(map[string]any)
	if _, ok := example["data"]; ok {
		t.Fatalf("2xx example modified: %v", example)
	}
}

func TestPatchDoc_LeavesNonEnvelopeAlone(t *testing.T) {
	patched, err := PatchDoc(testDoc)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	resp := examplesAt(t, patched, "/users/{id}", "get", "404")
	example := resp["examples"].(map[string]any)["application/json"].(map[string]any)
	if _, ok := example["data"]; ok {
		t.Fatalf("non-envelope example modified: %v", example)
	}
	if example["hint"] != "hand-authored example without the envelope shape" {
		t.Fatalf("example content changed: %v", example)
	}
}

func TestPatchDoc_OpenAPI3ContentShape(t *testing.T) {
	patched, err := PatchDoc(testDocV3)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	resp := examplesAt(t, patched, "/items", "post", "422")
	example := resp["content"].(map[string]any)["application/json"].(map[string]any)["example"].(map[string]any)
	if data, ok := example["data"]; !ok || data != nil {
		t.Fatalf("data not injected: %v", example)
	}
}

func TestPatchDoc_Idempotent(t *testing.T) {
	once, err := PatchDoc(testDoc)
	if err != nil {
		t.Fatalf("first patch: %v", err)
	}
	twice, err := PatchDoc(once)
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}
	if once != twice {
		t.Fatalf("not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestPatchDoc_InvalidJSON(t *testing.T) {
	if _, err := PatchDoc("{not json"); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

// countingSpec counts how often the underlying document is generated.
type countingSpec struct {
	doc   string
	reads int
}

func (s *countingSpec) ReadDoc() string {
	s.reads++
	return s.doc
}

func TestWrapSpec_PatchesOnceAndCaches(t *testing.T) {
	inner := &countingSpec{doc: testDoc}
	wrapped := WrapSpec(inner)

	first := wrapped.ReadDoc()
	second := wrapped.ReadDoc()

	if inner.reads != 1 {
		t.Fatalf("inner reads=%d", inner.reads)
	}
	if first != second {
		t.Fatal("cached reads differ")
	}
	if !strings.Contains(first, `"data":null`) {
		t.Fatalf("patched doc missing data:null: %s", first)
	}
}

func TestWrapSpec_InvalidDocServedUnmodified(t *testing.T) {
	inner := &countingSpec{doc: "not-a-json-document"}
	wrapped := WrapSpec(inner)
	if got := wrapped.ReadDoc(); got != "not-a-json-document" {
		t.Fatalf("doc=%q", got)
	}
}

// Generated docs packages register their *swag.Spec under an instance name
// at import time; enabling the patcher must not hit swag's duplicate-name
// panic, it patches the already-registered spec in place.
func TestRegister_PatchesGeneratedSpecInPlace(t *testing.T) {
	gin.SetMode(gin.TestMode)

	spec := &swag.Spec{
		InfoInstanceName: "userapi-docs",
		SwaggerTemplate:  testDoc,
	}
	swag.Register(spec.InstanceName(), spec)

	cfg := DefaultConfig()
	cfg.PatchOpenAPI = true
	cfg.OpenAPISpec = spec
	if err := Register(gin.New(), cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !strings.Contains(spec.SwaggerTemplate, `"data":null`) {
		t.Fatalf("spec not patched in place: %s", spec.SwaggerTemplate)
	}
	doc, err := swag.ReadDoc(spec.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if !strings.Contains(doc, `"data":null`) {
		t.Fatalf("registry serves unpatched doc: %s", doc)
	}

	// Re-registering the same spec is harmless: the patch is idempotent.
	if err := Register(gin.New(), cfg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestRegister_CustomSpecUsesDefaultInstance(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultConfig()
	cfg.PatchOpenAPI = true
	cfg.OpenAPISpec = &countingSpec{doc: testDoc}
	if err := Register(gin.New(), cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if !strings.Contains(doc, `"data":null`) {
		t.Fatalf("registry serves unpatched doc: %s", doc)
	}

	// The default instance is now occupied; a further registration of a
	// non-Spec implementation must fail with an error, not swag's
	// duplicate-name panic.
	if err := Register(gin.New(), cfg); err == nil {
		t.Fatal("expected error for occupied default instance")
	}
}
