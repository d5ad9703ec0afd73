// OpenAPI document patching. Generated documents describe failure examples
// without the envelope's data field (the generator only knows the declared
// error model); the patcher inserts an explicit "data": null into every
// non-2xx example that carries the envelope field set, so documented shapes
// match what the wire actually returns.
package apiexception

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/swaggo/swag"
)

// PatchDoc parses a Swagger/OpenAPI JSON document, injects "data": null into
// every non-2xx response example that has the envelope field set
// (status, message, error_code, description) but no data field, and returns
// the re-serialized document. Examples without the envelope shape and all
// 2xx examples are left untouched. The transform is idempotent: patching a
// patched document returns it byte-identical.
func PatchDoc(doc string) (string, error) {
	var schema map[string]any
	if err := json.Unmarshal([]byte(doc), &schema); err != nil {
		return "", fmt.Errorf("apiexception: parse openapi document: %w", err)
	}

	patchSchema(schema)

	out, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("apiexception: serialize openapi document: %w", err)
	}
	return string(out), nil
}

// patchSchema walks paths.*.*.responses in place. Both the Swagger 2 shape
// (responses.N.examples[mime] = example) and the OpenAPI 3 shape
// (responses.N.content[mime].example) are handled.
func patchSchema(schema map[string]any) {
	paths, _ := schema["paths"].(map[string]any)
	for _, pathItem := range paths {
		operations, ok := pathItem.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range operations {
			operation, ok := op.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := operation["responses"].(map[string]any)
			if !ok {
				continue
			}
			for statusKey, resp := range responses {
				if strings.HasPrefix(statusKey, "2") {
					continue
				}
				response, ok := resp.(map[string]any)
				if !ok {
					continue
				}
				patchResponseExamples(response)
			}
		}
	}
}

// patchResponseExamples patches every example object attached to a single
// documented response.
func patchResponseExamples(response map[string]any) {
	// OpenAPI 3: content[mime].example
	if content, ok := response["content"].(map[string]any); ok {
		for _, c := range content {
			if media, ok := c.(map[string]any); ok {
				if example, ok := media["example"].(map[string]any); ok {
					injectNullData(example)
				}
			}
		}
	}
	// Swagger 2: examples[mime] is the example itself
	if examples, ok := response["examples"].(map[string]any); ok {
		for _, ex := range examples {
			if example, ok := ex.(map[string]any); ok {
				injectNullData(example)
			}
		}
	}
}

// injectNullData adds "data": null to an example that has the envelope field
// set but omits data. Examples lacking the envelope shape are assumed
// hand-authored for another purpose and never touched.
func injectNullData(example map[string]any) {
	for _, field := range [...]string{"status", "message", "error_code", "description"} {
		if _, ok := example[field]; !ok {
			return
		}
	}
	if _, ok := example["data"]; ok {
		return
	}
	example["data"] = nil
}

// patchedSpec wraps a swag spec so the document is patched lazily on first
// read and cached after, making repeated reads cheap and the patch one-shot
// per application instance.
type patchedSpec struct {
	inner swag.Swagger
	once  sync.Once
	doc   string
}

// ReadDoc returns the patched document. If patching fails (a hand-written
// spec with invalid JSON), the original document is served unmodified.
func (p *patchedSpec) ReadDoc() string {
	p.once.Do(func() {
		raw := p.inner.ReadDoc()
		patched, err := PatchDoc(raw)
		if err != nil {
			p.doc = raw
			return
		}
		p.doc = patched
	})
	return p.doc
}

// WrapSpec returns a swag spec that serves the patched form of s.
// Applications serving documentation outside swag's registry can wrap their
// spec directly.
func WrapSpec(s swag.Swagger) swag.Swagger {
	return &patchedSpec{inner: s}
}

// patchSpecSource makes the application's served documentation the patched
// form of s. A *swag.Spec (the shape generated docs packages export as
// SwaggerInfo) has already registered itself under its instance name at
// import time, and swag's registry panics on a second Register for the same
// name, so the spec is patched in place through the pointer the registry
// already serves. Any other Swagger implementation is wrapped lazily and
// registered under the default instance name, which must still be free.
func patchSpecSource(s swag.Swagger) error {
	if sp, ok := s.(*swag.Spec); ok {
		patched, err := PatchDoc(sp.ReadDoc())
		if err != nil {
			return err
		}
		sp.SwaggerTemplate = patched
		return nil
	}
	if swag.GetSwagger(swag.Name) != nil {
		return fmt.Errorf("apiexception: spec instance %q is already registered; pass the *swag.Spec so it can be patched in place", swag.Name)
	}
	swag.Register(swag.Name, WrapSpec(s))
	return nil
}
