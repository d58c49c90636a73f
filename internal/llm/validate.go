package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaRegistry compiles schema definitions once and reuses them. The
// pipeline validates every question batch and every grade against the
// same two schemas, so compilation is front-loaded cost only.
type schemaRegistry struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

var registry = &schemaRegistry{compiled: make(map[string]*jsonschema.Schema)}

// validateResponse checks the model's raw JSON output against the
// request's Schema. A nil schema means the caller wanted free text.
// Failures come back as *MalformedOutputError so the retry layer grants
// the single regeneration attempt.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &MalformedOutputError{
			Output: raw,
			Err:    fmt.Errorf("output is not JSON: %w", err),
		}
	}

	compiled, err := registry.get(schema)
	if err != nil {
		return &MalformedOutputError{
			Output: raw,
			Err:    fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(doc); err != nil {
		return &MalformedOutputError{
			Output: raw,
			Err:    fmt.Errorf("schema %q: %w", schema.Name, err),
		}
	}

	return nil
}

func (r *schemaRegistry) get(schema *Schema) (*jsonschema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if compiled, ok := r.compiled[schema.Name]; ok {
		return compiled, nil
	}

	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	url := fmt.Sprintf("schema://%s.json", schema.Name)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("register %s: %w", url, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", url, err)
	}

	r.compiled[schema.Name] = compiled
	return compiled, nil
}
