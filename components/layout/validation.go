package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchemaValidator compiles template schemas and validates settings maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided settings satisfy the template schema.
// Templates without a schema accept anything.
func (v *JSONSchemaValidator) Validate(tpl Template, settings map[string]any) error {
	if len(tpl.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(tpl)
	if err != nil {
		return err
	}
	var payload map[string]any
	if settings == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("layout: marshal settings for %s: %w", tpl.Type, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("layout: normalize settings for %s: %w", tpl.Type, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("layout: settings for %s failed validation: %w", tpl.Type, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(tpl Template) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[tpl.Type]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(tpl.Schema)
	if err != nil {
		return nil, fmt.Errorf("layout: marshal schema %s: %w", tpl.Type, err)
	}
	compiler := jsonschema.NewCompiler()
	name := tpl.Type + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("layout: load schema %s: %w", tpl.Type, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("layout: compile schema %s: %w", tpl.Type, err)
	}
	v.mu.Lock()
	v.compiled[tpl.Type] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopValidator struct{}

func (noopValidator) Validate(Template, map[string]any) error { return nil }
