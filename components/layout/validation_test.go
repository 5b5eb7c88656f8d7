package layout

import "testing"

func TestValidateAcceptsSchemalessTemplates(t *testing.T) {
	v := NewJSONSchemaValidator()
	tpl := Template{Type: "free-form", Title: "Free"}
	if err := v.Validate(tpl, map[string]any{"anything": true}); err != nil {
		t.Fatalf("schemaless template must accept anything, got %v", err)
	}
}

func TestValidateEnforcesSchema(t *testing.T) {
	v := NewJSONSchemaValidator()
	tpl := Template{
		Type:  "limited",
		Title: "Limited",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1},
			},
			"required":             []any{"limit"},
			"additionalProperties": false,
		},
	}
	if err := v.Validate(tpl, map[string]any{"limit": 10}); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if err := v.Validate(tpl, map[string]any{"limit": 0}); err == nil {
		t.Fatal("expected minimum violation")
	}
	if err := v.Validate(tpl, map[string]any{"limit": 5, "extra": "x"}); err == nil {
		t.Fatal("expected additionalProperties violation")
	}
	if err := v.Validate(tpl, nil); err == nil {
		t.Fatal("expected required violation for nil settings")
	}
}

func TestValidateCachesCompiledSchemas(t *testing.T) {
	v := NewJSONSchemaValidator()
	tpl := Template{
		Type:   "cached",
		Title:  "Cached",
		Schema: map[string]any{"type": "object"},
	}
	if err := v.Validate(tpl, nil); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if _, ok := v.compiled["cached"]; !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
