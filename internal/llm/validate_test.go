package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func progressSchema() *Schema {
	return &Schema{
		Name: "test-progress",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"completeness": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"insights":     map[string]any{"type": "string"},
				"needs_more":   map[string]any{"type": "boolean"},
				"tags": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "enum": []any{"market", "pricing", "moat"}},
				},
			},
			"required": []any{"completeness", "insights"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"complete", `{"completeness":80,"insights":"Clear commuter pain.","needs_more":false}`, false},
		{"optional fields omitted", `{"completeness":10,"insights":"Vague."}`, false},
		{"enum array", `{"completeness":50,"insights":"ok","tags":["market","moat"]}`, false},
		{"missing required", `{"completeness":80}`, true},
		{"out of range", `{"completeness":140,"insights":"too good"}`, true},
		{"wrong type", `{"completeness":"high","insights":"x"}`, true},
		{"bad enum item", `{"completeness":50,"insights":"x","tags":["vibes"]}`, true},
		{"malformed", `{completeness: 80}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(progressSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidatorFor_Caches(t *testing.T) {
	s := progressSchema()
	s.Name = "test-progress-cache"

	v1, err := validatorFor(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := validatorFor(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != v2 {
		t.Fatal("expected the compiled validator to be reused")
	}
}
