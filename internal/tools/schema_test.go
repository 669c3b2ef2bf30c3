package tools

import (
	"errors"
	"testing"
)

func TestSchemaValidate(t *testing.T) {
	t.Parallel()

	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"name":   {Type: "string"},
			"count":  {Type: "integer"},
			"flag":   {Type: "boolean"},
			"data":   {Type: "object"},
			"format": {Type: "string", Enum: []string{"markdown", "html"}},
		},
		Required: []string{"name"},
	}

	cases := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{name: "valid", args: map[string]any{"name": "x", "count": float64(3), "flag": true, "data": map[string]any{}}},
		{name: "unknown keys ignored", args: map[string]any{"name": "x", "extra": 1}},
		{name: "null optional", args: map[string]any{"name": "x", "count": nil}},
		{name: "missing required", args: map[string]any{"count": float64(1)}, wantErr: true},
		{name: "null required", args: map[string]any{"name": nil}, wantErr: true},
		{name: "wrong type", args: map[string]any{"name": 1.0}, wantErr: true},
		{name: "fractional integer", args: map[string]any{"name": "x", "count": 1.5}, wantErr: true},
		{name: "object expected", args: map[string]any{"name": "x", "data": "{}"}, wantErr: true},
		{name: "enum member", args: map[string]any{"name": "x", "format": "html"}},
		{name: "value outside enum accepted", args: map[string]any{"name": "x", "format": "docx"}},
		{name: "enum field type still checked", args: map[string]any{"name": "x", "format": 3.0}, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := schema.Validate(tc.args)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidArguments) {
					t.Fatalf("expected ErrInvalidArguments, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
