package tools

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrInvalidArguments = errors.New("invalid arguments")

// Descriptor is the published description of a tool.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Schema is the JSON Schema subset used for tool arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Default     any                 `json:"default,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
}

// Validate checks required keys and the JSON type of every known key. Unknown keys are ignored.
// Enum lists are advertised to clients but not enforced; the handler decides what an unlisted value means.
func (s Schema) Validate(args map[string]any) error {
	for _, name := range s.Required {
		if v, ok := args[name]; !ok || v == nil {
			return fmt.Errorf("%w: missing required argument %q", ErrInvalidArguments, name)
		}
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := s.Properties[name]
		if !ok || args[name] == nil {
			continue
		}
		if err := prop.check(name, args[name]); err != nil {
			return err
		}
	}

	return nil
}

func (p Property) check(name string, v any) error {
	if !hasType(p.Type, v) {
		return fmt.Errorf("%w: argument %q must be of type %s, got %T", ErrInvalidArguments, name, p.Type, v)
	}

	return nil
}

// hasType reports whether v, as decoded by encoding/json, has the given JSON Schema type.
func hasType(typ string, v any) bool {
	switch typ {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "integer":
		switch n := v.(type) {
		case int, int64:
			return true
		case float64:
			return n == math.Trunc(n)
		}
		return false
	case "number":
		switch v.(type) {
		case int, int64, float64:
			return true
		}
		return false
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	default:
		return true
	}
}
