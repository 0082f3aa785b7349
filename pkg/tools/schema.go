package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

func objectSchema(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func stringParam(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func enumParam(description string, values []string, def string) *jsonschema.Schema {
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Description: description,
		Enum:        enum,
		Default:     mustRaw(def),
	}
}

func numberParam(description string, def float64) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description, Default: mustRaw(def)}
}

func rangeParam(description string, def, min, max float64) *jsonschema.Schema {
	s := numberParam(description, def)
	s.Minimum = &min
	s.Maximum = &max
	return s
}

func boolParam(description string, def bool) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description, Default: mustRaw(def)}
}

func mustRaw(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal schema default: %v", err))
	}
	return raw
}

// DecodeArgs decodes map-style tool arguments into a typed struct.
// Type mismatches are reported as *InvalidArgumentError naming the field.
func DecodeArgs[T any](args map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(args)
	if err != nil {
		return out, &InvalidArgumentError{Field: "arguments", Message: err.Error()}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return out, &InvalidArgumentError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be %s, got %s", jsonKind(typeErr.Type.Kind().String()), typeErr.Value),
			}
		}
		return out, &InvalidArgumentError{Field: "arguments", Message: err.Error()}
	}
	return out, nil
}

func jsonKind(goKind string) string {
	switch goKind {
	case "float64", "ptr":
		return "a number"
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	default:
		return goKind
	}
}
