// Package schema implements the JSON-schema-lite recursive tool-call
// validator spec.md §4.K describes. The teacher's pkg/schema/validator.go
// stubs this exact interface shape (Validator.Validate always returns
// nil, marked "TODO: Phase 2") — this is the first real implementation.
package schema

import (
	"encoding/json"
	"fmt"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
)

// Violation is one schema mismatch found while validating arguments
// against a ParametersSchema.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string { return fmt.Sprintf("%s: %s", v.Path, v.Message) }

// ValidateParameters recursively checks arguments (already JSON-decoded)
// against schema, per spec §4.K: type check, enum check, recursive
// array-items, recursive object-properties with required-set checks.
func ValidateParameters(arguments json.RawMessage, schema types.ParametersSchema) []Violation {
	var decoded any
	if err := json.Unmarshal(arguments, &decoded); err != nil {
		return []Violation{{Path: "$", Message: "arguments is not valid JSON: " + err.Error()}}
	}
	prop := types.Property{Type: schema.Type, Properties: schema.Properties, Required: schema.Required}
	return validateValue("$", decoded, prop)
}

func validateValue(path string, value any, prop types.Property) []Violation {
	var violations []Violation

	if prop.Type != "" {
		if !typeMatches(prop.Type, value) {
			violations = append(violations, Violation{
				Path:    path,
				Message: fmt.Sprintf("expected type %q, got %s", prop.Type, goType(value)),
			})
			return violations // further checks are meaningless on a type mismatch
		}
	}

	if len(prop.Enum) > 0 {
		s, ok := value.(string)
		if !ok || !contains(prop.Enum, s) {
			violations = append(violations, Violation{
				Path:    path,
				Message: fmt.Sprintf("value %v is not one of %v", value, prop.Enum),
			})
		}
	}

	switch prop.Type {
	case types.TypeArray:
		arr, _ := value.([]any)
		if prop.Items != nil {
			for i, item := range arr {
				violations = append(violations, validateValue(fmt.Sprintf("%s[%d]", path, i), item, *prop.Items)...)
			}
		}
	case types.TypeObject:
		obj, _ := value.(map[string]any)
		for _, req := range prop.Required {
			if _, ok := obj[req]; !ok {
				violations = append(violations, Violation{
					Path:    path,
					Message: fmt.Sprintf("missing required property %q", req),
				})
			}
		}
		for name, childProp := range prop.Properties {
			v, ok := obj[name]
			if !ok {
				continue
			}
			violations = append(violations, validateValue(path+"."+name, v, childProp)...)
		}
	}
	return violations
}

func typeMatches(t types.PropertyType, v any) bool {
	switch t {
	case types.TypeString:
		_, ok := v.(string)
		return ok
	case types.TypeBoolean:
		_, ok := v.(bool)
		return ok
	case types.TypeNumber:
		_, ok := v.(float64)
		return ok
	case types.TypeInteger:
		f, ok := v.(float64)
		return ok && f == float64(int64(f))
	case types.TypeArray:
		_, ok := v.([]any)
		return ok
	case types.TypeObject:
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

func goType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ToolConfigError is raised by ValidateToolCall when a call fails
// validation, carrying the accumulated violation list (spec §4.K).
type ToolConfigError struct {
	Violations []Violation
}

func (e *ToolConfigError) Error() string {
	if len(e.Violations) == 1 {
		return "tool call validation failed: " + e.Violations[0].String()
	}
	return fmt.Sprintf("tool call validation failed with %d violations", len(e.Violations))
}

// ValidateToolCall checks call.Function.Name matches tool.Function.Name and
// that call's arguments satisfy tool's parameter schema; on any mismatch it
// returns a *ToolConfigError, otherwise nil.
func ValidateToolCall(call types.ToolCall, tool types.Tool) error {
	if call.Function.Name != tool.Function.Name {
		return &ToolConfigError{Violations: []Violation{{
			Path:    "$.name",
			Message: fmt.Sprintf("call name %q does not match tool name %q", call.Function.Name, tool.Function.Name),
		}}}
	}
	violations := ValidateParameters(json.RawMessage(call.Function.ArgumentsJSON), tool.Function.Parameters)
	if len(violations) > 0 {
		return &ToolConfigError{Violations: violations}
	}
	return nil
}

// AsLLMError converts a ToolConfigError into the closed error taxonomy for
// callers that want a uniform *errors.LLMError return type.
func AsLLMError(err *ToolConfigError) *llmerrors.LLMError {
	return &llmerrors.LLMError{Kind: llmerrors.KindToolConfig, Message: err.Error()}
}
