package types

import "encoding/json"

// PropertyType is the restricted JSON-schema-lite type set spec.md §3 names.
type PropertyType string

const (
	TypeString  PropertyType = "string"
	TypeNumber  PropertyType = "number"
	TypeInteger PropertyType = "integer"
	TypeBoolean PropertyType = "boolean"
	TypeArray   PropertyType = "array"
	TypeObject  PropertyType = "object"
)

// Property is one node of a ParametersSchema tree.
type Property struct {
	Type        PropertyType
	Description string
	Items       *Property
	Enum        []string
	Properties  map[string]Property
	Required    []string
}

// ParametersSchema mirrors a restricted JSON schema for a tool's parameters.
type ParametersSchema struct {
	Type       PropertyType
	Properties map[string]Property
	Required   []string
}

// Function describes the callable surface of a Tool.
type Function struct {
	Name        string
	Description string
	Parameters  ParametersSchema
}

// Tool is a function the model may call.
type Tool struct {
	Kind     string // always "function"
	Function Function
}

func NewTool(name, description string, params ParametersSchema) Tool {
	return Tool{Kind: "function", Function: Function{Name: name, Description: description, Parameters: params}}
}

// ToolCallFunction carries the raw (string-encoded) arguments of a call.
type ToolCallFunction struct {
	Name          string
	ArgumentsJSON string
}

// ToolCall is a single invocation request, either emitted by the model or
// synthesized by a translator from a streamed delta.
type ToolCall struct {
	ID       string
	Kind     string // always "function"
	Function ToolCallFunction
}

// Arguments unmarshals the call's ArgumentsJSON into v.
func (c ToolCall) Arguments(v any) error {
	if c.Function.ArgumentsJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(c.Function.ArgumentsJSON), v)
}

// ToolChoiceKind discriminates the closed ToolChoice sum.
type ToolChoiceKind string

const (
	ToolChoiceAuto     ToolChoiceKind = "auto"
	ToolChoiceAny      ToolChoiceKind = "any"
	ToolChoiceSpecific ToolChoiceKind = "specific"
	ToolChoiceNone     ToolChoiceKind = "none"
)

// ToolChoice constrains which tool the model may invoke next turn.
type ToolChoice struct {
	Kind            ToolChoiceKind
	ToolName        string // only for ToolChoiceSpecific
	DisableParallel bool
}

func AutoToolChoice(disableParallel bool) ToolChoice {
	return ToolChoice{Kind: ToolChoiceAuto, DisableParallel: disableParallel}
}

func AnyToolChoice(disableParallel bool) ToolChoice {
	return ToolChoice{Kind: ToolChoiceAny, DisableParallel: disableParallel}
}

func SpecificToolChoice(name string, disableParallel bool) ToolChoice {
	return ToolChoice{Kind: ToolChoiceSpecific, ToolName: name, DisableParallel: disableParallel}
}

func NoneToolChoice() ToolChoice {
	return ToolChoice{Kind: ToolChoiceNone}
}

// IsZero reports whether no tool choice was specified at all (as opposed to
// explicitly set to None).
func (t ToolChoice) IsZero() bool { return t.Kind == "" }
