package types

// Usage is token accounting for a single call. Fields are pointers so that
// "absent" (nil) is distinguishable from "zero" per spec.md §3/§8: `+` is
// componentwise with absent counted as 0 iff at least one operand has the
// field set.
type Usage struct {
	PromptTokens     *int64
	CompletionTokens *int64
	TotalTokens      *int64
	ReasoningTokens  *int64

	// Supplemented detail breakdown (SPEC_FULL §9), additive to the four
	// required fields above.
	PromptDetails     *InputTokenDetails
	CompletionDetails *OutputTokenDetails

	Raw map[string]any
}

type InputTokenDetails struct {
	NoCacheTokens    *int64
	CacheReadTokens  *int64
	CacheWriteTokens *int64
}

type OutputTokenDetails struct {
	TextTokens      *int64
	ReasoningTokens *int64
}

// Add combines two Usage values. Per spec §8's testable property, it is
// commutative and associative, and Usage{} (all-nil) is the identity.
func (u Usage) Add(other Usage) Usage {
	result := Usage{
		PromptTokens:     addPtr(u.PromptTokens, other.PromptTokens),
		CompletionTokens: addPtr(u.CompletionTokens, other.CompletionTokens),
		TotalTokens:      addPtr(u.TotalTokens, other.TotalTokens),
		ReasoningTokens:  addPtr(u.ReasoningTokens, other.ReasoningTokens),
	}
	if u.PromptDetails != nil || other.PromptDetails != nil {
		var a, b InputTokenDetails
		if u.PromptDetails != nil {
			a = *u.PromptDetails
		}
		if other.PromptDetails != nil {
			b = *other.PromptDetails
		}
		result.PromptDetails = &InputTokenDetails{
			NoCacheTokens:    addPtr(a.NoCacheTokens, b.NoCacheTokens),
			CacheReadTokens:  addPtr(a.CacheReadTokens, b.CacheReadTokens),
			CacheWriteTokens: addPtr(a.CacheWriteTokens, b.CacheWriteTokens),
		}
	}
	if u.CompletionDetails != nil || other.CompletionDetails != nil {
		var a, b OutputTokenDetails
		if u.CompletionDetails != nil {
			a = *u.CompletionDetails
		}
		if other.CompletionDetails != nil {
			b = *other.CompletionDetails
		}
		result.CompletionDetails = &OutputTokenDetails{
			TextTokens:      addPtr(a.TextTokens, b.TextTokens),
			ReasoningTokens: addPtr(a.ReasoningTokens, b.ReasoningTokens),
		}
	}
	if len(u.Raw) > 0 || len(other.Raw) > 0 {
		result.Raw = make(map[string]any, len(u.Raw)+len(other.Raw))
		for k, v := range u.Raw {
			result.Raw[k] = v
		}
		for k, v := range other.Raw {
			result.Raw[k] = v
		}
	}
	return result
}

func addPtr(a, b *int64) *int64 {
	if a == nil && b == nil {
		return nil
	}
	var av, bv int64
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	sum := av + bv
	return &sum
}

// FinishReason is why the model stopped generating.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishContentFilter FinishReason = "content-filter"
	FinishToolCalls     FinishReason = "tool-calls"
	FinishError         FinishReason = "error"
	FinishOther         FinishReason = "other"
)

// Warning is a non-fatal condition surfaced alongside a result, per
// spec §7's "warnings are logged, never converted to errors" policy.
type Warning struct {
	Type    string
	Message string
}
