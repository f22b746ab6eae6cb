// Package errors implements the library's closed error taxonomy: one
// discriminated-union type (LLMError) instead of a family of per-kind
// structs, so callers can exhaustively switch on Kind.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind discriminates the closed set of error variants the library returns.
type Kind string

const (
	KindHTTP              Kind = "http"
	KindAuth              Kind = "auth"
	KindInvalidRequest    Kind = "invalid_request"
	KindProvider          Kind = "provider"
	KindResponseFormat    Kind = "response_format"
	KindGeneric           Kind = "generic"
	KindNotFound          Kind = "not_found"
	KindJSONParse         Kind = "json_parse"
	KindToolConfig        Kind = "tool_config"
	KindRateLimit         Kind = "rate_limit"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindModelNotAvailable Kind = "model_not_available"
	KindContentFilter     Kind = "content_filter"
	KindServer            Kind = "server"
	KindCancelled         Kind = "cancelled"
)

// LLMError is the single closed error type every layer of the library
// returns. Kind-specific metadata lives in optional fields rather than
// separate struct types, so a switch over Kind is compiler-checkable at
// the call site without type assertions.
type LLMError struct {
	Kind    Kind
	Message string
	Cause   error

	// HTTP-ish context
	StatusCode int
	Raw        json.RawMessage

	// RateLimit / QuotaExceeded
	RetryAfter        *time.Duration
	RemainingRequests *int
	QuotaType         string

	// ModelNotAvailable
	Model           string
	AvailableModels []string

	// ContentFilter
	FilterType string
}

func (e *LLMError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *LLMError) Unwrap() error { return e.Cause }

// Is implements errors.Is support based on Kind equality.
func (e *LLMError) Is(target error) bool {
	t, ok := target.(*LLMError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether a transport-level retry is ever sensible for
// this error kind. Auth/InvalidRequest/ContentFilter/ToolConfig/JSONParse
// errors never become retryable by retrying the same request unchanged;
// Server/Http/RateLimit/Generic may be.
func (e *LLMError) Retryable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindServer, KindHTTP, KindRateLimit:
		return true
	case KindGeneric:
		return e.Cause != nil
	default:
		return false
	}
}

func New(kind Kind, message string) *LLMError {
	return &LLMError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *LLMError {
	return &LLMError{Kind: kind, Message: message, Cause: cause}
}

func Cancelled(message string) *LLMError {
	return &LLMError{Kind: KindCancelled, Message: message}
}

// anthropicErrorBody mirrors Anthropic's `{"type":"error","error":{"type":...,"message":...}}` envelope.
type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// MapAnthropicError overrides the generic HTTP status mapping when the
// vendor body names one of Anthropic's documented error.type values; it
// returns nil when body does not look like an Anthropic error envelope, so
// the caller can fall back to MapHTTPStatus.
func MapAnthropicError(status int, body []byte, headers http.Header) *LLMError {
	var parsed anthropicErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Type == "" {
		return nil
	}
	msg := parsed.Error.Message
	switch parsed.Error.Type {
	case "authentication_error":
		return &LLMError{Kind: KindAuth, Message: msg, StatusCode: status, Raw: body}
	case "permission_error":
		return &LLMError{Kind: KindAuth, Message: "Forbidden: " + msg, StatusCode: status, Raw: body}
	case "invalid_request_error":
		return &LLMError{Kind: KindInvalidRequest, Message: msg, StatusCode: status, Raw: body}
	case "not_found_error":
		return &LLMError{Kind: KindNotFound, Message: msg, StatusCode: status, Raw: body}
	case "rate_limit_error":
		e := &LLMError{Kind: KindRateLimit, Message: msg, StatusCode: status, Raw: body}
		e.RetryAfter = parseRetryAfter(headers)
		return e
	case "api_error":
		return &LLMError{Kind: KindServer, Message: msg, StatusCode: status, Raw: body}
	case "overloaded_error":
		return &LLMError{Kind: KindServer, Message: "Overloaded: " + msg, StatusCode: status, Raw: body}
	default:
		return &LLMError{Kind: KindProvider, Message: msg, StatusCode: status, Raw: body}
	}
}

// MapHTTPStatus implements spec.md §4.A's design-level status-code mapping
// table. Callers should try a vendor-specific override (e.g.
// MapAnthropicError) first and fall back to this when it returns nil.
func MapHTTPStatus(status int, body []byte, headers http.Header) *LLMError {
	base := &LLMError{StatusCode: status, Raw: body}
	switch {
	case status == http.StatusBadRequest:
		base.Kind = KindInvalidRequest
	case status == http.StatusUnauthorized:
		base.Kind = KindAuth
	case status == http.StatusForbidden:
		base.Kind = KindAuth
		base.Message = "Forbidden"
	case status == http.StatusNotFound:
		if model := sniffModelName(body); model != "" {
			base.Kind = KindModelNotAvailable
			base.Model = model
		} else {
			base.Kind = KindNotFound
		}
	case status == http.StatusUnprocessableEntity:
		base.Kind = KindInvalidRequest
		base.Message = "Validation"
	case status == http.StatusTooManyRequests:
		base.Kind = KindRateLimit
		base.RetryAfter = parseRetryAfter(headers)
	case status == http.StatusInternalServerError,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		base.Kind = KindServer
	case status >= 400 && status < 500:
		base.Kind = KindHTTP
	case status >= 500:
		base.Kind = KindServer
	default:
		base.Kind = KindGeneric
	}
	return base
}

// sniffModelName does a best-effort scan of an error body for a "model"
// field, used to decide NotFound vs ModelNotAvailable on 404.
func sniffModelName(body []byte) string {
	var probe struct {
		Error struct {
			Message string `json:"message"`
			Model   string `json:"model"`
		} `json:"error"`
		Model string `json:"model"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.Model != "" {
		return probe.Model
	}
	return probe.Error.Model
}

// parseRetryAfter parses the Retry-After header as either a seconds integer
// or an HTTP-date, per spec §4.A.
func parseRetryAfter(headers http.Header) *time.Duration {
	if headers == nil {
		return nil
	}
	v := headers.Get("Retry-After")
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		d := time.Duration(secs) * time.Second
		return &d
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return &d
	}
	return nil
}
