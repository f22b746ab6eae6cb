// Package moderation implements the OpenAI-shaped content-moderation
// endpoint (spec.md §4.I, CapModeration).
package moderation

import (
	"context"

	"github.com/quillhq/llmkit/pkg/transport"
)

// CategoryScores holds per-category moderation confidence scores.
type CategoryScores map[string]float64

// Result is one input's moderation verdict.
type Result struct {
	Flagged    bool
	Categories map[string]bool
	Scores     CategoryScores
}

// Classify submits input text for moderation and returns one Result per
// input string, in order.
func Classify(ctx context.Context, sink transport.Sink, inputs []string) ([]Result, error) {
	var resp struct {
		Results []struct {
			Flagged        bool            `json:"flagged"`
			Categories     map[string]bool `json:"categories"`
			CategoryScores CategoryScores  `json:"category_scores"`
		} `json:"results"`
	}
	body := map[string]any{"input": inputs}
	if err := sink.PostJSON(ctx, "/moderations", nil, body, &resp); err != nil {
		return nil, err
	}
	out := make([]Result, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = Result{Flagged: r.Flagged, Categories: r.Categories, Scores: r.CategoryScores}
	}
	return out, nil
}
