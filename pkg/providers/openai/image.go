package openai

import (
	"context"
	"encoding/base64"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
)

const DefaultImageModel = "dall-e-3"

// GenerateImage implements provider.ImageModel, grounded on the teacher's
// providers/openai/image_model.go (b64_json response format, one call per
// batch of n images).
func (p *Provider) GenerateImage(ctx context.Context, prompt string, n int) (*types.ImageResult, error) {
	body := map[string]any{
		"model":           DefaultImageModel,
		"prompt":          prompt,
		"response_format": "b64_json",
	}
	if n > 0 {
		body["n"] = n
	}

	var resp struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := p.sink.PostJSON(ctx, "/images/generations", nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, llmerrors.New(llmerrors.KindResponseFormat, "openai: no image data returned")
	}
	first := resp.Data[0]
	imageBytes, err := base64.StdEncoding.DecodeString(first.B64JSON)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindResponseFormat, "openai: failed to decode image", err)
	}
	return &types.ImageResult{
		Image:    imageBytes,
		MimeType: "image/png",
		URL:      first.URL,
		Usage:    types.ImageUsage{ImageCount: len(resp.Data)},
	}, nil
}
