package groq

import (
	"context"
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeSendsMultipartFields(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		reader := multipart.NewReader(r.Body, params["boundary"])
		form, err := reader.ReadForm(10 << 20)
		require.NoError(t, err)
		gotModel = form.Value["model"][0]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "hello", "language": "en", "duration": 1.5})
	}))
	defer srv.Close()

	f := factory{}
	p, err := f.Create(types.Config{APIKey: "sk-x", Model: "llama-3.3-70b-versatile", BaseURL: srv.URL})
	require.NoError(t, err)

	result, err := p.(*Provider).Transcribe(context.Background(), []byte("fake-audio"), "audio/mp3")
	require.NoError(t, err)
	assert.Equal(t, DefaultTranscriptionModel, gotModel)
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, "en", result.Language)
	assert.InDelta(t, 1.5, result.Usage.Seconds, 0.001)
}
