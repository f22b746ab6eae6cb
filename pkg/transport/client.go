package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/sse"
	"golang.org/x/time/rate"
)

const (
	// DefaultJSONTimeout is the default per-call timeout for non-stream
	// requests (spec.md §5).
	DefaultJSONTimeout = 30 * time.Second
	// DefaultStreamTimeout is the default per-call timeout for SSE
	// requests (spec.md §5: "≥5 min for streams").
	DefaultStreamTimeout = 5 * time.Minute
)

// ErrorMapper overrides the generic HTTP-status mapping with a
// vendor-specific one; it returns nil when the body doesn't match its
// vendor's error envelope, letting Client fall back to
// llmerrors.MapHTTPStatus. Grounded on errors.MapAnthropicError.
type ErrorMapper func(status int, body []byte, headers http.Header) *llmerrors.LLMError

// Client is the net/http-backed Sink implementation, grounded on the
// teacher's pkg/internal/http/client.go and extended with PostForm,
// GetBytes, Delete, and PostSSE — operations the teacher never needed
// because its scope stopped at chat/embeddings.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	headers     map[string]string
	limiter     *rate.Limiter
	jsonTimeout time.Duration
	errorMapper ErrorMapper
}

// Config configures a Client.
type Config struct {
	BaseURL        string
	Headers        map[string]string
	HTTPClient     *http.Client
	JSONTimeout    time.Duration
	StreamTimeout  time.Duration
	RateLimitPerS  float64 // 0 disables the limiter
	RateLimitBurst int
	ErrorMapper    ErrorMapper
}

// NewClient builds a Client from cfg, applying the documented defaults.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	jsonTimeout := cfg.JSONTimeout
	if jsonTimeout == 0 {
		jsonTimeout = DefaultJSONTimeout
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		headers:     cfg.Headers,
		jsonTimeout: jsonTimeout,
		errorMapper: cfg.ErrorMapper,
	}
	if cfg.RateLimitPerS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitPerS), burst)
	}
	return c
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

func (c *Client) mergeHeaders(req *http.Request, extra map[string]string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

func (c *Client) await(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// mapError converts a non-2xx HTTP response into an *LLMError, preferring
// the configured vendor-specific ErrorMapper when it recognizes the body.
func (c *Client) mapError(status int, body []byte, headers http.Header) error {
	if c.errorMapper != nil {
		if e := c.errorMapper(status, body, headers); e != nil {
			return e
		}
	}
	return llmerrors.MapHTTPStatus(status, body, headers)
}

func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body any, timeout time.Duration) (*http.Response, error) {
	if err := c.await(ctx); err != nil {
		return nil, llmerrors.Cancelled(err.Error())
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			cancel()
			return nil, llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to marshal request body", err)
		}
		bodyReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bodyReader)
	if err != nil {
		cancel()
		return nil, llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mergeHeaders(req, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, mapTransportErr(ctx, err)
	}
	// cancel() must outlive the caller's use of resp.Body for streams; JSON
	// callers read the body fully before returning, so wrap Body to cancel
	// on Close for both cases.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func mapTransportErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return llmerrors.New(llmerrors.KindHTTP, "Request timeout")
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return llmerrors.Cancelled(err.Error())
	}
	return llmerrors.Wrap(llmerrors.KindGeneric, "transport error", err)
}

func readErrorBody(resp *http.Response) []byte {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	resp.Body.Close()
	return b
}

func (c *Client) PostJSON(ctx context.Context, path string, headers map[string]string, body any, out any) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, headers, body, c.jsonTimeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return llmerrors.Wrap(llmerrors.KindJSONParse, "failed to decode response", err)
	}
	return nil
}

func (c *Client) GetJSON(ctx context.Context, path string, headers map[string]string, out any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, headers, nil, c.jsonTimeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return llmerrors.Wrap(llmerrors.KindJSONParse, "failed to decode response", err)
	}
	return nil
}

func (c *Client) GetBytes(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, headers, nil, c.jsonTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindGeneric, "failed to read response", err)
	}
	return data, nil
}

func (c *Client) PostBytes(ctx context.Context, path string, headers map[string]string, body any) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, headers, body, c.jsonTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindGeneric, "failed to read response", err)
	}
	return data, nil
}

func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, path, headers, nil, c.jsonTimeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) PostForm(ctx context.Context, path string, headers map[string]string, fields []FormField, out any) error {
	if err := c.await(ctx); err != nil {
		return llmerrors.Cancelled(err.Error())
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if len(f.Data) > 0 || f.FileName != "" {
			fw, err := w.CreateFormFile(f.Name, f.FileName)
			if err != nil {
				return llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to build multipart field", err)
			}
			if _, err := fw.Write(f.Data); err != nil {
				return llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to write multipart field", err)
			}
			continue
		}
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to write multipart field", err)
		}
	}
	if err := w.Close(); err != nil {
		return llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to finalize multipart body", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.jsonTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), &buf)
	if err != nil {
		return llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to build request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.mergeHeaders(req, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportErr(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return llmerrors.Wrap(llmerrors.KindJSONParse, "failed to decode response", err)
	}
	return nil
}

// sseStream implements StreamReader over an *http.Response body, decoding
// raw bytes through sse.Decoder so every yielded chunk is a UTF-8-valid
// prefix of the cumulative stream (spec §4.D guarantee).
type sseStream struct {
	body    io.ReadCloser
	decoder *sse.Decoder
	buf     [4096]byte
	eof     bool
}

func (s *sseStream) Next() (StreamChunk, error) {
	for {
		n, err := s.body.Read(s.buf[:])
		if n > 0 {
			text := s.decoder.Push(s.buf[:n])
			if text != "" {
				return StreamChunk{Data: text}, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				if res := s.decoder.Flush(); res != "" {
					s.eof = true
					return StreamChunk{Data: res}, nil
				}
				return StreamChunk{}, io.EOF
			}
			return StreamChunk{}, mapTransportErr(context.Background(), err)
		}
	}
}

func (s *sseStream) Close() error { return s.body.Close() }

func (c *Client) PostSSE(ctx context.Context, path string, headers map[string]string, body any) (StreamReader, error) {
	if err := c.await(ctx); err != nil {
		return nil, llmerrors.Cancelled(err.Error())
	}
	timeout := DefaultStreamTimeout
	data, err := json.Marshal(body)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to marshal request body", err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(data))
	if err != nil {
		cancel()
		return nil, llmerrors.Wrap(llmerrors.KindInvalidRequest, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	c.mergeHeaders(req, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, mapTransportErr(ctx, err)
	}
	if resp.StatusCode >= 400 {
		defer cancel()
		return nil, c.mapError(resp.StatusCode, readErrorBody(resp), resp.Header)
	}
	body2 := &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return &sseStream{body: body2, decoder: sse.NewDecoder()}, nil
}
