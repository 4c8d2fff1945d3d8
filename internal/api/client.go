// Package api provides the REST client for the job search backend and the
// catalogue of endpoints it exposes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobsearch-console/internal/config"
)

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "jobsearch-console/1.0"

// DefaultOrigin is used when no base URL is configured. A terminal client has
// no page origin, so same-origin requests go to the local backend.
const DefaultOrigin = "http://localhost"

// Options configures the client behavior.
type Options struct {
	Timeout    time.Duration // zero means no client-side timeout
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *log.Logger // request lines are logged when set
}

// Client issues JSON requests against <base><APIPrefix><path>.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	logger     *log.Logger
}

// NewClient creates a client for the given origin. Trailing slashes are trimmed.
func NewClient(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOrigin
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
		headers:    opts.Headers,
		logger:     opts.Logger,
	}
}

// URL returns the absolute URL for a path relative to the API prefix.
func (c *Client) URL(path string) string {
	return c.baseURL + config.APIPrefix + path
}

// Do performs a request and decodes a JSON response into out.
// A successful response without a JSON content type leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.DoRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if raw == nil || out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: method, URL: c.URL(path), Cause: err}
	}
	return nil
}

// DoRaw performs a request and returns the JSON body, or nil when the
// response is not JSON. Transport errors are returned as they are; any
// non-2xx status is returned as *Error.
func (c *Client) DoRaw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	fullURL := c.URL(path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if c.logger != nil {
		c.logger.Printf("[api] %s %s -> %d (%v)", method, fullURL, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp, data, isJSON)
	}

	if !isJSON {
		return nil, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

func newError(resp *http.Response, data []byte, isJSON bool) *Error {
	return &Error{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Detail:     errorDetail(data, isJSON),
	}
}

// statusText returns the reason phrase sent by the server, falling back to
// the canonical text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// errorDetail extracts a human-readable message from an error body.
// JSON bodies contribute their "detail" field, a bare JSON string, or their
// re-encoded form; other bodies contribute their raw text.
func errorDetail(data []byte, isJSON bool) string {
	if !isJSON {
		return string(data)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		payload = nil
	}

	switch v := payload.(type) {
	case string:
		return v
	case map[string]any:
		if detail, ok := v["detail"]; ok && detail != nil {
			if s, ok := detail.(string); ok {
				return s
			}
			return encodeCompact(detail)
		}
		return encodeCompact(v)
	case nil:
		return "{}"
	default:
		return encodeCompact(v)
	}
}

func encodeCompact(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
