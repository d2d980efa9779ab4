package gurkerl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
	"github.com/pasogott/gurkerlcli/pkg/logger"
)

const (
	defaultBaseURL   = "https://www.gurkerl.at"
	defaultUserAgent = "gurkerlcli/0.1.0"
	defaultTimeout   = 30 * time.Second

	errorBodyReadLimit int64 = 4096
)

// Client wraps the undocumented gurkerl.at web API. All requests carry the
// fixed header set the web frontend sends and the cookie map of the stored
// session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cookies    map[string]string
	logg       *logger.Logger
	validate   *validator.Validate
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithUserAgent overrides the client identification header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(userAgent)
		if trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithTimeout overrides the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithCookies seeds the client with a session's cookie map.
func WithCookies(cookies map[string]string) Option {
	return func(c *Client) {
		c.cookies = cookies
	}
}

// WithLogger attaches the logger used for debug request/response lines.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		if logg != nil {
			c.logg = logg
		}
	}
}

// NewClient builds an API client with the fixed production defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		validate:   validator.New(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.logg == nil {
		client.logg = logger.New(logger.Options{ServiceName: "gurkerl", Level: zerolog.InfoLevel})
	}

	return client
}

// do issues one request and returns the response body as raw JSON. Status
// codes map onto the typed error taxonomy; an empty body decodes as an empty
// object and a non-JSON success body is wrapped as {"text": ...}.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	reqURL := c.buildURL(path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-origin", "WEB")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	c.logg.Debugf(ctx, map[string]any{"method": method, "path": path}, "api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.logg.Debugf(ctx, map[string]any{
		"status": resp.StatusCode,
		"method": method,
		"url":    resp.Request.URL.String(),
	}, "api response")

	if err := statusError(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "read response body")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(data) {
		wrapped, err := json.Marshal(map[string]string{"text": string(data)})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wrap non-json response")
		}
		return wrapped, nil
	}

	return data, nil
}

// statusError translates an HTTP error status into a typed error, extracting
// the upstream message from a JSON `message` field when there is one.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication failed, please login again")
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		return pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded, please try again later")
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		msg := strings.TrimSpace(string(raw))
		var parsed struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
			msg = parsed.Message
		}
		return pkgerrors.New(pkgerrors.CodeAPI, fmt.Sprintf("api error (%d): %s", resp.StatusCode, msg)).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
	return nil
}

// decodeValid unmarshals raw JSON into v and runs struct validation so
// missing required fields surface as decode failures.
func (c *Client) decodeValid(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return c.validate.Struct(v)
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
