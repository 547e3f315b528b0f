// Package http implements the authenticated request primitive of a portal
// session: credential headers, JSON decoding and error envelope routing.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// CredentialProvider hands out the session cookie and XSRF token,
// authenticating first when needed.
type CredentialProvider interface {
	Credentials(ctx context.Context) (sessionCookie, xsrfToken string, err error)
}

// Logger is the logging interface used by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client issues authenticated requests against a portal base URL.
type Client struct {
	baseURL     string
	credentials CredentialProvider
	retryClient *retryablehttp.Client
	httpClient  *http.Client
	logger      Logger
	debug       bool
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header of API calls.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient sets the underlying HTTP client. Its redirect policy is
// replaced by NewRetryableClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryableClient shares an already built client, typically with the
// authenticator.
func WithRetryableClient(retryClient *retryablehttp.Client) Option {
	return func(c *Client) {
		c.retryClient = retryClient
	}
}

// NewClient creates a client for baseURL, which must end with a slash.
// A nil credentials provider sends requests without session headers.
func NewClient(baseURL string, credentials CredentialProvider, opts ...Option) *Client {
	client := &Client{
		baseURL:     baseURL,
		credentials: credentials,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.retryClient == nil {
		client.retryClient = NewRetryableClient(client.httpClient, client.logger)
	}

	return client
}

// NewRetryableClient wraps httpClient in a retryablehttp client that sends
// each request exactly once and never follows redirects.
func NewRetryableClient(httpClient *http.Client, logger Logger) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.Logger = nil

	if logger != nil {
		retryClient.Logger = &leveledLogger{logger: logger}
	}

	base := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		base = &copied
	}

	base.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	retryClient.HTTPClient = base

	return retryClient
}

// neverRetry surfaces every response and transport error to the caller.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes an API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a decoded API response. Body is nil when the portal sent an
// empty body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       json.RawMessage
}

// Do issues req and decodes the JSON response. An error envelope or an
// unsuccessful status is returned as *ent.APIError together with the
// response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         httpReq.URL.String(),
			"status_code": httpResp.StatusCode,
			"duration":    time.Since(start).String(),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}

	return resp, c.decode(resp, data)
}

func (c *Client) newRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + strings.TrimPrefix(req.Path, "/")

	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}

		target += separator + req.Query.Encode()
	}

	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.credentials != nil {
		sessionCookie, xsrfToken, err := c.credentials.Credentials(ctx)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Cookie", sessionCookie+"; "+constants.XSRFCookieName+"="+xsrfToken)
		httpReq.Header.Set(constants.XSRFHeaderName, xsrfToken)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// decode validates data and routes it through the error envelope.
func (c *Client) decode(resp *Response, data []byte) error {
	if len(strings.TrimSpace(string(data))) > 0 {
		if !json.Valid(data) {
			if resp.StatusCode >= http.StatusMultipleChoices {
				return &ent.APIError{StatusCode: resp.StatusCode, Payload: string(data), Raw: http.StatusText(resp.StatusCode)}
			}

			return fmt.Errorf("%w (status %d)", ent.ErrInvalidJSON, resp.StatusCode)
		}

		resp.Body = json.RawMessage(data)
	}

	apiErr := ent.ParseEnvelope(resp.Body)
	if apiErr != nil {
		apiErr.StatusCode = resp.StatusCode

		return apiErr
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		var payload interface{}
		if resp.Body != nil {
			_ = json.Unmarshal(resp.Body, &payload)
		}

		return &ent.APIError{StatusCode: resp.StatusCode, Payload: payload, Raw: http.StatusText(resp.StatusCode)}
	}

	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// IsAPIError reports whether err came from the portal rather than from the
// transport.
func IsAPIError(err error) bool {
	apiErr := &ent.APIError{}

	return errors.As(err, &apiErr)
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return out
}
