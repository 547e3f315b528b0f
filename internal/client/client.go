package client

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strings"
	"sync"

	"github.com/fivetwenty-io/ent-client/internal/auth"
	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/internal/http"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// Client implements the ent.Session interface.
type Client struct {
	httpClient  *http.Client
	authManager *auth.Manager
	baseURL     string
	logger      ent.Logger

	// Application catalog, fetched at most once.
	appsMu sync.Mutex
	apps   []*ent.App
}

var _ ent.Session = (*Client)(nil)

// NormalizeHost turns a host or URL into the base URL every path is
// resolved against: "https://" is prepended when no scheme is present and
// a trailing slash is appended.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}

	if !strings.HasSuffix(host, "/") {
		host += "/"
	}

	return host
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ent.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// baseHTTPClient applies the configured timeout on a copy of the
// configured client.
func baseHTTPClient(config *ent.Config) *stdhttp.Client {
	if config.HTTPTimeout <= 0 {
		return config.HTTPClient
	}

	base := &stdhttp.Client{}
	if config.HTTPClient != nil {
		copied := *config.HTTPClient
		base = &copied
	}

	base.Timeout = config.HTTPTimeout

	return base
}

// New creates a session. No request is sent until the first operation,
// which logs in.
func New(config *ent.Config) (*Client, error) {
	if config == nil {
		return nil, ent.ErrConfigRequired
	}

	if strings.TrimSpace(config.Host) == "" {
		return nil, ent.ErrHostRequired
	}

	if config.Username == "" || config.Password == "" {
		return nil, ent.ErrCredentialsRequired
	}

	authURL := config.AuthURL
	if authURL == "" {
		authURL = constants.DefaultAuthURL
	}

	var httpLogger http.Logger
	if config.Logger != nil {
		httpLogger = &loggerAdapter{logger: config.Logger}
	}

	// Logins and API calls share one transport.
	retryClient := http.NewRetryableClient(baseHTTPClient(config), httpLogger)

	authenticator := auth.NewAuthenticator(&auth.Config{
		AuthURL:  authURL,
		Username: config.Username,
		Password: config.Password,
		Logger:   config.Logger,
	}, retryClient)

	authManager := auth.NewManager(authenticator)
	baseURL := NormalizeHost(config.Host)

	httpOpts := append(createHTTPClientOptions(config), http.WithRetryableClient(retryClient))

	return &Client{
		httpClient:  http.NewClient(baseURL, authManager, httpOpts...),
		authManager: authManager,
		baseURL:     baseURL,
		logger:      config.Logger,
	}, nil
}

// BaseURL implements ent.Fetcher.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate implements ent.Session.Authenticate.
func (c *Client) Authenticate(ctx context.Context) error {
	_, _, err := c.authManager.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	return nil
}

// Authenticated reports whether the session already holds credentials.
func (c *Client) Authenticated() bool {
	return c.authManager.State() == auth.StateAuthenticated
}

// Fetch implements ent.Fetcher.Fetch. path may carry a query string.
func (c *Client) Fetch(ctx context.Context, path string, body interface{}, method string) (json.RawMessage, error) {
	if method == "" {
		method = stdhttp.MethodGet
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{Method: method, Path: path, Body: body})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}

	return resp.Body, nil
}

// loggerAdapter adapts ent.Logger to http.Logger.
type loggerAdapter struct {
	logger ent.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
