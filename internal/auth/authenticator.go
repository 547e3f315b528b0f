package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// Config configures the login handshake.
type Config struct {
	// AuthURL is the authentication host, without trailing slash.
	AuthURL  string
	Username string
	Password string
	Logger   ent.Logger
}

// Authenticator posts the portal login form and extracts the session
// cookie and XSRF token from the redirect it answers with.
type Authenticator struct {
	config     *Config
	httpClient *retryablehttp.Client
}

// NewAuthenticator creates an authenticator. httpClient must not follow
// redirects.
func NewAuthenticator(config *Config, httpClient *retryablehttp.Client) *Authenticator {
	return &Authenticator{
		config:     config,
		httpClient: httpClient,
	}
}

// FormBody renders the login form. Values are encoded with
// ent.EncodeFormValue; the callback is encoded twice, as the portal's own
// login page does.
func (a *Authenticator) FormBody() string {
	return "email=" + ent.EncodeFormValue(a.config.Username) +
		"&password=" + ent.EncodeFormValue(a.config.Password) +
		"&callBack=" + ent.EncodeFormValue(ent.EncodeFormValue(constants.LoginCallbackURL)) +
		"&details="
}

// Login implements Loginer.
func (a *Authenticator) Login(ctx context.Context) (*Credentials, error) {
	loginURL := strings.TrimSuffix(a.config.AuthURL, "/") + constants.AuthLoginPath

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, loginURL, []byte(a.FormBody()))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cookie", constants.WebviewCookie)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", constants.LegacyUserAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting login form: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	creds, err := ExtractCredentials(resp)
	if err != nil {
		a.warn("login failed", map[string]interface{}{"username": a.config.Username, "status_code": resp.StatusCode})

		return nil, err
	}

	a.info("login succeeded", map[string]interface{}{"username": a.config.Username})

	return creds, nil
}

// ExtractCredentials reads the session cookie and XSRF token from a login
// response. The portal answers a successful login with a redirect; a 200
// means the login page was displayed again.
func ExtractCredentials(resp *http.Response) (*Credentials, error) {
	if resp.StatusCode == http.StatusOK {
		return nil, &ent.AuthError{StatusCode: resp.StatusCode, Reason: "login page displayed again, check username and password"}
	}

	if resp.StatusCode < http.StatusMultipleChoices || resp.StatusCode >= http.StatusBadRequest {
		return nil, &ent.AuthError{StatusCode: resp.StatusCode, Reason: "unexpected login response"}
	}

	var creds Credentials

	for _, cookie := range resp.Cookies() {
		switch {
		case cookie.Name == constants.XSRFCookieName:
			creds.XSRFToken = cookie.Value
		case strings.EqualFold(cookie.Name, constants.SessionCookieName):
			creds.SessionCookie = cookie.Name + "=" + cookie.Value
		}
	}

	if creds.SessionCookie == "" || creds.XSRFToken == "" {
		return nil, &ent.AuthError{StatusCode: resp.StatusCode, Reason: "no session cookie in login response"}
	}

	return &creds, nil
}

func (a *Authenticator) info(msg string, fields map[string]interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Info(msg, fields)
	}
}

func (a *Authenticator) warn(msg string, fields map[string]interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Warn(msg, fields)
	}
}
