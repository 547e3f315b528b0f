package ent

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Fetcher is the authenticated request primitive every other operation is
// built on.
type Fetcher interface {
	// BaseURL returns the normalized portal URL, always terminated by a slash.
	BaseURL() string

	// Fetch issues an authenticated request against BaseURL()+path and
	// returns the decoded JSON payload. A nil body sends no request body.
	Fetch(ctx context.Context, path string, body interface{}, method string) (json.RawMessage, error)
}

// MessagesClient provides access to the portal mailbox.
type MessagesClient interface {
	FetchMessages(ctx context.Context, folder Folder, page int) ([]*Message, error)
	FetchMessage(ctx context.Context, id string, parse bool) (*Message, error)
	SendMessage(ctx context.Context, config *MessageConfig) (string, error)
	ReplyMessage(ctx context.Context, original *Message, config *MessageConfig) (string, error)
	SendOutgoing(ctx context.Context, message *OutgoingMessage, inReplyTo string) (string, error)
	TrashMessage(ctx context.Context, id string) error
}

// UsersClient provides access to user profiles.
type UsersClient interface {
	FetchUserInfo(ctx context.Context) (*UserInfo, error)
	FetchUser(ctx context.Context, id string) (*User, error)
	SearchUsers(ctx context.Context, query *SearchQuery) ([]*UserPreview, error)
	AvatarURL(id string) string
}

// AppsClient provides access to the application catalog and the pinned set.
type AppsClient interface {
	FetchApps(ctx context.Context) ([]*App, error)
	FetchPinnedApps(ctx context.Context) ([]*App, error)
	PinApps(ctx context.Context, apps []*App) error
}

// PreferencesClient provides access to user preferences.
type PreferencesClient interface {
	FetchLanguage(ctx context.Context) (string, error)
}

// Session is an authenticated connection to one portal account.
type Session interface {
	Fetcher
	MessagesClient
	UsersClient
	AppsClient
	PreferencesClient

	// Authenticate logs in unless the session already holds credentials.
	Authenticate(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents session configuration for building an ent.Session.
//
// Host is normalized by entclient.New: "https://" is prepended when no
// scheme is present and a trailing slash is appended.
//
// Logins are always posted to AuthURL, the portal's canonical host, even
// when Host names a regional portal.
type Config struct {
	// Host: portal host or URL (e.g., "ent.iledefrance.fr").
	Host string
	// AuthURL: authentication host. Defaults to the canonical portal host.
	AuthURL string
	// Username: account login, usually "firstname.lastname".
	Username string
	// Password: account password. Kept in memory to perform the lazy login.
	Password string

	// Logger: optional structured logger used by the HTTP and auth layers.
	Logger Logger
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// UserAgent: overrides the User-Agent sent on API calls. Logins always
	// use the legacy browser identity the portal expects.
	UserAgent string
	// HTTPTimeout: per-request timeout. Zero keeps the HTTPClient timeout,
	// which is none by default.
	HTTPTimeout time.Duration
	// HTTPClient: optional base HTTP client. Its redirect policy is replaced
	// so that login redirects and expired-session redirects are observed.
	HTTPClient *http.Client
}
