package entclient

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ent-client/internal/client"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// New creates a session for config. The host is normalized to
// "https://host/" and the login is deferred to the first request.
func New(config *ent.Config) (ent.Session, error) {
	session, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new session: %w", err)
	}

	return session, nil
}

// NewWithPassword creates a session for a portal host using username/password authentication.
func NewWithPassword(host, username, password string) (ent.Session, error) {
	return New(&ent.Config{
		Host:     host,
		Username: username,
		Password: password,
	})
}

// Login creates a session and logs in immediately, so that bad credentials
// are reported before the first operation.
func Login(ctx context.Context, config *ent.Config) (ent.Session, error) {
	session, err := New(config)
	if err != nil {
		return nil, err
	}

	err = session.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	return session, nil
}
