//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/fivetwenty-io/ent-client/pkg/ent"
	"github.com/fivetwenty-io/ent-client/pkg/entclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Host     string
	Username string
	Password string
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Host:     os.Getenv("ENT_URL"),
		Username: os.Getenv("ENT_USERNAME"),
		Password: os.Getenv("ENT_PASSWORD"),
	}
}

// SkipIfMissingConfig skips the test unless a real account is configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Host == "" || config.Username == "" || config.Password == "" {
		t.Skip("ENT_URL, ENT_USERNAME or ENT_PASSWORD not set, skipping integration test")
	}
}

// NewSession creates a session for the configured account.
func (config *TestConfig) NewSession(t *testing.T) ent.Session {
	t.Helper()

	session, err := entclient.New(&ent.Config{
		Host:     config.Host,
		Username: config.Username,
		Password: config.Password,
	})
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	return session
}
