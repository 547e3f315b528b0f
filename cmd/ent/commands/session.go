package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
	"github.com/fivetwenty-io/ent-client/pkg/entclient"
)

// SlogLogger adapts a slog.Logger to ent.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a text logger writing to out at level and above.
func NewSlogLogger(out io.Writer, level slog.Level) *SlogLogger {
	return &SlogLogger{
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})),
	}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *SlogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(fields))
	for key, value := range fields {
		attrs = append(attrs, slog.Any(key, value))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// sessionConfig builds the session configuration from flags, ENT_
// variables and the config file. The password comes from ENT_PASSWORD or
// an interactive prompt.
func sessionConfig() (*ent.Config, error) {
	host := viper.GetString("host")
	if host == "" {
		return nil, constants.ErrNoHostConfigured
	}

	username := viper.GetString("username")
	if username == "" {
		return nil, constants.ErrNoUsernameConfigured
	}

	password := viper.GetString("password")
	if password == "" {
		prompted, err := promptPassword()
		if err != nil {
			return nil, err
		}

		password = prompted
	}

	config := &ent.Config{
		Host:        host,
		AuthURL:     viper.GetString("auth_url"),
		Username:    username,
		Password:    password,
		HTTPTimeout: viper.GetDuration("timeout"),
	}

	if viper.GetBool("verbose") {
		config.Logger = NewSlogLogger(os.Stderr, slog.LevelDebug)
		config.Debug = true
	}

	return config, nil
}

func promptPassword() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", constants.ErrNoPasswordConfigured
	}

	_, _ = fmt.Fprint(os.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(bytePassword), nil
}

// sessionFactory creates the session a portal command runs against.
type sessionFactory func() (ent.Session, error)

// newSession is the sessionFactory of the ent binary.
func newSession() (ent.Session, error) {
	config, err := sessionConfig()
	if err != nil {
		return nil, err
	}

	return entclient.New(config)
}
