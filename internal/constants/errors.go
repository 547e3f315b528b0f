package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoHostConfigured     = errors.New("no portal host configured, use 'ent config set host <host>' or --host")
	ErrNoUsernameConfigured = errors.New("no username configured, use 'ent config set username <name>' or --username")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
	ErrUnknownDocType       = errors.New("no documentation for type")
)

// CLI input errors.
var (
	ErrNoPasswordConfigured = errors.New("no password available, set ENT_PASSWORD or run from a terminal")
	ErrAppNotFound          = errors.New("app not found")
)
