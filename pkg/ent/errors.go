package ent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrInvalidFolder        = fmt.Errorf("%w: folder must be one of Inbox, Sent, Drafts, Trash", ErrInvalidArgument)
	ErrNoDestination        = fmt.Errorf("%w: No destination specified", ErrInvalidArgument)
	ErrNilQuery             = fmt.Errorf("%w: search query is required", ErrInvalidArgument)
	ErrConfigRequired       = errors.New("config is required")
	ErrHostRequired         = errors.New("portal host is required")
	ErrCredentialsRequired  = errors.New("username and password are required")
	ErrUserNotFound         = errors.New("user not found")
	ErrMissingMessageID     = errors.New("response carries no message id")
	ErrInvalidBirthDate     = errors.New("invalid birth date")
	ErrInvalidJSON          = errors.New("response is not valid JSON")
)

// AuthError reports a failed login handshake.
type AuthError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s (status: %d)", ErrAuthenticationFailed, e.Reason, e.StatusCode)
}

// Unwrap lets errors.Is match ErrAuthenticationFailed.
func (e *AuthError) Unwrap() error {
	return ErrAuthenticationFailed
}

// APIError represents an error returned by the portal.
//
// Payload holds the decoded error description when the portal sent a
// JSON-encoded error, otherwise the raw error string.
type APIError struct {
	StatusCode int
	Payload    interface{}
	Raw        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("portal error: %s (status: %d)", e.Raw, e.StatusCode)
	}

	return "portal error: " + e.Raw
}

// Message returns the human readable part of the payload when the portal
// sent a structured error, or the raw error otherwise.
func (e *APIError) Message() string {
	if fields, ok := e.Payload.(map[string]interface{}); ok {
		for _, key := range []string{"message", "error", "error_description"} {
			if msg, ok := fields[key].(string); ok && msg != "" {
				return msg
			}
		}
	}

	return e.Raw
}

// ParseEnvelope inspects a decoded response for the portal's "error" field.
// It returns nil when the payload carries no error, including for array
// payloads and payloads that are not JSON objects.
func ParseEnvelope(data []byte) *APIError {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}

	err := json.Unmarshal(trimmed, &envelope)
	if err != nil || isEmptyJSON(envelope.Error) {
		return nil
	}

	var message string

	err = json.Unmarshal(envelope.Error, &message)
	if err != nil {
		// Structured error object sent as-is.
		var payload interface{}

		_ = json.Unmarshal(envelope.Error, &payload)

		return &APIError{Payload: payload, Raw: string(envelope.Error)}
	}

	// Some endpoints send a JSON document encoded as a string.
	var payload interface{}

	err = json.Unmarshal([]byte(message), &payload)
	if err != nil {
		return &APIError{Payload: message, Raw: message}
	}

	return &APIError{Payload: payload, Raw: message}
}

// isEmptyJSON reports values the portal uses for "no error".
func isEmptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", `""`, "0":
		return true
	default:
		return false
	}
}

// IsUnauthorized checks if the error means the session is no longer
// accepted by the portal, which is how an expired cookie shows up.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
			return true
		}
	}

	return errors.Is(err, ErrAuthenticationFailed)
}

// IsInvalidArgument checks if the error is a local precondition failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
