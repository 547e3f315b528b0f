package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

// FetchLanguage implements ent.PreferencesClient.FetchLanguage. It returns
// an empty string when the account never chose a language.
func (c *Client) FetchLanguage(ctx context.Context) (string, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathLanguage, nil)
	if err != nil {
		return "", fmt.Errorf("getting language: %w", err)
	}

	if resp.Body == nil {
		return "", nil
	}

	var envelope struct {
		Preference json.RawMessage `json:"preference"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", fmt.Errorf("parsing language preference: %w", err)
	}

	preference, err := unwrapPreference(envelope.Preference)
	if err != nil {
		return "", fmt.Errorf("parsing language preference: %w", err)
	}

	if preference == nil {
		return "", nil
	}

	var language struct {
		DefaultDomain string `json:"default-domain"`
	}

	err = json.Unmarshal(preference, &language)
	if err != nil {
		return "", fmt.Errorf("parsing language preference: %w", err)
	}

	return language.DefaultDomain, nil
}
