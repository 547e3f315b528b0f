package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// appsPartition is the apps preference document: every catalog name is
// either bookmarked or not.
type appsPartition struct {
	Bookmarks    []string `json:"bookmarks"`
	Applications []string `json:"applications"`
}

// FetchApps implements ent.AppsClient.FetchApps. The catalog is fetched at
// most once per session; later calls return the same slice.
func (c *Client) FetchApps(ctx context.Context) ([]*ent.App, error) {
	c.appsMu.Lock()
	defer c.appsMu.Unlock()

	if c.apps != nil {
		return c.apps, nil
	}

	resp, err := c.httpClient.Get(ctx, constants.PathApplicationList, nil)
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}

	var payload struct {
		Apps []json.RawMessage `json:"apps"`
	}

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, &payload)
		if err != nil {
			return nil, fmt.Errorf("parsing apps list: %w", err)
		}
	}

	apps, err := c.decodeApps(payload.Apps)
	if err != nil {
		return nil, fmt.Errorf("parsing apps list: %w", err)
	}

	c.apps = apps

	return apps, nil
}

// FetchPinnedApps implements ent.AppsClient.FetchPinnedApps. Bookmarked
// names missing from the catalog are dropped.
func (c *Client) FetchPinnedApps(ctx context.Context) ([]*ent.App, error) {
	catalog, err := c.FetchApps(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, constants.PathAppsPreference, nil)
	if err != nil {
		return nil, fmt.Errorf("getting pinned apps: %w", err)
	}

	bookmarks, err := parseBookmarks(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing pinned apps: %w", err)
	}

	pinned := make(map[string]bool, len(bookmarks))
	for _, name := range bookmarks {
		pinned[name] = true
	}

	apps := make([]*ent.App, 0, len(bookmarks))

	for _, app := range catalog {
		if pinned[app.Summary()] {
			apps = append(apps, app)
		}
	}

	return apps, nil
}

// PinApps implements ent.AppsClient.PinApps. The whole catalog is sent
// back, split between apps and the rest, replacing the remote set.
func (c *Client) PinApps(ctx context.Context, apps []*ent.App) error {
	catalog, err := c.FetchApps(ctx)
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(apps))
	for _, app := range apps {
		selected[app.Summary()] = true
	}

	partition := appsPartition{
		Bookmarks:    []string{},
		Applications: []string{},
	}

	for _, app := range catalog {
		if selected[app.Summary()] {
			partition.Bookmarks = append(partition.Bookmarks, app.Summary())
		} else {
			partition.Applications = append(partition.Applications, app.Summary())
		}
	}

	_, err = c.httpClient.Put(ctx, constants.PathAppsPreference, partition)
	if err != nil {
		return fmt.Errorf("updating pinned apps: %w", err)
	}

	return nil
}

func (c *Client) decodeApps(items []json.RawMessage) ([]*ent.App, error) {
	apps := make([]*ent.App, 0, len(items))

	for _, item := range items {
		app := ent.NewApp(c)

		err := json.Unmarshal(item, app)
		if err != nil {
			return nil, err
		}

		apps = append(apps, app)
	}

	return apps, nil
}

// parseBookmarks reads the bookmark list out of the apps preference. The
// preference is usually a JSON document encoded as a string, sometimes a
// plain object; an account that never pinned anything has none.
func parseBookmarks(data json.RawMessage) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var envelope struct {
		Preference json.RawMessage `json:"preference"`
		Bookmarks  []string        `json:"bookmarks"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, err
	}

	preference, err := unwrapPreference(envelope.Preference)
	if err != nil {
		return nil, err
	}

	if preference == nil {
		return envelope.Bookmarks, nil
	}

	var partition appsPartition

	err = json.Unmarshal(preference, &partition)
	if err != nil {
		return nil, err
	}

	return partition.Bookmarks, nil
}

// unwrapPreference returns the preference document, decoding it first when
// it was sent as a string. It returns nil for an absent preference.
func unwrapPreference(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] != '"' {
		return raw, nil
	}

	var nested string

	err := json.Unmarshal(raw, &nested)
	if err != nil {
		return nil, err
	}

	if nested == "" || nested == "null" {
		return nil, nil
	}

	return json.RawMessage(nested), nil
}
