package ent

import (
	"context"
	"fmt"
	"strings"
)

// App is an application of the portal catalog.
type App struct {
	Name        string   `json:"name"                yaml:"name"`
	Address     string   `json:"address"             yaml:"address"`
	Icon        string   `json:"icon"                yaml:"icon"`
	Target      string   `json:"target"              yaml:"target"`
	DisplayName string   `json:"displayName"         yaml:"displayName"`
	Display     bool     `json:"display"             yaml:"display"`
	Prefix      string   `json:"prefix,omitempty"    yaml:"prefix,omitempty"`
	CasType     string   `json:"casType,omitempty"   yaml:"casType,omitempty"`
	Scope       []string `json:"scope"               yaml:"scope"`
	IsExternal  bool     `json:"isExternal"          yaml:"isExternal"`

	session Session
}

// NewApp returns an empty App bound to session, ready to be decoded into.
func NewApp(session Session) *App {
	return &App{session: session}
}

// Summary returns the identifier the portal uses in bookmark lists.
func (a *App) Summary() string {
	return a.Name
}

// FullAddress resolves the app address against the session base URL when
// it is relative to the portal.
func (a *App) FullAddress() string {
	if strings.HasPrefix(a.Address, "/") {
		return a.session.BaseURL() + a.Address[1:]
	}

	return a.Address
}

// Pin adds this app to the pinned set.
func (a *App) Pin(ctx context.Context) error {
	pinned, err := a.session.FetchPinnedApps(ctx)
	if err != nil {
		return fmt.Errorf("pinning app %s: %w", a.Name, err)
	}

	for _, app := range pinned {
		if app.Name == a.Name {
			return nil
		}
	}

	err = a.session.PinApps(ctx, append(pinned, a))
	if err != nil {
		return fmt.Errorf("pinning app %s: %w", a.Name, err)
	}

	return nil
}

// Unpin removes this app from the pinned set.
func (a *App) Unpin(ctx context.Context) error {
	pinned, err := a.session.FetchPinnedApps(ctx)
	if err != nil {
		return fmt.Errorf("unpinning app %s: %w", a.Name, err)
	}

	remaining := make([]*App, 0, len(pinned))

	for _, app := range pinned {
		if app.Name != a.Name {
			remaining = append(remaining, app)
		}
	}

	if len(remaining) == len(pinned) {
		return nil
	}

	err = a.session.PinApps(ctx, remaining)
	if err != nil {
		return fmt.Errorf("unpinning app %s: %w", a.Name, err)
	}

	return nil
}
