package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// userInfoPayload is the identity document as the portal sends it.
type userInfoPayload struct {
	ent.UserInfo

	BirthDate string            `json:"birthDate"`
	Apps      []json.RawMessage `json:"apps"`
}

// FetchUserInfo implements ent.UsersClient.FetchUserInfo.
func (c *Client) FetchUserInfo(ctx context.Context) (*ent.UserInfo, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathUserInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user info: %w", err)
	}

	var payload userInfoPayload

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, &payload)
		if err != nil {
			return nil, fmt.Errorf("parsing user info: %w", err)
		}
	}

	info := payload.UserInfo

	if payload.BirthDate != "" {
		info.BirthDate, err = ent.ParseBirthDate(payload.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("parsing user info: %w", err)
		}
	}

	info.Apps, err = c.decodeApps(payload.Apps)
	if err != nil {
		return nil, fmt.Errorf("parsing user info apps: %w", err)
	}

	return &info, nil
}

// FetchUser implements ent.UsersClient.FetchUser.
func (c *Client) FetchUser(ctx context.Context, id string) (*ent.User, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathPerson, url.Values{"id": {id}})
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	var payload struct {
		Result []json.RawMessage `json:"result"`
	}

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, &payload)
		if err != nil {
			return nil, fmt.Errorf("parsing user: %w", err)
		}
	}

	if len(payload.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ent.ErrUserNotFound, id)
	}

	user := ent.NewUser(c)

	err = json.Unmarshal(payload.Result[0], user)
	if err != nil {
		return nil, fmt.Errorf("parsing user: %w", err)
	}

	return user, nil
}

// SearchUsers implements ent.UsersClient.SearchUsers.
func (c *Client) SearchUsers(ctx context.Context, query *ent.SearchQuery) ([]*ent.UserPreview, error) {
	if query == nil {
		return nil, ent.ErrNilQuery
	}

	resp, err := c.httpClient.Post(ctx, constants.PathVisibleSearch, query.Normalized())
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	var payload struct {
		Users []json.RawMessage `json:"users"`
	}

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, &payload)
		if err != nil {
			return nil, fmt.Errorf("parsing user search: %w", err)
		}
	}

	users := make([]*ent.UserPreview, 0, len(payload.Users))

	for _, item := range payload.Users {
		user := ent.NewUserPreview(c)

		err = json.Unmarshal(item, user)
		if err != nil {
			return nil, fmt.Errorf("parsing user search: %w", err)
		}

		users = append(users, user)
	}

	return users, nil
}

// AvatarURL implements ent.UsersClient.AvatarURL.
func (c *Client) AvatarURL(id string) string {
	return c.baseURL + constants.PathAvatar + url.PathEscape(id) + "?thumbnail=" + constants.AvatarThumbnail
}
