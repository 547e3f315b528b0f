package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// fakeSession records what the commands ask of the portal. Methods the
// commands never reach fall through to the nil embedded Session.
type fakeSession struct {
	ent.Session

	authenticated bool
	folder        ent.Folder
	page          int
	messages      []*ent.Message
	fetchedIDs    []string
	parsed        []bool
	sent          []*ent.MessageConfig
	replies       []string
	trashed       []string
	users         map[string]*ent.User
	queries       []*ent.SearchQuery
	previews      []*ent.UserPreview
	apps          []*ent.App
	pinned        []*ent.App
	pinnedSets    [][]*ent.App
	outgoing      []*ent.OutgoingMessage
}

func newFakeSession() *fakeSession {
	return &fakeSession{users: map[string]*ent.User{}}
}

func (s *fakeSession) factory() sessionFactory {
	return func() (ent.Session, error) {
		return s, nil
	}
}

func (s *fakeSession) BaseURL() string {
	return "https://ent.iledefrance.fr/"
}

func (s *fakeSession) Authenticate(context.Context) error {
	s.authenticated = true

	return nil
}

func (s *fakeSession) AvatarURL(id string) string {
	return s.BaseURL() + "userbook/avatar/" + id
}

func (s *fakeSession) FetchMessages(_ context.Context, folder ent.Folder, page int) ([]*ent.Message, error) {
	s.folder = folder
	s.page = page

	return s.messages, nil
}

func (s *fakeSession) FetchMessage(_ context.Context, id string, parse bool) (*ent.Message, error) {
	s.fetchedIDs = append(s.fetchedIDs, id)
	s.parsed = append(s.parsed, parse)

	for _, message := range s.messages {
		if message.ID == id {
			return message, nil
		}
	}

	return nil, &ent.APIError{StatusCode: 404}
}

func (s *fakeSession) SendMessage(_ context.Context, config *ent.MessageConfig) (string, error) {
	s.sent = append(s.sent, config)

	return "sent-1", nil
}

func (s *fakeSession) ReplyMessage(_ context.Context, original *ent.Message, config *ent.MessageConfig) (string, error) {
	s.replies = append(s.replies, original.ID)
	s.sent = append(s.sent, config)

	return "reply-1", nil
}

func (s *fakeSession) SendOutgoing(_ context.Context, message *ent.OutgoingMessage, _ string) (string, error) {
	s.outgoing = append(s.outgoing, message)

	return "sent-2", nil
}

func (s *fakeSession) TrashMessage(_ context.Context, id string) error {
	s.trashed = append(s.trashed, id)

	return nil
}

func (s *fakeSession) FetchUser(_ context.Context, id string) (*ent.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ent.ErrUserNotFound
	}

	return user, nil
}

func (s *fakeSession) SearchUsers(_ context.Context, query *ent.SearchQuery) ([]*ent.UserPreview, error) {
	s.queries = append(s.queries, query)

	return s.previews, nil
}

func (s *fakeSession) FetchApps(context.Context) ([]*ent.App, error) {
	return s.apps, nil
}

func (s *fakeSession) FetchPinnedApps(context.Context) ([]*ent.App, error) {
	return append([]*ent.App(nil), s.pinned...), nil
}

func (s *fakeSession) PinApps(_ context.Context, apps []*ent.App) error {
	s.pinnedSets = append(s.pinnedSets, apps)
	s.pinned = apps

	return nil
}

func (s *fakeSession) FetchLanguage(context.Context) (string, error) {
	return "fr", nil
}

func (s *fakeSession) newApp(name, displayName string) *ent.App {
	app := ent.NewApp(s)
	app.Name = name
	app.DisplayName = displayName
	app.Address = "/" + name

	return app
}

// execute runs cmd with args and returns what it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(t *testing.T, cmd *cobra.Command, name string) *cobra.Command {
	t.Helper()

	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	require.Failf(t, "subcommand not found", "%s has no %s subcommand", cmd.Name(), name)

	return nil
}
