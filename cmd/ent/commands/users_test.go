package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

func TestUsersSearchCommand(t *testing.T) {
	t.Parallel()

	session := newFakeSession()
	preview := ent.NewUserPreview(session)
	preview.ID = "u1"
	preview.DisplayName = "Marie Curie"
	preview.Profile = "Teacher"
	session.previews = []*ent.UserPreview{preview}

	out, err := execute(t, newUsersSearchCommand(session.factory()), "curie", "--profile", "Teacher", "--class", "c1,c2")
	require.NoError(t, err)

	require.Len(t, session.queries, 1)
	assert.Equal(t, &ent.SearchQuery{
		Search:   "curie",
		Profiles: []string{"Teacher"},
		Classes:  []string{"c1", "c2"},
	}, session.queries[0])
	assert.Contains(t, out, "Marie Curie")
}

func TestUsersSearchCommand_NoResult(t *testing.T) {
	t.Parallel()

	session := newFakeSession()

	out, err := execute(t, newUsersSearchCommand(session.factory()))
	require.NoError(t, err)
	assert.Equal(t, "No users found\n", out)
	assert.Empty(t, session.queries[0].Search)
}

func TestUsersShowCommand(t *testing.T) {
	t.Parallel()

	session := newFakeSession()
	user := ent.NewUser(session)
	user.ID = "u1"
	user.DisplayName = "Marie Curie"
	user.Schools = []ent.School{{Name: "Lycée Pasteur"}}
	session.users["u1"] = user

	out, err := execute(t, newUsersShowCommand(session.factory()), "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Marie Curie")
	assert.Contains(t, out, "Lycée Pasteur")
	assert.Contains(t, out, "https://ent.iledefrance.fr/userbook/avatar/u1")

	_, err = execute(t, newUsersShowCommand(session.factory()), "u9")
	require.ErrorIs(t, err, ent.ErrUserNotFound)
}

func TestUsersMessageCommand(t *testing.T) {
	t.Parallel()

	session := newFakeSession()
	user := ent.NewUser(session)
	user.ID = "u1"
	user.DisplayName = "Marie Curie"
	session.users["u1"] = user

	out, err := execute(t, newUsersMessageCommand(session.factory()), "u1", "--cc", "u2", "--subject", "Sortie")
	require.NoError(t, err)
	assert.Equal(t, "Message sent to Marie Curie: sent-2\n", out)

	require.Len(t, session.outgoing, 1)
	assert.Equal(t, []string{"u1"}, session.outgoing[0].To)
	assert.Equal(t, []string{"u2"}, session.outgoing[0].Cc)
	assert.Equal(t, "Sortie", session.outgoing[0].Subject)
}
