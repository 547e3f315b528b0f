package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

var testCatalog = map[string]interface{}{
	"apps": []map[string]interface{}{
		{"name": "mail", "address": "/zimbra/zimbra", "displayName": "Messagerie", "display": true, "scope": []string{}},
		{"name": "notes", "address": "https://notes.example.org", "displayName": "Notes", "isExternal": true},
		{"name": "blog", "address": "/blog", "displayName": "Blog", "prefix": "/blog"},
	},
}

func TestClient_FetchAppsIsMemoized(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.respond("/"+constants.PathApplicationList, testCatalog)

	client := portal.client()

	first, err := client.FetchApps(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := client.FetchApps(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, portal.callCount("/"+constants.PathApplicationList))
	assert.Same(t, first[0], second[0])

	assert.Equal(t, "mail", first[0].Name)
	assert.Equal(t, portal.server.URL+"/zimbra/zimbra", first[0].FullAddress())
	assert.Equal(t, "https://notes.example.org", first[1].FullAddress())
	assert.True(t, first[1].IsExternal)
	assert.Equal(t, "/blog", first[2].Prefix)
}

func TestClient_FetchAppsFailureIsNotCached(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)

	var calls atomic.Int32

	portal.handle("/"+constants.PathApplicationList, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		writeJSON(w, testCatalog)
	})

	client := portal.client()

	_, err := client.FetchApps(context.Background())
	require.Error(t, err)

	apps, err := client.FetchApps(context.Background())
	require.NoError(t, err)
	assert.Len(t, apps, 3)
}

func TestClient_FetchPinnedApps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		preference interface{}
		want       []string
	}{
		{
			name:       "nested string",
			preference: map[string]interface{}{"preference": `{"bookmarks":["blog","ghost","mail"],"applications":["notes"]}`},
			want:       []string{"mail", "blog"},
		},
		{
			name:       "object",
			preference: map[string]interface{}{"preference": map[string]interface{}{"bookmarks": []string{"notes"}}},
			want:       []string{"notes"},
		},
		{
			name:       "top-level bookmarks",
			preference: map[string]interface{}{"bookmarks": []string{"mail"}},
			want:       []string{"mail"},
		},
		{
			name:       "never set",
			preference: map[string]interface{}{"preference": nil},
			want:       []string{},
		},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			portal := newFakePortal(t)
			portal.respond("/"+constants.PathApplicationList, testCatalog)
			portal.respond("/"+constants.PathAppsPreference, testCase.preference)

			pinned, err := portal.client().FetchPinnedApps(context.Background())
			require.NoError(t, err)

			names := make([]string, 0, len(pinned))
			for _, app := range pinned {
				names = append(names, app.Name)
			}

			assert.Equal(t, testCase.want, names)
		})
	}
}

func TestClient_PinApps(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.respond("/"+constants.PathApplicationList, testCatalog)

	var (
		mu   sync.Mutex
		sent string
	)

	lastSent := func() string {
		mu.Lock()
		defer mu.Unlock()

		return sent
	}

	portal.handle("/"+constants.PathAppsPreference, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		mu.Lock()
		sent = string(data)
		mu.Unlock()

		writeJSON(w, map[string]interface{}{})
	})

	client := portal.client()

	apps, err := client.FetchApps(context.Background())
	require.NoError(t, err)

	require.NoError(t, client.PinApps(context.Background(), apps[:1]))
	assert.JSONEq(t, `{"bookmarks":["mail"],"applications":["notes","blog"]}`, lastSent())

	require.NoError(t, client.PinApps(context.Background(), nil))
	assert.JSONEq(t, `{"bookmarks":[],"applications":["mail","notes","blog"]}`, lastSent())
}

func TestApp_PinAndUnpin(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.respond("/"+constants.PathApplicationList, testCatalog)

	var mu sync.Mutex

	bookmarks := []string{"mail"}
	currentBookmarks := func() []string {
		mu.Lock()
		defer mu.Unlock()

		return bookmarks
	}

	portal.handle("/"+constants.PathAppsPreference, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var partition appsPartition

			assert.NoError(t, json.NewDecoder(r.Body).Decode(&partition))

			mu.Lock()
			bookmarks = partition.Bookmarks
			mu.Unlock()

			writeJSON(w, map[string]interface{}{})

			return
		}

		preference, err := json.Marshal(appsPartition{Bookmarks: currentBookmarks(), Applications: []string{}})
		assert.NoError(t, err)

		writeJSON(w, map[string]interface{}{"preference": string(preference)})
	})

	client := portal.client()

	apps, err := client.FetchApps(context.Background())
	require.NoError(t, err)

	blog := apps[2]

	require.NoError(t, blog.Pin(context.Background()))
	assert.Equal(t, []string{"mail", "blog"}, currentBookmarks())

	// Pinning twice changes nothing.
	require.NoError(t, blog.Pin(context.Background()))
	assert.Equal(t, []string{"mail", "blog"}, currentBookmarks())

	require.NoError(t, apps[0].Unpin(context.Background()))
	assert.Equal(t, []string{"blog"}, currentBookmarks())
}
