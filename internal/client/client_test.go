package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *ent.Config
		wantErr error
	}{
		{name: "nil config", config: nil, wantErr: ent.ErrConfigRequired},
		{name: "missing host", config: &ent.Config{Username: "u", Password: "p"}, wantErr: ent.ErrHostRequired},
		{name: "missing username", config: &ent.Config{Host: "ent.example.fr", Password: "p"}, wantErr: ent.ErrCredentialsRequired},
		{name: "missing password", config: &ent.Config{Host: "ent.example.fr", Username: "u"}, wantErr: ent.ErrCredentialsRequired},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(testCase.config)
			require.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, client)
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want string
	}{
		{host: "ent.iledefrance.fr", want: "https://ent.iledefrance.fr/"},
		{host: "https://ent.iledefrance.fr", want: "https://ent.iledefrance.fr/"},
		{host: "https://ent.iledefrance.fr/", want: "https://ent.iledefrance.fr/"},
		{host: "http://127.0.0.1:8080", want: "http://127.0.0.1:8080/"},
		{host: " monlycee.net ", want: "https://monlycee.net/"},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.host, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, NormalizeHost(testCase.host))
		})
	}
}

func TestClient_LazyLogin(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.respond("/"+constants.PathLanguage, map[string]interface{}{
		"preference": `{"default-domain":"fr"}`,
	})

	client := portal.client()
	assert.Equal(t, int32(0), portal.logins.Load())
	assert.False(t, client.Authenticated())

	for i := 0; i < 3; i++ {
		language, err := client.FetchLanguage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fr", language)
	}

	assert.Equal(t, int32(1), portal.logins.Load())
	assert.Equal(t, 3, portal.callCount("/"+constants.PathLanguage))
	assert.True(t, client.Authenticated())
}

func TestClient_ConcurrentFirstCallsShareOneLogin(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.respond("/"+constants.PathLanguage, map[string]interface{}{
		"preference": `{"default-domain":"fr"}`,
	})

	client := portal.client()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := client.FetchLanguage(context.Background())
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), portal.logins.Load())
	assert.Equal(t, 10, portal.callCount("/"+constants.PathLanguage))
}

func TestClient_Authenticate(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	client := portal.client()

	require.NoError(t, client.Authenticate(context.Background()))
	require.NoError(t, client.Authenticate(context.Background()))

	assert.Equal(t, int32(1), portal.logins.Load())
	assert.True(t, client.Authenticated())
}

func TestClient_LoginFailure(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.loginCode.Store(http.StatusOK)
	portal.respond("/"+constants.PathLanguage, map[string]interface{}{"preference": nil})

	client := portal.client()

	_, err := client.FetchLanguage(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ent.ErrAuthenticationFailed)
	assert.True(t, ent.IsUnauthorized(err))

	var authErr *ent.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusOK, authErr.StatusCode)

	// A failed login leaves the session unauthenticated, so the next call
	// tries again.
	_, err = client.FetchLanguage(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(2), portal.logins.Load())
	assert.Equal(t, 0, portal.callCount("/"+constants.PathLanguage))
	assert.False(t, client.Authenticated())
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.handle("/custom/endpoint", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, map[string]interface{}{"key": "value"}, decodeBody(t, r))

		writeJSON(w, []interface{}{1, 2, 3})
	})

	client := portal.client()

	data, err := client.Fetch(context.Background(), "custom/endpoint?page=1", map[string]string{"key": "value"}, http.MethodPost)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(data))
}

func TestClient_FetchErrorEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        interface{}
		wantMessage string
	}{
		{
			name:        "nested json error",
			body:        map[string]interface{}{"error": `{"message":"access denied"}`},
			wantMessage: "access denied",
		},
		{
			name:        "plain error string",
			body:        map[string]interface{}{"error": "zimbra.error.unknown"},
			wantMessage: "zimbra.error.unknown",
		},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			portal := newFakePortal(t)
			portal.respond("/failing", testCase.body)

			client := portal.client()

			_, err := client.Fetch(context.Background(), "failing", nil, "")
			require.Error(t, err)

			var apiErr *ent.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusOK, apiErr.StatusCode)
			assert.Equal(t, testCase.wantMessage, apiErr.Message())
		})
	}
}

func TestClient_ExpiredSessionIsUnauthorized(t *testing.T) {
	t.Parallel()

	portal := newFakePortal(t)
	portal.handle("/"+constants.PathLanguage, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
	})

	client := portal.client()

	_, err := client.FetchLanguage(context.Background())
	require.Error(t, err)
	assert.True(t, ent.IsUnauthorized(err))
	assert.False(t, errors.Is(err, ent.ErrInvalidJSON))
}

func TestClient_FetchLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{name: "nested string", body: map[string]interface{}{"preference": `{"default-domain":"fr"}`}, want: "fr"},
		{name: "object", body: map[string]interface{}{"preference": map[string]string{"default-domain": "en"}}, want: "en"},
		{name: "never set", body: map[string]interface{}{"preference": nil}, want: ""},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			portal := newFakePortal(t)
			portal.respond("/"+constants.PathLanguage, testCase.body)

			language, err := portal.client().FetchLanguage(context.Background())
			require.NoError(t, err)
			assert.Equal(t, testCase.want, language)
		})
	}
}

func TestClient_AvatarURL(t *testing.T) {
	t.Parallel()

	client, err := New(&ent.Config{Host: "ent.iledefrance.fr", Username: "u", Password: "p"})
	require.NoError(t, err)

	assert.Equal(t, "https://ent.iledefrance.fr/", client.BaseURL())
	assert.Equal(t,
		"https://ent.iledefrance.fr/userbook/avatar/user-1?thumbnail=381x381",
		client.AvatarURL("user-1"))
}
