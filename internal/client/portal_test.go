package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

const (
	testUsername = "jean.dupont"
	testPassword = "s3cret!"
	testSession  = "session-1"
	testXSRF     = "xsrf-1"
)

// fakePortal serves the login form and the API from one test server.
type fakePortal struct {
	t      *testing.T
	server *httptest.Server
	mux    *http.ServeMux

	logins    atomic.Int32
	loginCode atomic.Int32

	mu    sync.Mutex
	calls map[string]int
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()

	portal := &fakePortal{
		t:     t,
		mux:   http.NewServeMux(),
		calls: map[string]int{},
	}

	portal.loginCode.Store(http.StatusFound)

	portal.mux.HandleFunc(constants.AuthLoginPath, portal.login)
	portal.server = httptest.NewServer(portal.mux)
	t.Cleanup(portal.server.Close)

	return portal
}

func (p *fakePortal) login(w http.ResponseWriter, r *http.Request) {
	p.logins.Add(1)

	assert.Equal(p.t, http.MethodPost, r.Method)
	assert.Equal(p.t, constants.LegacyUserAgent, r.Header.Get("User-Agent"))
	assert.Equal(p.t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
	assert.NoError(p.t, r.ParseForm())
	assert.Equal(p.t, testUsername, r.PostForm.Get("email"))
	assert.Equal(p.t, testPassword, r.PostForm.Get("password"))

	if code := int(p.loginCode.Load()); code != http.StatusFound {
		w.WriteHeader(code)
		_, _ = io.WriteString(w, "<html>login</html>")

		return
	}

	http.SetCookie(w, &http.Cookie{Name: constants.SessionCookieName, Value: testSession, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: constants.XSRFCookieName, Value: testXSRF, Path: "/"})
	w.Header().Set("Location", constants.LoginCallbackURL)
	w.WriteHeader(http.StatusFound)
}

// handle registers an API handler that checks the session headers and
// counts calls to pattern.
func (p *fakePortal) handle(pattern string, handler http.HandlerFunc) {
	p.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls[pattern]++
		p.mu.Unlock()

		cookie, err := r.Cookie(constants.SessionCookieName)
		if assert.NoError(p.t, err) {
			assert.Equal(p.t, testSession, cookie.Value)
		}

		assert.Equal(p.t, testXSRF, r.Header.Get(constants.XSRFHeaderName))

		handler(w, r)
	})
}

// respond registers a handler answering pattern with body as JSON.
func (p *fakePortal) respond(pattern string, body interface{}) {
	p.handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, body)
	})
}

func (p *fakePortal) callCount(pattern string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls[pattern]
}

func (p *fakePortal) client() *Client {
	p.t.Helper()

	client, err := New(&ent.Config{
		Host:     p.server.URL,
		AuthURL:  p.server.URL,
		Username: testUsername,
		Password: testPassword,
	})
	require.NoError(p.t, err)

	return client
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

	return body
}
