package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/pasogott/gurkerlcli/internal/session"
	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
)

func TestManagerLoginPersistsSession(t *testing.T) {
	keyring.MockInit()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := session.NewStore(t.TempDir())
	mgr := NewManager(gurkerl.NewClient(gurkerl.WithBaseURL(server.URL)), store)

	before := time.Now()
	sess, err := mgr.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Equal(t, "abc", sess.Cookies["session"])
	assert.Equal(t, "user@example.com", sess.UserEmail)
	require.NotNil(t, sess.ExpiresAt)
	assert.WithinDuration(t, before.Add(session.DefaultTTL), *sess.ExpiresAt, time.Minute)

	// Session hit the disk and survives a reload.
	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.Cookies, loaded.Cookies)

	// Password landed in the secret store for future logins.
	password, err := keyring.Get(KeyringService, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)
	assert.True(t, mgr.Authenticated())
}

func TestManagerLoginFailureLeavesNoSession(t *testing.T) {
	keyring.MockInit()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewStore(t.TempDir())
	mgr := NewManager(gurkerl.NewClient(gurkerl.WithBaseURL(server.URL)), store)

	_, err := mgr.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.False(t, mgr.Authenticated())
}

func TestManagerLogoutClearsSession(t *testing.T) {
	store := session.NewStore(t.TempDir())
	require.NoError(t, store.Save(session.New(map[string]string{"session": "abc"}, "user@example.com", time.Now())))

	mgr := NewManager(gurkerl.NewClient(), store)
	require.NoError(t, mgr.Logout())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Logout stays idempotent.
	require.NoError(t, mgr.Logout())
}

func TestKeyringResolverRoundTrip(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(KeyringService, "user@example.com", "hunter2"))

	r := KeyringResolver{Service: KeyringService}
	password, ok := r.Resolve("user@example.com")
	require.True(t, ok)
	assert.Equal(t, "hunter2", password)

	_, ok = r.Resolve("stranger@example.com")
	assert.False(t, ok)
}
