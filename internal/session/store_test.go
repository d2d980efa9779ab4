package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := NewStore(t.TempDir())

	created := time.Now().Truncate(time.Second)
	expires := created.Add(DefaultTTL)
	want := &Session{
		Cookies:   map[string]string{"session": "abc", "PHPSESSION": "xyz"},
		UserEmail: "user@example.com",
		CreatedAt: created,
		ExpiresAt: &expires,
	}

	require.NoError(t, st.Save(want))

	got, err := st.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.Cookies, got.Cookies)
	require.Equal(t, want.UserEmail, got.UserEmail)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.ExpiresAt)
	require.True(t, expires.Equal(*got.ExpiresAt))
}

func TestLoadMissingFileYieldsAbsent(t *testing.T) {
	st := NewStore(t.TempDir())

	got, err := st.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLoadMalformedFileYieldsAbsent(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	got, err := st.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLoadExpiredSessionPurgesFile(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	past := time.Now().Add(-time.Hour)
	expired := &Session{
		Cookies:   map[string]string{"session": "abc"},
		UserEmail: "user@example.com",
		CreatedAt: past.Add(-DefaultTTL),
		ExpiresAt: &past,
	}
	require.NoError(t, st.Save(expired))

	got, err := st.Load()
	require.NoError(t, err)
	require.Nil(t, got)

	_, statErr := os.Stat(filepath.Join(dir, "session.json"))
	require.True(t, os.IsNotExist(statErr), "expired session file should be deleted")

	// Repeated load stays absent and error-free.
	got, err = st.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClearIsIdempotent(t *testing.T) {
	st := NewStore(t.TempDir())

	require.NoError(t, st.Clear())

	require.NoError(t, st.Save(New(map[string]string{"session": "abc"}, "user@example.com", time.Now())))
	require.NoError(t, st.Clear())
	require.NoError(t, st.Clear())
}

func TestSessionWithoutExpiryNeverExpires(t *testing.T) {
	s := &Session{
		Cookies:   map[string]string{"session": "abc"},
		CreatedAt: time.Now().Add(-365 * 24 * time.Hour),
	}
	require.False(t, s.Expired())
}

func TestLoadWithStatusReportsExpiredOnce(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	past := time.Now().Add(-time.Hour)
	expired := &Session{
		Cookies:   map[string]string{"session": "abc"},
		CreatedAt: past.Add(-DefaultTTL),
		ExpiresAt: &past,
	}
	require.NoError(t, st.Save(expired))

	got, status, err := st.LoadWithStatus()
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, StatusExpired, status)

	// The purge already happened, the next load sees nothing.
	got, status, err = st.LoadWithStatus()
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, StatusAbsent, status)
}
