package auth

import (
	"context"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/pasogott/gurkerlcli/internal/session"
	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
)

// Manager drives the login/logout lifecycle: it exchanges credentials for
// session cookies via the API client and persists the resulting session.
type Manager struct {
	client *gurkerl.Client
	store  *session.Store
}

func NewManager(client *gurkerl.Client, store *session.Store) *Manager {
	return &Manager{client: client, store: store}
}

// Login authenticates against the vendor, persists the fresh session with a
// 7-day expiry, and stores the password in the OS secret store for later
// logins. A missing keyring backend is ignored.
func (m *Manager) Login(ctx context.Context, email, password string) (*session.Session, error) {
	_ = keyring.Set(KeyringService, email, password)

	cookies, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := session.New(cookies, email, time.Now())
	if err := m.store.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout clears the stored session unconditionally.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// Authenticated reports whether an unexpired session is on disk.
func (m *Manager) Authenticated() bool {
	sess, err := m.store.Load()
	return err == nil && sess != nil
}
