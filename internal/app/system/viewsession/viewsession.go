// Package viewsession keeps a signed cookie that identifies the browser which
// mounted a dashboard view, so view IDs cannot be replayed from elsewhere.
package viewsession

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const ownerKey = "owner"

// Manager reads and writes the view-owner session cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a cookie store signed with sessionKey. The secure flag
// controls whether cookies are marked Secure; keep it false for local http.
func NewManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("view session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Owner returns the owner token for this browser, creating and saving one if
// the request carries none (or carries a cookie that no longer decodes).
func (m *Manager) Owner(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := m.session(r)
	if owner, ok := sess.Values[ownerKey].(string); ok && owner != "" {
		return owner, nil
	}

	owner := uuid.NewString()
	sess.Values[ownerKey] = owner
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save view session: %w", err)
	}
	return owner, nil
}

// PeekOwner returns the owner token without creating one. It returns "" when
// the browser has no valid session.
func (m *Manager) PeekOwner(r *http.Request) string {
	owner, _ := m.session(r).Values[ownerKey].(string)
	return owner
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Debug("view session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Warn("view session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}
