// Package uistate keeps the per-browser view state in a signed cookie: the
// language, the list layout, the grid selection and the dialog session id.
package uistate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultSessionName is used when no cookie name is configured.
const DefaultSessionName = "employeehub-ui"

const (
	sidKey      = "sid"
	langKey     = "lang"
	viewKey     = "view"
	selectedKey = "selected"
)

// State is what one browser remembers between requests.
type State struct {
	SessionID string
	Language  string
	// View is the last list layout the browser chose.
	View string
	// Selected is nil when the browser has never enabled selection.
	Selected []string
}

// IsSelected reports whether id is in the selection.
func (s *State) IsSelected(id string) bool {
	for _, v := range s.Selected {
		if v == id {
			return true
		}
	}
	return false
}

// Manager reads and writes State through a gorilla cookie store.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds the cookie store. In production (secure=true) cookies
// are Secure with SameSite=None; in dev over http they use Lax.
func NewManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("ui state store initialized",
		zap.String("cookie", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Load reads the state from the request. A missing or tampered cookie yields
// an empty state with a fresh session id.
func (m *Manager) Load(r *http.Request) *State {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.log.Debug("ui state cookie rejected; starting fresh", zap.Error(err))
	}
	st := &State{
		SessionID: getString(sess, sidKey),
		Language:  getString(sess, langKey),
		View:      getString(sess, viewKey),
	}
	if raw, ok := sess.Values[selectedKey].(string); ok {
		st.Selected = splitIDs(raw)
	}
	if st.SessionID == "" {
		st.SessionID = uuid.NewString()
	}
	return st
}

// Save writes st back to the cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[sidKey] = st.SessionID
	sess.Values[langKey] = st.Language
	sess.Values[viewKey] = st.View
	if st.Selected == nil {
		delete(sess.Values, selectedKey)
	} else {
		sess.Values[selectedKey] = strings.Join(st.Selected, ",")
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save ui state: %w", err)
	}
	return nil
}

type ctxKey string

const stateKey ctxKey = "uistate"

// Middleware loads the state into the request context. A browser without a
// session id gets one assigned and persisted immediately.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)
		fresh := getString(sess, sidKey) == ""

		st := m.Load(r)
		if fresh {
			if err := m.Save(w, r, st); err != nil {
				m.log.Warn("could not persist new ui state", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), stateKey, st)))
	})
}

// From returns the state loaded by Middleware, or an empty one.
func From(r *http.Request) *State {
	if st, ok := r.Context().Value(stateKey).(*State); ok {
		return st
	}
	return &State{}
}

// WithState attaches st to ctx.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey, st)
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func splitIDs(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
