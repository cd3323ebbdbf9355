package authn

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

const (
	sessionKeyUserID = "userID"
	sessionKeyEmail  = "email"
)

// Sessions binds users to signed session cookies.
type Sessions struct {
	sessionStore sessions.Store
	sessionName  string
	store        *store.Store
}

// Login attaches the user to the request session.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, user *store.User) error {
	// A session that could not be decoded is replaced by a new one
	sess, _ := s.sessionStore.Get(r, s.sessionName)

	sess.Values[sessionKeyUserID] = user.ID
	sess.Values[sessionKeyEmail] = user.Email

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Logout expires the session cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.sessionStore.Get(r, s.sessionName)

	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Authenticator resolves the session user. Invalid or stale sessions are
// treated as anonymous.
func (s *Sessions) Authenticator() Authenticator {
	return AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (*store.User, error) {
		ctx := r.Context()

		sess, err := s.sessionStore.Get(r, s.sessionName)
		if err != nil {
			slog.DebugContext(ctx, "could not decode session", log.Error(errors.WithStack(err)))
			return nil, nil
		}

		userID, ok := sess.Values[sessionKeyUserID].(int64)
		if !ok {
			return nil, nil
		}

		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}

			return nil, errors.WithStack(err)
		}

		return user, nil
	})
}

func NewSessions(sessionStore sessions.Store, sessionName string, store *store.Store) *Sessions {
	return &Sessions{
		sessionStore: sessionStore,
		sessionName:  sessionName,
		store:        store,
	}
}
