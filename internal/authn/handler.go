package authn

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jofrance/billeterie/internal/store"
)

type Handler struct {
	mux                *http.ServeMux
	store              *store.Store
	sessions           *Sessions
	postLoginRedirect  string
	postLogoutRedirect string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Authenticator resolves the users logged in through this handler.
func (h *Handler) Authenticator() Authenticator {
	return h.sessions.Authenticator()
}

func NewHandler(store *store.Store, sessionStore sessions.Store, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:                http.NewServeMux(),
		store:              store,
		sessions:           NewSessions(sessionStore, opts.SessionName, store),
		postLoginRedirect:  opts.PostLoginRedirect,
		postLogoutRedirect: opts.PostLogoutRedirect,
	}

	h.mux.HandleFunc("GET "+LoginPath, h.getLoginPage)
	h.mux.HandleFunc("GET /register", h.getRegisterPage)
	h.mux.HandleFunc("POST /auth/register", h.handleRegister)
	h.mux.HandleFunc("POST /auth/login", h.handleLogin)
	h.mux.HandleFunc("GET /logout", h.handleLogout)

	return h
}

var _ http.Handler = &Handler{}
