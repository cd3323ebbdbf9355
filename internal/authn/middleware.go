package authn

import (
	"log/slog"
	"net/http"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

var (
	ErrCancel = errors.New("cancel")
)

// Authenticator resolves the user of a request. A nil user without error
// means the request is anonymous for this authenticator.
type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (*store.User, error)
}

type AuthenticateFunc func(w http.ResponseWriter, r *http.Request) (*store.User, error)

func (fn AuthenticateFunc) Authenticate(w http.ResponseWriter, r *http.Request) (*store.User, error) {
	return fn(w, r)
}

func Chain(funcs ...MiddlewareOptionFunc) func(http.Handler) http.Handler {
	opts := NewMiddlewareOptions(funcs...)
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, auth := range opts.Authenticators {
				user, err := auth.Authenticate(w, r)
				if errors.Is(err, ErrCancel) {
					return
				}

				if err != nil {
					opts.OnError(w, r, err)
					return
				}

				if user == nil {
					continue
				}

				ctx = WithContextUser(ctx, user)
				ctx = log.WithAttrs(ctx, slog.Int64("userID", user.ID))
				r = r.WithContext(ctx)

				next.ServeHTTP(w, r)
				return
			}

			if opts.Anonymous {
				next.ServeHTTP(w, r)
				return
			}

			opts.UnauthorizedHandler.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// Required redirects anonymous visitors to the login page.
func Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := ContextUser(r.Context()); err != nil {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type OnErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

type MiddlewareOptions struct {
	UnauthorizedHandler http.Handler
	Authenticators      []Authenticator
	OnError             OnErrorFunc
	// Anonymous lets unauthenticated requests through without a context user
	Anonymous bool
}

type MiddlewareOptionFunc func(opts *MiddlewareOptions)

func NewMiddlewareOptions(funcs ...MiddlewareOptionFunc) *MiddlewareOptions {
	opts := &MiddlewareOptions{
		UnauthorizedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		}),
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.ErrorContext(r.Context(), "authentication error", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithAuthenticators(authenticators ...Authenticator) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.Authenticators = authenticators
	}
}

func WithUnauthorizedHandler(h http.Handler) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.UnauthorizedHandler = h
	}
}

func WithAnonymous(anonymous bool) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.Anonymous = anonymous
	}
}
