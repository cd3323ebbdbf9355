package authz

import (
	"log/slog"
	"net/http"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// RequireAdmin redirects anonymous visitors to the login page and rejects
// users that are not granted by the authorizer.
func RequireAdmin(authorizer *Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := authn.ContextUser(ctx)
			if err != nil {
				http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
				return
			}

			isAdmin, err := authorizer.IsAdmin(user)
			if err != nil {
				slog.ErrorContext(ctx, "could not evaluate admin rules", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !isAdmin {
				slog.WarnContext(ctx, "admin access denied")
				http.Error(w, "Accès réservé aux administrateurs", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
