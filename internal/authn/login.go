package authn

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.store.Authenticate(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			http.Error(w, "Identifiants incorrects", http.StatusUnauthorized)
			return
		}

		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ctx = log.WithAttrs(ctx, slog.Int64("userID", user.ID))

	if cookie, err := r.Cookie(SelectedOfferCookie); err == nil {
		h.restoreSelectedOffer(r.WithContext(ctx), user, cookie.Value)
		http.SetCookie(w, expiredCookie(SelectedOfferCookie))
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		slog.ErrorContext(ctx, "could not save session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "user logged in")

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

// restoreSelectedOffer turns the offer chosen before login into the user's cart.
func (h *Handler) restoreSelectedOffer(r *http.Request, user *store.User, rawOfferID string) {
	ctx := r.Context()

	offerID, err := strconv.ParseInt(rawOfferID, 10, 64)
	if err != nil {
		slog.WarnContext(ctx, "ignoring invalid selected offer", slog.String("offerID", rawOfferID))
		return
	}

	order, err := h.store.SelectOffer(ctx, user.ID, offerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "selected offer does not exist anymore", slog.Int64("offerID", offerID))
			return
		}

		slog.ErrorContext(ctx, "could not restore selected offer", log.Error(errors.WithStack(err)))
		return
	}

	slog.InfoContext(ctx, "selected offer restored", slog.Int64("orderID", order.ID))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Logout(w, r); err != nil {
		slog.ErrorContext(ctx, "could not expire session", log.Error(errors.WithStack(err)))
	}

	http.SetCookie(w, expiredCookie(SelectedOfferCookie))

	http.Redirect(w, r, h.postLogoutRedirect, http.StatusSeeOther)
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
}
