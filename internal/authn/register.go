package authn

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

const minPasswordLength = 8

// CheckPassword reports whether the password has at least 8 characters and
// one digit.
func CheckPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	return strings.IndexFunc(password, unicode.IsDigit) != -1
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	newUser := store.NewUser{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
	}

	if newUser.FirstName == "" || newUser.LastName == "" || newUser.Email == "" {
		h.renderRegisterError(w, r, http.StatusBadRequest, "Erreur d’inscription", "Tous les champs sont obligatoires.")
		return
	}

	if !CheckPassword(newUser.Password) {
		h.renderRegisterError(w, r, http.StatusBadRequest, "Mot de passe trop faible", "Minimum 8 caractères et 1 chiffre.")
		return
	}

	key1, err := ticket.NewKey()
	if err != nil {
		slog.ErrorContext(ctx, "could not generate user key", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	newUser.Key1 = key1

	user, err := h.store.CreateUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			h.renderRegisterError(w, r, http.StatusConflict, "Erreur d’inscription", "Cette adresse e-mail est déjà utilisée.")
			return
		}

		slog.ErrorContext(ctx, "could not create user", log.Error(errors.WithStack(err)))
		h.renderRegisterError(w, r, http.StatusInternalServerError, "Erreur d’inscription", "Veuillez réessayer plus tard.")
		return
	}

	slog.InfoContext(ctx, "user registered", slog.Int64("userID", user.ID))

	if err := h.sessions.Login(w, r, user); err != nil {
		slog.ErrorContext(ctx, "could not save session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

func (h *Handler) renderRegisterError(w http.ResponseWriter, r *http.Request, status int, title string, text string) {
	ui.RenderMessage(w, r, templates, status, ui.MessageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Erreur d’inscription",
		},
		NavbarTemplateData: navbar(r.Context()),
		Title:              title,
		Text:               text,
		LinkURL:            "/register",
		LinkLabel:          "← Revenir à l’inscription",
	})
}
