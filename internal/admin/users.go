package admin

import (
	"log/slog"
	"net/http"

	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// serveUsers handles requests for the users list
func (h *Handler) serveUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.store.ListUsers(ctx, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		slog.ErrorContext(ctx, "could not list users", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := UsersTemplateData{
		AdminTemplateData: newAdminTemplateData(ctx, "Utilisateurs"),
		Page:              page,
	}

	ui.Render(w, r, templates, http.StatusOK, "users", data)
}
