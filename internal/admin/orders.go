package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// serveOrders lists the orders of a given status, paid ones by default
func (h *Handler) serveOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := store.OrderStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		status = store.OrderStatusPaid
	}

	page, err := h.store.ListOrders(ctx, status, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		slog.ErrorContext(ctx, "could not list orders", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := OrdersTemplateData{
		AdminTemplateData: newAdminTemplateData(ctx, "Billeterie"),
		Status:            status,
		Label:             strings.ToLower(statusLabels[status]),
		Statuses:          newStatusFilters(status),
		Page:              page,
	}

	ui.Render(w, r, templates, http.StatusOK, "orders", data)
}
