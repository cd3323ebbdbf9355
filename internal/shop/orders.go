package shop

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

const orderNotFound = "Commande introuvable."

func (h *Handler) serveOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
		return
	}

	cart, err := h.store.ListUserOrders(ctx, user.ID, store.OrderStatusDraft)
	if err != nil {
		slog.ErrorContext(ctx, "could not list cart", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	paid, err := h.store.ListUserOrders(ctx, user.ID, store.OrderStatusPaid)
	if err != nil {
		slog.ErrorContext(ctx, "could not list paid orders", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := OrdersTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Mes commandes",
		},
		NavbarTemplateData: navbar(ctx),
		Cart:               cart,
		Paid:               paid,
	}

	ui.Render(w, r, templates, http.StatusOK, "orders", data)
}

func (h *Handler) servePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
		return
	}

	orderID, err := strconv.ParseInt(r.URL.Query().Get("order_id"), 10, 64)
	if err != nil {
		http.Error(w, orderNotFound, http.StatusNotFound)
		return
	}

	order, err := h.store.GetUserOrder(ctx, user.ID, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, orderNotFound, http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not retrieve order", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if order.Status != store.OrderStatusDraft {
		http.Error(w, orderNotFound, http.StatusNotFound)
		return
	}

	data := PaymentTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Paiement",
		},
		NavbarTemplateData: navbar(ctx),
		Order:              order,
	}

	ui.Render(w, r, templates, http.StatusOK, "pay", data)
}

func (h *Handler) handleCancelPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
		return
	}

	orderID, err := strconv.ParseInt(r.PostFormValue("order_id"), 10, 64)
	if err != nil {
		http.Error(w, orderNotFound, http.StatusNotFound)
		return
	}

	if err := h.store.CancelOrder(ctx, user.ID, orderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, orderNotFound, http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not cancel order", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "order canceled", slog.Int64("orderID", orderID))

	http.Redirect(w, r, "/my/orders", http.StatusSeeOther)
}

func (h *Handler) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
		return
	}

	orderID, err := strconv.ParseInt(r.PostFormValue("order_id"), 10, 64)
	if err != nil {
		http.Error(w, orderNotFound, http.StatusNotFound)
		return
	}

	key2, err := ticket.NewKey()
	if err != nil {
		slog.ErrorContext(ctx, "could not generate ticket key", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payment, err := h.store.ConfirmPayment(ctx, user.ID, orderID, key2, ticket.Reference())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, orderNotFound, http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not confirm payment", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ctx = log.WithAttrs(ctx, slog.Int64("orderID", orderID), slog.String("reference", payment.Reference))

	slog.InfoContext(ctx, "payment confirmed", slog.Int64("amountCents", payment.AmountCents))

	if err := h.archive.Store(ctx, ticket.New(payment)); err != nil {
		slog.ErrorContext(ctx, "could not archive e-ticket", log.Error(errors.WithStack(err)))
	}

	data := TicketTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "E-billet",
		},
		NavbarTemplateData: navbar(ctx),
		Payment:            payment,
	}

	ui.Render(w, r, templates, http.StatusOK, "ticket", data)
}
