package admin

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// serveIndex handles requests for the admin dashboard
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offers, err := h.store.ListOffers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list offers", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stats, err := h.store.OfferStats(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not compute offer stats", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := DashboardTemplateData{
		AdminTemplateData: newAdminTemplateData(ctx, "Administration"),
		Offers:            offers,
		Stats:             stats,
	}

	for _, s := range stats {
		data.TurnoverCents += s.TurnoverCents
		data.Persons += s.Persons
	}

	// The dashboard still renders without the user count
	userCount, err := h.store.CountUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not count users", log.Error(errors.WithStack(err)))
	} else {
		data.UserCount = userCount
	}

	ui.Render(w, r, templates, http.StatusOK, "index", data)
}

func (h *Handler) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := strings.TrimSpace(r.PostFormValue("name"))

	seats, err := strconv.ParseInt(r.PostFormValue("seats"), 10, 64)
	if err != nil || seats < 1 || name == "" {
		h.renderInvalidOffer(w, r)
		return
	}

	priceCents, err := parseEuros(r.PostFormValue("price"))
	if err != nil {
		h.renderInvalidOffer(w, r)
		return
	}

	offer, err := h.store.CreateOffer(ctx, name, seats, priceCents)
	if err != nil {
		slog.ErrorContext(ctx, "could not create offer", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "offer created", slog.Int64("offerID", offer.ID), slog.String("name", offer.Name))

	http.Redirect(w, r, h.prefix, http.StatusSeeOther)
}

func (h *Handler) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offerID, err := strconv.ParseInt(r.PostFormValue("offer_id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteOffer(ctx, offerID); err != nil {
		switch {
		case errors.Is(err, store.ErrOfferInUse):
			h.renderMessage(w, r, http.StatusConflict, "Suppression impossible", "Cette offre est liée à des commandes et ne peut pas être supprimée.")
		case errors.Is(err, store.ErrNotFound):
			h.renderMessage(w, r, http.StatusNotFound, "Offre introuvable", "Cette offre n'existe plus.")
		default:
			slog.ErrorContext(ctx, "could not delete offer", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return
	}

	slog.InfoContext(ctx, "offer deleted", slog.Int64("offerID", offerID))

	http.Redirect(w, r, h.prefix, http.StatusSeeOther)
}

func (h *Handler) renderInvalidOffer(w http.ResponseWriter, r *http.Request) {
	h.renderMessage(w, r, http.StatusBadRequest, "Offre invalide", "Le nom, le nombre de places (au moins 1) et le prix sont obligatoires.")
}

func (h *Handler) renderMessage(w http.ResponseWriter, r *http.Request, status int, title string, text string) {
	data := struct {
		AdminTemplateData
		Title     string
		Text      string
		LinkURL   string
		LinkLabel string
	}{
		AdminTemplateData: newAdminTemplateData(r.Context(), title),
		Title:             title,
		Text:              text,
		LinkURL:           h.prefix,
		LinkLabel:         "← Retour à l'administration",
	}

	ui.Render(w, r, templates, status, "admin_message", data)
}

// parseEuros converts a price in euros, ie "49,90" or "50", to cents.
func parseEuros(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.Errorf("invalid price '%s'", raw)
	}

	return int64(math.Round(price * 100)), nil
}
