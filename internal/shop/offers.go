package shop

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveHome(w http.ResponseWriter, r *http.Request) {
	data := HomeTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "JO France",
		},
		NavbarTemplateData: navbar(r.Context()),
	}

	ui.Render(w, r, templates, http.StatusOK, "home", data)
}

func (h *Handler) serveOffers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offers, err := h.store.ListOffers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list offers", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := OffersTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Offres",
		},
		NavbarTemplateData: navbar(ctx),
		Offers:             offers,
	}

	ui.Render(w, r, templates, http.StatusOK, "offers", data)
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		ui.RenderMessage(w, r, templates, http.StatusOK, ui.MessageTemplateData{
			NavbarTemplateData: navbar(ctx),
			Title:              "Connexion requise",
			Text:               "Vous devez être connecté pour ajouter une offre au panier.",
			LinkURL:            authn.LoginPath,
			LinkLabel:          "Se connecter",
		})
		return
	}

	offerID, err := strconv.ParseInt(r.PostFormValue("offer_id"), 10, 64)
	if err != nil {
		http.Error(w, "Offre inconnue", http.StatusBadRequest)
		return
	}

	// Missing or invalid quantities fall back to a single pack
	quantity, _ := strconv.ParseInt(r.PostFormValue("quantity"), 10, 64)

	order, err := h.store.AddToCart(ctx, user.ID, offerID, quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Offre inconnue", http.StatusBadRequest)
			return
		}

		slog.ErrorContext(ctx, "could not add offer to cart", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "offer added to cart", slog.Int64("orderID", order.ID), slog.Int64("offerID", offerID))

	http.Redirect(w, r, "/my/orders", http.StatusSeeOther)
}

func (h *Handler) handleValidateOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawOfferID := r.PostFormValue("offer_id")

	offerID, err := strconv.ParseInt(rawOfferID, 10, 64)
	if err != nil || offerID == 0 {
		ui.RenderMessage(w, r, templates, http.StatusOK, ui.MessageTemplateData{
			HeadTemplateData: ui.HeadTemplateData{
				PageTitle: "Sélection requise",
			},
			NavbarTemplateData: navbar(ctx),
			Title:              "Aucune offre sélectionnée",
			Text:               "Merci de choisir une offre avant de valider.",
			LinkURL:            "/offers",
			LinkLabel:          "← Retour aux offres",
		})
		return
	}

	user, err := authn.ContextUser(ctx)
	if err != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     authn.SelectedOfferCookie,
			Value:    strconv.FormatInt(offerID, 10),
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, authn.LoginPath, http.StatusSeeOther)
		return
	}

	order, err := h.store.SelectOffer(ctx, user.ID, offerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ui.RenderMessage(w, r, templates, http.StatusOK, ui.MessageTemplateData{
				HeadTemplateData: ui.HeadTemplateData{
					PageTitle: "Erreur",
				},
				NavbarTemplateData: navbar(ctx),
				Title:              "Offre introuvable",
				Text:               "Merci de choisir une offre valide.",
				LinkURL:            "/offers",
				LinkLabel:          "← Retour aux offres",
			})
			return
		}

		slog.ErrorContext(ctx, "could not select offer", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/pay?order_id="+strconv.FormatInt(order.ID, 10), http.StatusSeeOther)
}
