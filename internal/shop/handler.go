package shop

import (
	"net/http"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ticket/archive"
)

type Handler struct {
	store   *store.Store
	archive archive.Archive
	mux     *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(store *store.Store, archive archive.Archive) *Handler {
	handler := &Handler{
		store:   store,
		archive: archive,
		mux:     &http.ServeMux{},
	}

	// Public routes
	handler.mux.HandleFunc("GET /{$}", handler.serveHome)
	handler.mux.HandleFunc("GET /offers", handler.serveOffers)
	handler.mux.HandleFunc("POST /offers/validate", handler.handleValidateOffer)
	handler.mux.HandleFunc("POST /my/cart", handler.handleAddToCart)

	// Customer routes
	handler.mux.Handle("GET /my/orders", authn.Required(http.HandlerFunc(handler.serveOrders)))
	handler.mux.Handle("GET /pay", authn.Required(http.HandlerFunc(handler.servePayment)))
	handler.mux.Handle("POST /payments/cancel", authn.Required(http.HandlerFunc(handler.handleCancelPayment)))
	handler.mux.Handle("POST /payments/confirm", authn.Required(http.HandlerFunc(handler.handleConfirmPayment)))

	return handler
}

var _ http.Handler = &Handler{}
