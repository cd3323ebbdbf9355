package admin

import (
	"fmt"
	"net/http"

	"github.com/jofrance/billeterie/internal/store"
)

type Handler struct {
	prefix string
	store  *store.Store
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store) *Handler {
	handler := &Handler{
		prefix: prefix,
		store:  store,
		mux:    &http.ServeMux{},
	}

	// Register routes
	handler.mux.HandleFunc(fmt.Sprintf("GET %s", prefix), handler.serveIndex)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/{$}", prefix), handler.serveIndex)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/orders", prefix), handler.serveOrders)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/users/list", prefix), handler.serveUsers)

	// Offer routes
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/offers/new", prefix), handler.handleCreateOffer)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/offers/delete", prefix), handler.handleDeleteOffer)

	return handler
}

var _ http.Handler = &Handler{}
