package debug

import (
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Handler exposes runtime profiles and a database probe to administrators.
type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.store.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.ExecuteTransient(conn, "SELECT 1", nil))
	})
	if err != nil {
		slog.ErrorContext(ctx, "store health check failed", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func NewHandler(prefix string, store *store.Store) *Handler {
	h := &Handler{
		store: store,
		mux:   &http.ServeMux{},
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/health", prefix), h.serveHealth)

	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/", prefix), pprof.Index)
	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/cmdline", prefix), pprof.Cmdline)
	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/profile", prefix), pprof.Profile)
	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/symbol", prefix), pprof.Symbol)
	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/trace", prefix), pprof.Trace)
	h.mux.HandleFunc(fmt.Sprintf("%s/pprof/{name}", prefix), func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
	})

	h.mux.Handle(fmt.Sprintf("GET %s/vars", prefix), expvar.Handler())

	return h
}

var _ http.Handler = &Handler{}
