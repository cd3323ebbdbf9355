package ui

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// Render executes the named template and writes it with the given status.
// Nothing is written to w if the execution fails.
func Render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, name string, data any) {
	var buf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)), slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}

// RenderMessage writes a notice page using the shared "message" view.
func RenderMessage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data MessageTemplateData) {
	if data.PageTitle == "" {
		data.PageTitle = data.Title
	}

	Render(w, r, tmpl, status, "message", data)
}
