package adminheader

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
)

// Middleware injects the admin header into the HTML pages produced by next,
// once the page has been completely written. Error pages are rewritten too,
// only responses without a body (informational, 204, redirects, 304) are
// left as is.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		buffered := &bufferedResponseWriter{header: w.Header()}

		next.ServeHTTP(buffered, r)

		status := buffered.statusCode()
		body := buffered.body.Bytes()

		if !hasBody(status) || len(body) == 0 || !isHTML(w.Header(), body) {
			buffered.flush(w, body)
			return
		}

		var rewritten bytes.Buffer
		if err := Rewrite(bytes.NewReader(body), &rewritten); err != nil {
			slog.ErrorContext(ctx, "could not inject admin header", log.Error(errors.WithStack(err)))
			buffered.flush(w, body)
			return
		}

		buffered.flush(w, rewritten.Bytes())
	})
}

type bufferedResponseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

// Header implements http.ResponseWriter.
func (b *bufferedResponseWriter) Header() http.Header {
	return b.header
}

// Write implements http.ResponseWriter.
func (b *bufferedResponseWriter) Write(data []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}

	return b.body.Write(data)
}

// WriteHeader implements http.ResponseWriter.
func (b *bufferedResponseWriter) WriteHeader(statusCode int) {
	if b.status != 0 {
		return
	}

	b.status = statusCode
}

func (b *bufferedResponseWriter) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}

	return b.status
}

func (b *bufferedResponseWriter) flush(w http.ResponseWriter, body []byte) {
	if len(body) > 0 {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	}

	w.WriteHeader(b.statusCode())

	_, _ = w.Write(body)
}

var _ http.ResponseWriter = &bufferedResponseWriter{}

func hasBody(status int) bool {
	switch {
	case status < http.StatusOK:
		return false
	case status == http.StatusNoContent:
		return false
	case status >= http.StatusMultipleChoices && status < http.StatusBadRequest:
		return false
	default:
		return true
	}
}

func isHTML(header http.Header, body []byte) bool {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "text/html"
}
