package log

import (
	"log/slog"
	"net/url"
)

// ScrubbedURL returns an attribute holding rawURL without credentials nor query
// string (presigned S3 URLs carry their signature in the query).
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	scrubbed := *u
	if scrubbed.User != nil {
		scrubbed.User = url.UserPassword("xxx", "xxx")
	}

	scrubbed.RawQuery = ""
	scrubbed.ForceQuery = false

	return slog.String(name, scrubbed.String())
}
