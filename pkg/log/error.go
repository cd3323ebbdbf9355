package log

import (
	"fmt"
	"log/slog"
)

// Error returns an attribute holding the error with its stack trace, if any.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	return slog.String("error", fmt.Sprintf("%+v", err))
}
