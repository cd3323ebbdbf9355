package setup

import (
	"context"
	"log/slog"

	"github.com/jofrance/billeterie/internal/config"
	"github.com/jofrance/billeterie/internal/ticket/archive"
	"github.com/pkg/errors"
)

var NewArchiveFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (archive.Archive, error) {
	var options map[string]any
	if conf.Tickets.Archive.Options != nil {
		options = conf.Tickets.Archive.Options.Data
	}

	archiveType := archive.Type(conf.Tickets.Archive.Type)

	tickets, err := archive.New(archiveType, options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' ticket archive", archiveType)
	}

	slog.DebugContext(ctx, "ticket archive configured", slog.String("type", string(archiveType)))

	return tickets, nil
})
