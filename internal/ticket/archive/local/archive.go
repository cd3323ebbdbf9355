package local

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/jofrance/billeterie/internal/ticket/archive"
	"github.com/pkg/errors"
)

// Archive writes e-tickets as JSON files in a directory.
type Archive struct {
	dir string
}

// Store implements archive.Archive.
func (a *Archive) Store(ctx context.Context, t ticket.Ticket) error {
	if err := os.MkdirAll(a.dir, 0o750); err != nil {
		return errors.WithStack(err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	path := filepath.Join(a.dir, archive.Key(t))

	tmp, err := os.CreateTemp(a.dir, ".ticket-*")
	if err != nil {
		return errors.WithStack(err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WithStack(err)
	}

	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WithStack(err)
	}

	slog.DebugContext(ctx, "e-ticket archived", slog.String("path", path))

	return nil
}

func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

var _ archive.Archive = &Archive{}
