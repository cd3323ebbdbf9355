package archive

import (
	"context"

	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/pkg/errors"
)

var ErrNotRegistered = errors.New("not registered")

// Archive keeps a copy of every issued e-ticket.
type Archive interface {
	Store(ctx context.Context, t ticket.Ticket) error
}

type Type string

type CreateArchiveFunc func(options any) (Archive, error)

var registry = map[Type]CreateArchiveFunc{}

func Register(archiveType Type, create CreateArchiveFunc) {
	registry[archiveType] = create
}

func New(archiveType Type, options any) (Archive, error) {
	create, exists := registry[archiveType]
	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "no archive associated with type '%s'", archiveType)
	}

	archive, err := create(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return archive, nil
}

// Key returns the object name of the e-ticket in an archive.
func Key(t ticket.Ticket) string {
	return t.Reference + ".json"
}
