package archive

import (
	"context"

	"github.com/jofrance/billeterie/internal/ticket"
)

const TypeNone Type = "none"

func init() {
	Register(TypeNone, func(options any) (Archive, error) {
		return None{}, nil
	})
}

// None discards e-tickets.
type None struct{}

func (None) Store(ctx context.Context, t ticket.Ticket) error {
	return nil
}

var _ Archive = None{}
