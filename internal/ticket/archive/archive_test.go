package archive

import (
	"context"
	"testing"

	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/pkg/errors"
)

func TestNew(t *testing.T) {
	if _, err := New("unknown", nil); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("err: expected '%v', got '%v'", ErrNotRegistered, err)
	}

	archive, err := New(TypeNone, map[string]any{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := archive.Store(context.Background(), ticket.Ticket{Reference: "PAY-1"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}

func TestKey(t *testing.T) {
	if e, g := "PAY-1.json", Key(ticket.Ticket{Reference: "PAY-1"}); e != g {
		t.Errorf("Key(): expected '%v', got '%v'", e, g)
	}
}
