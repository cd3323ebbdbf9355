package setup

import (
	"context"
	"testing"

	"github.com/jofrance/billeterie/internal/config"
	"github.com/pkg/errors"
)

func TestCreateFromConfigOnce(t *testing.T) {
	calls := 0
	create := createFromConfigOnce(func(ctx context.Context, conf *config.Config) (int, error) {
		calls++
		return calls, nil
	})

	ctx := context.Background()
	first := config.NewDefaultConfig()
	second := config.NewDefaultConfig()

	for _, conf := range []*config.Config{first, first, second, second} {
		if _, err := create(ctx, conf); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if e, g := 2, calls; e != g {
		t.Errorf("calls: expected '%v', got '%v'", e, g)
	}

	value, err := create(ctx, second)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, value; e != g {
		t.Errorf("value: expected '%v', got '%v'", e, g)
	}
}
