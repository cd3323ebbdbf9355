package setup

import (
	"context"
	"sync"

	"github.com/jofrance/billeterie/internal/config"
	"github.com/pkg/errors"
)

type fromConfigFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

type onceResult[T any] struct {
	value T
	err   error
}

// createFromConfigOnce memoizes fn per configuration so that components
// shared between handlers are only built once.
func createFromConfigOnce[T any](fn fromConfigFunc[T]) fromConfigFunc[T] {
	var (
		mutex   sync.Mutex
		results = map[*config.Config]*onceResult[T]{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if result, exists := results[conf]; exists {
			return result.value, errors.WithStack(result.err)
		}

		value, err := fn(ctx, conf)
		results[conf] = &onceResult[T]{value: value, err: err}

		return value, errors.WithStack(err)
	}
}
