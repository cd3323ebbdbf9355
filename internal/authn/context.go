package authn

import (
	"context"

	"github.com/jofrance/billeterie/internal/store"
	"github.com/pkg/errors"
)

var ErrNoUser = errors.New("no user in context")

type contextKey string

const contextKeyUser contextKey = "authnUser"

func ContextUser(ctx context.Context) (*store.User, error) {
	user, ok := ctx.Value(contextKeyUser).(*store.User)
	if !ok || user == nil {
		return nil, errors.WithStack(ErrNoUser)
	}

	return user, nil
}

func WithContextUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}
