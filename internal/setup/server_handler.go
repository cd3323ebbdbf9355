package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jofrance/billeterie/internal/admin"
	"github.com/jofrance/billeterie/internal/adminheader"
	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/authz"
	"github.com/jofrance/billeterie/internal/config"
	"github.com/jofrance/billeterie/internal/debug"
	"github.com/jofrance/billeterie/internal/ratelimit"
	"github.com/jofrance/billeterie/internal/shop"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	authnHandler, err := NewAuthnHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	authorizer, err := NewAuthorizerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tickets, err := NewArchiveFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	uiAuth := authn.Chain(
		authn.WithAuthenticators(
			authnHandler.Authenticator(),
		),
		authn.WithAnonymous(true),
	)

	// Static assets
	mux.Handle("GET /static/admin-header.js", adminheader.ScriptHandler())
	mux.Handle("GET /static/", ui.StaticHandler("/static"))

	// Authentication
	rateLimiter := ratelimit.New(rate.Limit(conf.Auth.RateLimit.Rate), int(conf.Auth.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(ratelimit.RemoteAddr)

	mux.Handle("/auth/", uiAuth(slogMiddleware(rateLimiterMiddleware(authnHandler))))
	mux.Handle(authn.LoginPath, uiAuth(slogMiddleware(authnHandler)))
	mux.Handle("/register", uiAuth(slogMiddleware(authnHandler)))
	mux.Handle("/logout", uiAuth(slogMiddleware(authnHandler)))

	// Administration
	adminHandler := authz.RequireAdmin(authorizer)(adminheader.Middleware(admin.NewHandler("/admin", store)))
	mux.Handle("/admin", uiAuth(slogMiddleware(adminHandler)))
	mux.Handle("/admin/", uiAuth(slogMiddleware(adminHandler)))

	if conf.HTTP.Debug {
		debugHandler := authz.RequireAdmin(authorizer)(debug.NewHandler("/admin/debug", store))
		mux.Handle("/admin/debug/", uiAuth(slogMiddleware(debugHandler)))
	}

	// Shop
	mux.Handle("/", uiAuth(slogMiddleware(shop.NewHandler(store, tickets))))

	return mux, nil
}
