package setup

import (
	"context"
	"strings"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/authz"
	"github.com/jofrance/billeterie/internal/authz/expr"
	"github.com/jofrance/billeterie/internal/config"
	"github.com/pkg/errors"
)

var NewAuthnHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*authn.Handler, error) {
	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authn.NewHandler(store, sessionStore), nil
})

var NewAuthorizerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*authz.Authorizer, error) {
	admins := make([]string, 0, len(conf.Auth.Admins))
	for _, email := range conf.Auth.Admins {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		admins = append(admins, email)
	}

	rules := make([]authz.Rule, 0, len(conf.Auth.Rules))
	for _, script := range conf.Auth.Rules {
		rule := expr.NewRule(script)
		if err := rule.Compile(); err != nil {
			return nil, errors.Wrapf(err, "could not compile rule '%s'", script)
		}

		rules = append(rules, rule)
	}

	return authz.NewAuthorizer(admins, rules...), nil
})
