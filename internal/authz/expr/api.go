package expr

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

// WithRuleAPI exposes helper functions to rule scripts.
func WithRuleAPI() expr.Option {
	return expr.Function(
		"domain",
		func(params ...any) (any, error) {
			email, ok := params[0].(string)
			if !ok {
				return nil, errors.Errorf("unexpected parameter type '%T', expected string", params[0])
			}

			_, domain, found := strings.Cut(email, "@")
			if !found {
				return "", nil
			}

			return strings.ToLower(domain), nil
		},
		new(func(string) string),
	)
}
