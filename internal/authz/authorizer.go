package authz

import (
	"github.com/jofrance/billeterie/internal/store"
	"github.com/pkg/errors"
)

// Authorizer decides which users can access the administration.
type Authorizer struct {
	admins []string
	rules  []Rule
}

// IsAdmin evaluates the rules in order and returns true on the first granting
// one.
func (a *Authorizer) IsAdmin(user *store.User) (bool, error) {
	for _, r := range a.rules {
		allowed, err := r.Exec(a.env(user))
		if err != nil {
			return false, errors.Wrapf(err, "could not execute rule '%v'", r)
		}

		if allowed {
			return true, nil
		}
	}

	return false, nil
}

func (a *Authorizer) env(user *store.User) map[string]any {
	admins := make([]string, len(a.admins))
	copy(admins, a.admins)

	return map[string]any{
		"user": map[string]any{
			"id":        user.ID,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
		"admins": admins,
	}
}

func NewAuthorizer(admins []string, rules ...Rule) *Authorizer {
	return &Authorizer{
		admins: admins,
		rules:  rules,
	}
}
