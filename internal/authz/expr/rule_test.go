package expr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestRule(t *testing.T) {
	type testCase struct {
		Script        string
		Env           map[string]any
		Expected      bool
		ExpectedError bool
	}

	user := map[string]any{
		"id":        int64(1),
		"email":     "marie@jo-france.fr",
		"firstName": "Marie",
		"lastName":  "Curie",
	}

	testCases := []testCase{
		{
			Script:   "user.email in admins",
			Env:      map[string]any{"user": user, "admins": []string{"marie@jo-france.fr"}},
			Expected: true,
		},
		{
			Script:   "user.email in admins",
			Env:      map[string]any{"user": user, "admins": []string{}},
			Expected: false,
		},
		{
			Script:   `domain(user.email) == "jo-france.fr"`,
			Env:      map[string]any{"user": user, "admins": []string{}},
			Expected: true,
		},
		{
			Script:   `user.id == 1 && user.lastName == "Curie"`,
			Env:      map[string]any{"user": user, "admins": []string{}},
			Expected: true,
		},
		{
			Script:        "user.email +",
			Env:           map[string]any{"user": user, "admins": []string{}},
			ExpectedError: true,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			rule := NewRule(tc.Script)

			allowed, err := rule.Exec(tc.Env)
			if tc.ExpectedError {
				if err == nil {
					t.Errorf("err: expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, allowed; e != g {
				t.Errorf("allowed: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	if err := NewRule("user.email in admins").Compile(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := NewRule("user.email in").Compile(); err == nil {
		t.Errorf("err: expected error, got nil")
	}
}
