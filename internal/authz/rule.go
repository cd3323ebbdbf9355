package authz

// Rule grants admin access when it evaluates to true.
type Rule interface {
	Exec(env map[string]any) (bool, error)
}
