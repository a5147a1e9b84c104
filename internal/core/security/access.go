// Package security provides authorization policies for API routes.
//
// Policies are CEL expressions evaluated against the authenticated user:
//
//	is_admin || "warehouse:write" in permissions
//	"storekeeper" in roles
//
// Expressions are compiled once at startup; evaluation per request is a map
// lookup plus a CEL program run.
package security

import (
	"fmt"

	"github.com/google/cel-go/cel"

	appctx "stockyard/internal/core/context"
)

// AccessPolicy is a compiled authorization rule.
type AccessPolicy struct {
	expr    string
	program cel.Program
}

// NewAccessPolicy compiles a CEL expression into a policy.
// The expression must evaluate to bool and may reference:
//   - roles       list(string)
//   - permissions list(string)
//   - is_admin    bool
func NewAccessPolicy(expr string) (*AccessPolicy, error) {
	env, err := cel.NewEnv(
		cel.Variable("roles", cel.ListType(cel.StringType)),
		cel.Variable("permissions", cel.ListType(cel.StringType)),
		cel.Variable("is_admin", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile policy %q: %w", expr, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("policy %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build policy program: %w", err)
	}

	return &AccessPolicy{expr: expr, program: program}, nil
}

// MustAccessPolicy compiles a policy, panics on error.
// Use only for the static route table assembled at startup.
func MustAccessPolicy(expr string) *AccessPolicy {
	p, err := NewAccessPolicy(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the source expression (for error details and logging).
func (p *AccessPolicy) Expr() string {
	return p.expr
}

// Allow evaluates the policy for the given user.
// A nil user is always denied.
func (p *AccessPolicy) Allow(user *appctx.UserContext) (bool, error) {
	if user == nil {
		return false, nil
	}

	out, _, err := p.program.Eval(map[string]any{
		"roles":       emptyIfNil(user.Roles),
		"permissions": emptyIfNil(user.Permissions),
		"is_admin":    user.IsAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("eval policy %q: %w", p.expr, err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("policy %q returned non-bool %T", p.expr, out.Value())
	}

	return allowed, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --- Common policies ---

// RequireRole builds a policy allowing admins or holders of any listed role.
func RequireRole(roles ...string) *AccessPolicy {
	expr := "is_admin"
	for _, r := range roles {
		expr += fmt.Sprintf(" || %q in roles", r)
	}
	return MustAccessPolicy(expr)
}

// RequirePermission builds a policy allowing admins or holders of the permission.
func RequirePermission(permission string) *AccessPolicy {
	return MustAccessPolicy(fmt.Sprintf("is_admin || %q in permissions", permission))
}
