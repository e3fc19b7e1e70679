package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// VersionEnv is what an obsolete-schema expression can see.
type VersionEnv struct {
	StoreVersion  string `expr:"store_version"`
	LoggerVersion string `expr:"logger_version"`
}

// VersionGate decides whether the stored Action Scheduler schema version is
// outside what this tool's table definitions cover.
//
// The default expression compares only the first character of the store
// schema version, lexicographically, against "3". "10.0" therefore counts as
// older than "3"; override repair.obsolete_when to change that.
type VersionGate struct {
	expression string
	program    *vm.Program
}

// NewVersionGate compiles expression; it must evaluate to a boolean.
func NewVersionGate(expression string) (*VersionGate, error) {
	program, err := expr.Compile(expression,
		expr.Env(VersionEnv{}),
		expr.AsBool(),
		expr.Function("first", func(params ...any) (any, error) {
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("first argument must be string")
			}
			if s == "" {
				return "", nil
			}
			return s[:1], nil
		}, new(func(string) string)),
	)
	if err != nil {
		return nil, apperrors.NewValidationError("repair.obsolete_when", err.Error())
	}
	return &VersionGate{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (g *VersionGate) Expression() string {
	return g.expression
}

// Obsolete evaluates the gate.
func (g *VersionGate) Obsolete(env VersionEnv) (bool, error) {
	out, err := expr.Run(g.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate obsolete-schema gate: %w", err)
	}
	obsolete, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("obsolete-schema gate returned %T, want bool", out)
	}
	return obsolete, nil
}
