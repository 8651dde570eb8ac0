package expression

import (
	"github.com/expr-lang/expr"
)

func evaluateExpr(content string, values map[string]any) (any, error) {
	env := make(map[string]any, len(values)+1)
	for k, v := range values {
		env[k] = v
	}
	env["null"] = nil
	// expr.Env must come before AllowUndefinedVariables
	program, err := expr.Compile(content, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}
