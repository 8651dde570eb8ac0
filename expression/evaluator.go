package expression

import (
	"context"
	"fmt"

	"github.com/bonitasoft/bonita-engine-sub039/model"
)

// Evaluator computes the value of an expression against an expression context.
type Evaluator interface {
	Evaluate(ctx context.Context, expression *model.Expression, evalCtx *model.ExpressionContext) (any, error)
}

type EvaluationError struct {
	Expression string
	Kind       model.ExpressionKind
	Cause      error
}

func (e EvaluationError) Error() string {
	return fmt.Sprintf("error evaluating %s expression %q: %v", e.Kind, e.Expression, e.Cause)
}

func (e EvaluationError) Unwrap() error {
	return e.Cause
}

type languageEvaluator func(content string, values map[string]any) (any, error)

var _ Evaluator = new(expressionEvaluator)

type expressionEvaluator struct {
	languages map[model.ExpressionKind]languageEvaluator
}

// NewEvaluator returns an evaluator supporting every expression kind of the model.
func NewEvaluator() *expressionEvaluator {
	return &expressionEvaluator{
		languages: map[model.ExpressionKind]languageEvaluator{
			model.EXPRESSION_KIND_VARIABLE:   evaluateVariable,
			model.EXPRESSION_KIND_EXPR:       evaluateExpr,
			model.EXPRESSION_KIND_JAVASCRIPT: evaluateJavascript,
			model.EXPRESSION_KIND_JSONPATH:   evaluateJsonPath,
		},
	}
}

func (e *expressionEvaluator) Evaluate(ctx context.Context, expression *model.Expression, evalCtx *model.ExpressionContext) (any, error) {
	if expression == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value any
	var err error
	if expression.Kind == model.EXPRESSION_KIND_CONSTANT {
		value, err = evaluateConstant(expression.Content, expression.ReturnType)
	} else {
		language, ok := e.languages[expression.Kind]
		if !ok {
			return nil, EvaluationError{Expression: expression.Content, Kind: expression.Kind, Cause: fmt.Errorf("unsupported expression kind")}
		}
		values := map[string]any{}
		if evalCtx != nil && evalCtx.InputValues != nil {
			values = evalCtx.InputValues
		}
		value, err = language(expression.Content, values)
	}
	if err != nil {
		return nil, EvaluationError{Expression: expression.Content, Kind: expression.Kind, Cause: err}
	}
	return value, nil
}

func evaluateVariable(content string, values map[string]any) (any, error) {
	value, ok := values[content]
	if !ok {
		return nil, fmt.Errorf("variable %s not defined", content)
	}
	return value, nil
}
