package expression

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	evalCtx := model.NewExpressionContext(1, model.DATA_CONTAINER_PROCESS_INSTANCE, 10)
	evalCtx.InputValues["amount"] = int64(40)
	evalCtx.InputValues["customer"] = map[string]any{"name": "walter", "tags": []any{"gold", "eu"}}

	testCases := []struct {
		name     string
		expr     *model.Expression
		expected any
	}{
		{"constant string", model.NewConstantExpression("hello", model.DATA_TYPE_STRING), "hello"},
		{"constant integer", model.NewConstantExpression("99", model.DATA_TYPE_INTEGER), int64(99)},
		{"constant double", model.NewConstantExpression("1.5", model.DATA_TYPE_DOUBLE), 1.5},
		{"constant boolean", model.NewConstantExpression("true", model.DATA_TYPE_BOOLEAN), true},
		{"constant list", model.NewConstantExpression(`["a","b"]`, model.DATA_TYPE_LIST), []any{"a", "b"}},
		{"variable", model.NewExpression(model.EXPRESSION_KIND_VARIABLE, "amount", model.DATA_TYPE_LONG), int64(40)},
		{"expr", model.NewExpression(model.EXPRESSION_KIND_EXPR, "amount * 2 + 2", model.DATA_TYPE_LONG), int64(82)},
		{"expr condition", model.NewExpression(model.EXPRESSION_KIND_EXPR, `customer.name == "walter"`, model.DATA_TYPE_BOOLEAN), true},
		{"javascript", model.NewExpression(model.EXPRESSION_KIND_JAVASCRIPT, "amount + 2", model.DATA_TYPE_LONG), int64(42)},
		{"javascript dollar", model.NewExpression(model.EXPRESSION_KIND_JAVASCRIPT, "$.customer.name.toUpperCase()", model.DATA_TYPE_STRING), "WALTER"},
		{"jsonpath", model.NewExpression(model.EXPRESSION_KIND_JSONPATH, "$.customer.tags[1]", model.DATA_TYPE_STRING), "eu"},
		{"jsonpath braces", model.NewExpression(model.EXPRESSION_KIND_JSONPATH, "{$.customer.name}", model.DATA_TYPE_STRING), "walter"},
	}
	evaluator := NewEvaluator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := evaluator.Evaluate(context.Background(), tc.expr, evalCtx)
			require.NoError(t, err)
			coerced, err := tc.expr.ReturnType.Coerce(value)
			require.NoError(t, err)
			require.Equal(t, tc.expected, coerced)
		})
	}
}

func TestEvaluateConstantDate(t *testing.T) {
	value, err := NewEvaluator().Evaluate(context.Background(), model.NewConstantExpression("2024-03-01T10:00:00Z", model.DATA_TYPE_DATE), nil)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), value)
}

func TestEvaluateNilExpression(t *testing.T) {
	value, err := NewEvaluator().Evaluate(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestEvaluateErrors(t *testing.T) {
	evaluator := NewEvaluator()
	for scenario, expr := range map[string]*model.Expression{
		"undefined variable":   model.NewExpression(model.EXPRESSION_KIND_VARIABLE, "missing", model.DATA_TYPE_STRING),
		"bad integer constant": model.NewConstantExpression("abc", model.DATA_TYPE_INTEGER),
		"javascript syntax":    model.NewExpression(model.EXPRESSION_KIND_JAVASCRIPT, "var = ;", model.DATA_TYPE_STRING),
		"unknown kind":         model.NewExpression(model.ExpressionKind("GROOVY"), "1", model.DATA_TYPE_STRING),
	} {
		t.Run(scenario, func(t *testing.T) {
			_, err := evaluator.Evaluate(context.Background(), expr, model.NewExpressionContext(1, model.DATA_CONTAINER_PROCESS_INSTANCE, 1))
			require.Error(t, err)
			var evalErr EvaluationError
			require.True(t, errors.As(err, &evalErr))
			require.Equal(t, expr.Kind, evalErr.Kind)
		})
	}
}
