package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTake(t *testing.T) {
	first := NewAssignment(LEFT_OPERAND_DATA, "a", NewConstantExpression("1", DATA_TYPE_LONG))
	second := NewAssignment(LEFT_OPERAND_DATA, "a", NewConstantExpression("2", DATA_TYPE_LONG))
	business := NewAssignment(LEFT_OPERAND_BUSINESS_DATA, "a", NewConstantExpression("3", DATA_TYPE_LONG))
	method := Operation{LeftOperand: LeftOperand{Name: "b", Type: LEFT_OPERAND_DATA}, Type: OPERATOR_JAVA_METHOD}
	ops := Operations{method, business, first, second}

	op, ok := ops.Take(LEFT_OPERAND_DATA, "a")
	require.True(t, ok)
	require.Equal(t, first, op)
	require.Equal(t, Operations{method, business, second}, ops)

	op, ok = ops.Take(LEFT_OPERAND_DATA, "a")
	require.True(t, ok)
	require.Equal(t, second, op)

	_, ok = ops.Take(LEFT_OPERAND_DATA, "a")
	require.False(t, ok)

	_, ok = ops.Take(LEFT_OPERAND_DATA, "b")
	require.False(t, ok)
	require.Equal(t, Operations{method, business}, ops)
}

func TestWithDefaultOperator(t *testing.T) {
	untyped := Operation{LeftOperand: LeftOperand{Name: "a", Type: LEFT_OPERAND_DATA}, RightOperand: NewConstantExpression("1", DATA_TYPE_LONG)}
	method := Operation{LeftOperand: LeftOperand{Name: "b", Type: LEFT_OPERAND_DATA}, Type: OPERATOR_JAVA_METHOD}
	ops := Operations{untyped, method}

	defaulted := ops.WithDefaultOperator()
	require.Equal(t, OPERATOR_ASSIGNMENT, defaulted[0].Type)
	require.Equal(t, OPERATOR_JAVA_METHOD, defaulted[1].Type)
	require.Equal(t, OperatorType(""), ops[0].Type)

	op, ok := defaulted.Take(LEFT_OPERAND_DATA, "a")
	require.True(t, ok)
	require.Equal(t, "a", op.LeftOperand.Name)
}
