package model

type LeftOperandType string

const LEFT_OPERAND_DATA LeftOperandType = "DATA"
const LEFT_OPERAND_BUSINESS_DATA LeftOperandType = "BUSINESS_DATA"
const LEFT_OPERAND_SEARCH_INDEX LeftOperandType = "SEARCH_INDEX"
const LEFT_OPERAND_DOCUMENT LeftOperandType = "DOCUMENT"

type OperatorType string

const OPERATOR_ASSIGNMENT OperatorType = "ASSIGNMENT"
const OPERATOR_JAVA_METHOD OperatorType = "JAVA_METHOD"

type LeftOperand struct {
	Name string          `json:"name" yaml:"name"`
	Type LeftOperandType `json:"type" yaml:"type"`
}

// Operation assigns the result of RightOperand to LeftOperand.
type Operation struct {
	LeftOperand  LeftOperand  `json:"leftOperand" yaml:"leftOperand"`
	Type         OperatorType `json:"type" yaml:"type"`
	RightOperand *Expression  `json:"rightOperand" yaml:"rightOperand"`
}

func NewAssignment(leftType LeftOperandType, name string, right *Expression) Operation {
	return Operation{
		LeftOperand:  LeftOperand{Name: name, Type: leftType},
		Type:         OPERATOR_ASSIGNMENT,
		RightOperand: right,
	}
}

type Operations []Operation

// Take removes and returns the first assignment of the given left operand type and name.
// Each operation can be taken at most once.
func (o *Operations) Take(leftType LeftOperandType, name string) (Operation, bool) {
	ops := *o
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		if op.Type != OPERATOR_ASSIGNMENT || op.LeftOperand.Type != leftType || op.LeftOperand.Name != name {
			continue
		}
		rest := make(Operations, 0, len(ops)-1)
		rest = append(rest, ops[:i]...)
		rest = append(rest, ops[i+1:]...)
		*o = rest
		return op, true
	}
	return Operation{}, false
}

// WithDefaultOperator returns a copy where operations without an operator are assignments.
func (o Operations) WithDefaultOperator() Operations {
	res := make(Operations, len(o))
	for i, op := range o {
		if op.Type == "" {
			op.Type = OPERATOR_ASSIGNMENT
		}
		res[i] = op
	}
	return res
}
