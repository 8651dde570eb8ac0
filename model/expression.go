package model

type ExpressionKind string

const EXPRESSION_KIND_CONSTANT ExpressionKind = "CONSTANT"
const EXPRESSION_KIND_VARIABLE ExpressionKind = "VARIABLE"
const EXPRESSION_KIND_EXPR ExpressionKind = "EXPR"
const EXPRESSION_KIND_JAVASCRIPT ExpressionKind = "JAVASCRIPT"
const EXPRESSION_KIND_JSONPATH ExpressionKind = "JSONPATH"

// Expression is a value computation attached to a definition.
type Expression struct {
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Content    string         `json:"content" yaml:"content"`
	Kind       ExpressionKind `json:"kind" yaml:"kind"`
	ReturnType DataType       `json:"returnType,omitempty" yaml:"returnType,omitempty"`
}

func NewConstantExpression(content string, returnType DataType) *Expression {
	return &Expression{
		Name:       content,
		Content:    content,
		Kind:       EXPRESSION_KIND_CONSTANT,
		ReturnType: returnType,
	}
}

func NewExpression(kind ExpressionKind, content string, returnType DataType) *Expression {
	return &Expression{
		Name:       content,
		Content:    content,
		Kind:       kind,
		ReturnType: returnType,
	}
}

// ExpressionContext is what an expression is evaluated against.
type ExpressionContext struct {
	ContainerId         int64
	ContainerType       DataContainerType
	ProcessDefinitionId int64
	InputValues         map[string]any
}

func NewExpressionContext(containerId int64, containerType DataContainerType, processDefinitionId int64) *ExpressionContext {
	return &ExpressionContext{
		ContainerId:         containerId,
		ContainerType:       containerType,
		ProcessDefinitionId: processDefinitionId,
		InputValues:         make(map[string]any),
	}
}

// With returns a copy of the context with an extra input value.
func (c *ExpressionContext) With(name string, value any) *ExpressionContext {
	clone := *c
	clone.InputValues = make(map[string]any, len(c.InputValues)+1)
	for k, v := range c.InputValues {
		clone.InputValues[k] = v
	}
	clone.InputValues[name] = value
	return &clone
}
