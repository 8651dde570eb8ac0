package model

type BusinessDataDefinition struct {
	Name         string      `json:"name" yaml:"name"`
	ClassName    string      `json:"className" yaml:"className"`
	Multiple     bool        `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	DefaultValue *Expression `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// RefBusinessDataInstance binds a business data name to persisted business object ids.
// A simple reference holds DataId (nil when not yet set), a multiple one holds DataIds.
// Exactly one of ProcessInstanceId and FlowNodeInstanceId is set.
type RefBusinessDataInstance struct {
	Id                 int64   `json:"id"`
	Name               string  `json:"name"`
	DataClassName      string  `json:"dataClassName"`
	Multiple           bool    `json:"multiple,omitempty"`
	DataId             *int64  `json:"dataId,omitempty"`
	DataIds            []int64 `json:"dataIds,omitempty"`
	ProcessInstanceId  int64   `json:"processInstanceId,omitempty"`
	FlowNodeInstanceId int64   `json:"flowNodeInstanceId,omitempty"`
}
