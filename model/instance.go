package model

type StateCategory string

const STATE_CATEGORY_NORMAL StateCategory = "NORMAL"
const STATE_CATEGORY_ABORTING StateCategory = "ABORTING"
const STATE_CATEGORY_CANCELLING StateCategory = "CANCELLING"

type FlowNodeState struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type ParentContainerType string

const PARENT_CONTAINER_PROCESS ParentContainerType = "PROCESS"
const PARENT_CONTAINER_FLOWNODE ParentContainerType = "FLOWNODE"

// LogicalGroup links an instance to its process definition and enclosing instances.
type LogicalGroup struct {
	ProcessDefinitionId      int64 `json:"processDefinitionId"`
	RootProcessInstanceId    int64 `json:"rootProcessInstanceId"`
	ParentActivityInstanceId int64 `json:"parentActivityInstanceId"`
	ParentProcessInstanceId  int64 `json:"parentProcessInstanceId"`
}

// FlowNodeInstance is the runtime counterpart of a FlowNodeDefinition.
// Fields after LoopCounter are set only for the kinds they apply to.
type FlowNodeInstance struct {
	Id                   int64         `json:"id"`
	Type                 FlowNodeType  `json:"type"`
	Name                 string        `json:"name"`
	DisplayName          string        `json:"displayName,omitempty"`
	Description          string        `json:"description,omitempty"`
	FlowNodeDefinitionId int64         `json:"flowNodeDefinitionId"`
	State                FlowNodeState `json:"state"`
	StateCategory        StateCategory `json:"stateCategory"`
	LogicalGroup
	RootContainerId   int64 `json:"rootContainerId"`
	ParentContainerId int64 `json:"parentContainerId"`
	LoopCounter       int   `json:"loopCounter"`

	ActorId         int64        `json:"actorId,omitempty"`
	AssigneeId      int64        `json:"assigneeId,omitempty"`
	Priority        TaskPriority `json:"priority,omitempty"`
	ExpectedEndDate int64        `json:"expectedEndDate,omitempty"`

	GatewayType GatewayType `json:"gatewayType,omitempty"`
	HitBys      string      `json:"hitBys,omitempty"`

	ActivityInstanceId int64 `json:"activityInstanceId,omitempty"`
	Interrupting       bool  `json:"interrupting,omitempty"`

	TriggeredByEvent bool `json:"triggeredByEvent,omitempty"`

	Sequential        bool   `json:"sequential,omitempty"`
	TestBefore        bool   `json:"testBefore,omitempty"`
	LoopDataInputRef  string `json:"loopDataInputRef,omitempty"`
	LoopDataOutputRef string `json:"loopDataOutputRef,omitempty"`
	DataInputItemRef  string `json:"dataInputItemRef,omitempty"`
	DataOutputItemRef string `json:"dataOutputItemRef,omitempty"`
}

// IsIteration reports whether the instance was created as one iteration of a loop.
func (f *FlowNodeInstance) IsIteration() bool {
	return f.LoopCounter >= 0
}
