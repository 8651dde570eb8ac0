package model

type FlowNodeType string

const FLOWNODE_TYPE_AUTOMATIC_TASK FlowNodeType = "AUTOMATIC_TASK"
const FLOWNODE_TYPE_USER_TASK FlowNodeType = "USER_TASK"
const FLOWNODE_TYPE_MANUAL_TASK FlowNodeType = "MANUAL_TASK"
const FLOWNODE_TYPE_RECEIVE_TASK FlowNodeType = "RECEIVE_TASK"
const FLOWNODE_TYPE_SEND_TASK FlowNodeType = "SEND_TASK"
const FLOWNODE_TYPE_CALL_ACTIVITY FlowNodeType = "CALL_ACTIVITY"
const FLOWNODE_TYPE_SUB_PROCESS FlowNodeType = "SUB_PROCESS"
const FLOWNODE_TYPE_LOOP_ACTIVITY FlowNodeType = "LOOP_ACTIVITY"
const FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY FlowNodeType = "MULTI_INSTANCE_ACTIVITY"
const FLOWNODE_TYPE_GATEWAY FlowNodeType = "GATEWAY"
const FLOWNODE_TYPE_START_EVENT FlowNodeType = "START_EVENT"
const FLOWNODE_TYPE_END_EVENT FlowNodeType = "END_EVENT"
const FLOWNODE_TYPE_INTERMEDIATE_CATCH_EVENT FlowNodeType = "INTERMEDIATE_CATCH_EVENT"
const FLOWNODE_TYPE_INTERMEDIATE_THROW_EVENT FlowNodeType = "INTERMEDIATE_THROW_EVENT"
const FLOWNODE_TYPE_BOUNDARY_EVENT FlowNodeType = "BOUNDARY_EVENT"

// IsActivity reports whether instances of the type are stored as activities.
func (t FlowNodeType) IsActivity() bool {
	switch t {
	case FLOWNODE_TYPE_AUTOMATIC_TASK, FLOWNODE_TYPE_USER_TASK, FLOWNODE_TYPE_MANUAL_TASK,
		FLOWNODE_TYPE_RECEIVE_TASK, FLOWNODE_TYPE_SEND_TASK, FLOWNODE_TYPE_CALL_ACTIVITY,
		FLOWNODE_TYPE_SUB_PROCESS, FLOWNODE_TYPE_LOOP_ACTIVITY, FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY:
		return true
	}
	return false
}

func (t FlowNodeType) IsGateway() bool {
	return t == FLOWNODE_TYPE_GATEWAY
}

func (t FlowNodeType) IsEvent() bool {
	switch t {
	case FLOWNODE_TYPE_START_EVENT, FLOWNODE_TYPE_END_EVENT, FLOWNODE_TYPE_INTERMEDIATE_CATCH_EVENT,
		FLOWNODE_TYPE_INTERMEDIATE_THROW_EVENT, FLOWNODE_TYPE_BOUNDARY_EVENT:
		return true
	}
	return false
}

func (t FlowNodeType) IsHumanTask() bool {
	return t == FLOWNODE_TYPE_USER_TASK || t == FLOWNODE_TYPE_MANUAL_TASK
}

type GatewayType string

const GATEWAY_TYPE_EXCLUSIVE GatewayType = "EXCLUSIVE"
const GATEWAY_TYPE_INCLUSIVE GatewayType = "INCLUSIVE"
const GATEWAY_TYPE_PARALLEL GatewayType = "PARALLEL"

type TaskPriority string

const TASK_PRIORITY_LOWEST TaskPriority = "LOWEST"
const TASK_PRIORITY_UNDER_NORMAL TaskPriority = "UNDER_NORMAL"
const TASK_PRIORITY_NORMAL TaskPriority = "NORMAL"
const TASK_PRIORITY_ABOVE_NORMAL TaskPriority = "ABOVE_NORMAL"
const TASK_PRIORITY_HIGHEST TaskPriority = "HIGHEST"

type LoopType string

const LOOP_TYPE_STANDARD LoopType = "STANDARD"
const LOOP_TYPE_MULTI_INSTANCE LoopType = "MULTI_INSTANCE"

type EventTriggerType string

const EVENT_TRIGGER_MESSAGE EventTriggerType = "MESSAGE"
const EVENT_TRIGGER_SIGNAL EventTriggerType = "SIGNAL"
const EVENT_TRIGGER_TIMER EventTriggerType = "TIMER"
const EVENT_TRIGGER_ERROR EventTriggerType = "ERROR"
const EVENT_TRIGGER_TERMINATE EventTriggerType = "TERMINATE"
