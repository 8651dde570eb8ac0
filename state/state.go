// Package state holds the state a flow node instance is created in.
package state

import (
	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
)

var STATE_INITIALIZING = model.FlowNodeState{Id: 0, Name: "initializing"}
var STATE_WAITING = model.FlowNodeState{Id: 33, Name: "waiting"}
var STATE_INITIALIZING_LOOP = model.FlowNodeState{Id: 61, Name: "initializing loop"}
var STATE_INITIALIZING_MULTI_INSTANCE = model.FlowNodeState{Id: 62, Name: "initializing multi instance"}

type Manager interface {
	FirstState(kind model.FlowNodeType) (model.FlowNodeState, error)
}

var _ Manager = new(table)

type table struct {
	first map[model.FlowNodeType]model.FlowNodeState
}

func NewTable() *table {
	first := map[model.FlowNodeType]model.FlowNodeState{
		model.FLOWNODE_TYPE_BOUNDARY_EVENT:          STATE_WAITING,
		model.FLOWNODE_TYPE_LOOP_ACTIVITY:           STATE_INITIALIZING_LOOP,
		model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY: STATE_INITIALIZING_MULTI_INSTANCE,
	}
	for _, kind := range []model.FlowNodeType{
		model.FLOWNODE_TYPE_AUTOMATIC_TASK,
		model.FLOWNODE_TYPE_USER_TASK,
		model.FLOWNODE_TYPE_MANUAL_TASK,
		model.FLOWNODE_TYPE_RECEIVE_TASK,
		model.FLOWNODE_TYPE_SEND_TASK,
		model.FLOWNODE_TYPE_CALL_ACTIVITY,
		model.FLOWNODE_TYPE_SUB_PROCESS,
		model.FLOWNODE_TYPE_GATEWAY,
		model.FLOWNODE_TYPE_START_EVENT,
		model.FLOWNODE_TYPE_END_EVENT,
		model.FLOWNODE_TYPE_INTERMEDIATE_CATCH_EVENT,
		model.FLOWNODE_TYPE_INTERMEDIATE_THROW_EVENT,
	} {
		first[kind] = STATE_INITIALIZING
	}
	return &table{first: first}
}

func (t *table) FirstState(kind model.FlowNodeType) (model.FlowNodeState, error) {
	st, ok := t.first[kind]
	if !ok {
		return model.FlowNodeState{}, api.ActivityTypeNotFoundError{Type: string(kind)}
	}
	return st, nil
}
