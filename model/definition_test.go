package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nestedProcess() *ProcessDefinition {
	inner := &FlowElementContainer{}
	inner.AddFlowNode(NewFlowNode(21, "inner task", FLOWNODE_TYPE_AUTOMATIC_TASK))
	handler := &FlowElementContainer{}
	handler.AddFlowNode(NewFlowNode(31, "handler start", FLOWNODE_TYPE_START_EVENT))
	def := NewProcessDefinition(1, "nested", "1.0").
		AddFlowNode(NewFlowNode(1, "task", FLOWNODE_TYPE_USER_TASK)).
		AddFlowNode(NewFlowNode(2, "sub", FLOWNODE_TYPE_SUB_PROCESS).WithSubProcess(false, inner)).
		AddFlowNode(NewFlowNode(3, "handler", FLOWNODE_TYPE_SUB_PROCESS).WithSubProcess(true, handler)).
		AddFlowNode(NewFlowNode(4, "timer", FLOWNODE_TYPE_BOUNDARY_EVENT).AttachedTo(1, false)).
		AddFlowNode(NewFlowNode(5, "end", FLOWNODE_TYPE_END_EVENT))
	def.Container.AddTransition(1, 5)
	return def
}

func names(defs []*FlowNodeDefinition) []string {
	res := make([]string, 0, len(defs))
	for _, def := range defs {
		res = append(res, def.Name)
	}
	return res
}

func TestWalk(t *testing.T) {
	def := nestedProcess()
	var visited []string
	var parents []string
	def.Container.Walk(func(parent *FlowNodeDefinition, node *FlowNodeDefinition) bool {
		visited = append(visited, node.Name)
		if parent != nil {
			parents = append(parents, parent.Name)
		}
		return true
	})
	require.Equal(t, []string{"task", "sub", "inner task", "handler", "handler start", "timer", "end"}, visited)
	require.Equal(t, []string{"sub", "handler"}, parents)

	var count int
	completed := def.Container.Walk(func(_ *FlowNodeDefinition, _ *FlowNodeDefinition) bool {
		count++
		return count < 2
	})
	require.False(t, completed)
	require.Equal(t, 2, count)
}

func TestFlowNodeLookup(t *testing.T) {
	def := nestedProcess()
	require.Equal(t, "inner task", def.FlowNode(21).Name)
	require.Nil(t, def.FlowNode(99))
	require.Nil(t, (&ProcessDefinition{}).FlowNode(1))
}

func TestStartFlowNodes(t *testing.T) {
	require.Equal(t, []string{"task", "sub"}, names(nestedProcess().Container.StartFlowNodes()))
}

func TestEventSubProcesses(t *testing.T) {
	require.Equal(t, []string{"handler"}, names(nestedProcess().Container.EventSubProcesses()))
}

func TestIsTriggeredByEvent(t *testing.T) {
	def := nestedProcess()
	require.False(t, def.FlowNode(2).IsTriggeredByEvent())
	require.True(t, def.FlowNode(3).IsTriggeredByEvent())
	require.False(t, NewFlowNode(6, "call", FLOWNODE_TYPE_CALL_ACTIVITY).WithCallableElement(nil, nil).IsTriggeredByEvent())
	require.False(t, NewFlowNode(7, "task", FLOWNODE_TYPE_USER_TASK).IsTriggeredByEvent())
}
