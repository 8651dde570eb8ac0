package state

import (
	"errors"
	"testing"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFirstState(t *testing.T) {
	tests := []struct {
		kind     model.FlowNodeType
		expected model.FlowNodeState
	}{
		{model.FLOWNODE_TYPE_USER_TASK, STATE_INITIALIZING},
		{model.FLOWNODE_TYPE_AUTOMATIC_TASK, STATE_INITIALIZING},
		{model.FLOWNODE_TYPE_GATEWAY, STATE_INITIALIZING},
		{model.FLOWNODE_TYPE_START_EVENT, STATE_INITIALIZING},
		{model.FLOWNODE_TYPE_BOUNDARY_EVENT, STATE_WAITING},
		{model.FLOWNODE_TYPE_LOOP_ACTIVITY, STATE_INITIALIZING_LOOP},
		{model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY, STATE_INITIALIZING_MULTI_INSTANCE},
	}
	manager := NewTable()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			st, err := manager.FirstState(tt.kind)
			require.NoError(t, err)
			require.Equal(t, tt.expected, st)
		})
	}
}

func TestFirstStateUnknownKind(t *testing.T) {
	_, err := NewTable().FirstState("LANE")
	var notFound api.ActivityTypeNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, codes.Internal, status.Code(err))
}
