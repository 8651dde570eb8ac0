package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence/memory"
	"github.com/stretchr/testify/require"
)

var declared = []model.ConnectorDefinition{
	{Name: "c0", ConnectorId: "email", Version: "1.0", ActivationEvent: model.CONNECTOR_EVENT_ON_ENTER},
	{Name: "c1", ConnectorId: "rest", Version: "2.1", ActivationEvent: model.CONNECTOR_EVENT_ON_FINISH},
	{Name: "c2", ConnectorId: "email", Version: "1.0", ActivationEvent: model.CONNECTOR_EVENT_ON_ENTER},
}

func TestBuildConnectorInstances(t *testing.T) {
	instances := BuildConnectorInstances(12, model.CONNECTOR_CONTAINER_FLOWNODE, declared)
	require.Len(t, instances, 3)
	for i, instance := range instances {
		require.Equal(t, i, instance.ExecutionOrder)
		require.Equal(t, declared[i].Name, instance.Name)
		require.Equal(t, declared[i].ConnectorId, instance.ConnectorId)
		require.Equal(t, declared[i].Version, instance.Version)
		require.Equal(t, declared[i].ActivationEvent, instance.ActivationEvent)
		require.Equal(t, model.CONNECTOR_STATE_TO_BE_EXECUTED, instance.State)
		require.Equal(t, int64(12), instance.ContainerId)
		require.Zero(t, instance.Id)
	}
}

func TestCreateConnectorInstances(t *testing.T) {
	ctx := context.Background()
	dao := memory.NewConnectorInstanceDao(memory.NewSequenceDao())
	created, err := NewRegistrar(dao).CreateConnectorInstances(ctx, 12, model.CONNECTOR_CONTAINER_PROCESS, declared)
	require.NoError(t, err)
	require.Len(t, created, 3)

	stored, err := dao.GetConnectorInstances(ctx, 12, model.CONNECTOR_CONTAINER_PROCESS)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i := range stored {
		require.Equal(t, created[i].Id, stored[i].Id)
		require.Equal(t, "c"+string(rune('0'+i)), stored[i].Name)
	}
}

func TestCreateConnectorInstancesEmpty(t *testing.T) {
	created, err := NewRegistrar(memory.NewConnectorInstanceDao(memory.NewSequenceDao())).
		CreateConnectorInstances(context.Background(), 1, model.CONNECTOR_CONTAINER_FLOWNODE, nil)
	require.NoError(t, err)
	require.Empty(t, created)
}

type failingConnectorDao struct {
	calls int
}

func (f *failingConnectorDao) CreateConnectorInstance(ctx context.Context, connector *model.ConnectorInstance) error {
	f.calls++
	if f.calls == 2 {
		return errors.New("disk full")
	}
	return nil
}

func (f *failingConnectorDao) GetConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType) ([]*model.ConnectorInstance, error) {
	return nil, nil
}

func TestCreateConnectorInstancesStopsOnError(t *testing.T) {
	dao := &failingConnectorDao{}
	_, err := NewRegistrar(dao).CreateConnectorInstances(context.Background(), 1, model.CONNECTOR_CONTAINER_FLOWNODE, declared)
	require.Error(t, err)
	require.Equal(t, 2, dao.calls)
}
