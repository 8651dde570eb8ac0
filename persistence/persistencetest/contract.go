// Package persistencetest holds the behaviour every storage backend must share.
package persistencetest

import (
	"context"
	"errors"
	"testing"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/stretchr/testify/require"
)

// RunStorageContract runs every scenario against a fresh storage built by newStorage.
func RunStorageContract(t *testing.T, newStorage func(t *testing.T) *persistence.Storage) {
	for scenario, fn := range map[string]func(t *testing.T, storage *persistence.Storage){
		"sequence is increasing":                   testSequence,
		"process definition round trip":            testProcessDefinition,
		"actor lookup by process definition":       testActor,
		"flow nodes share one id space":            testFlowNodes,
		"data instances by container":              testDataInstances,
		"transient data instances by container":    testTransientDataInstances,
		"connectors are listed by execution order": testConnectorOrder,
		"business data references by scope":        testRefBusinessData,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, newStorage(t))
		})
	}
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var notFound api.NotFoundError
	require.True(t, errors.As(err, &notFound), "expected not found, got %v", err)
}

func testSequence(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	first, err := storage.Sequence.NextId(ctx, "test")
	require.NoError(t, err)
	second, err := storage.Sequence.NextId(ctx, "test")
	require.NoError(t, err)
	require.Equal(t, first+1, second)

	other, err := storage.Sequence.NextId(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, int64(1), other)
}

func testProcessDefinition(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	def := model.NewProcessDefinition(7, "order", "1.0").
		WithActor("clerk").
		AddFlowNode(model.NewFlowNode(1, "review", model.FLOWNODE_TYPE_USER_TASK).WithActor("clerk", model.TASK_PRIORITY_NORMAL))
	require.NoError(t, storage.Definitions.SaveProcessDefinition(ctx, def))

	res, err := storage.Definitions.GetProcessDefinition(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "order", res.Name)
	require.Equal(t, "clerk", res.FlowNode(1).HumanTask.ActorName)

	_, err = storage.Definitions.GetProcessDefinition(ctx, 8)
	requireNotFound(t, err)
}

func testActor(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	actor := &model.Actor{Name: "clerk", ProcessDefinitionId: 7}
	require.NoError(t, storage.Actors.SaveActor(ctx, actor))
	require.NotZero(t, actor.Id)

	res, err := storage.Actors.GetActor(ctx, 7, "clerk")
	require.NoError(t, err)
	require.Equal(t, actor.Id, res.Id)

	_, err = storage.Actors.GetActor(ctx, 8, "clerk")
	requireNotFound(t, err)
	_, err = storage.Actors.GetActor(ctx, 7, "manager")
	requireNotFound(t, err)
}

func testFlowNodes(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	activity := &model.FlowNodeInstance{Name: "review", Type: model.FLOWNODE_TYPE_USER_TASK, LoopCounter: -1}
	gateway := &model.FlowNodeInstance{Name: "split", Type: model.FLOWNODE_TYPE_GATEWAY, LoopCounter: -1}
	event := &model.FlowNodeInstance{Name: "start", Type: model.FLOWNODE_TYPE_START_EVENT, LoopCounter: -1}
	require.NoError(t, storage.FlowNodes.CreateActivityInstance(ctx, activity))
	require.NoError(t, storage.FlowNodes.CreateGatewayInstance(ctx, gateway))
	require.NoError(t, storage.FlowNodes.CreateEventInstance(ctx, event))

	require.NotEqual(t, activity.Id, gateway.Id)
	require.NotEqual(t, gateway.Id, event.Id)
	require.NotEqual(t, activity.Id, event.Id)

	res, err := storage.FlowNodes.GetFlowNodeInstance(ctx, gateway.Id)
	require.NoError(t, err)
	require.Equal(t, "split", res.Name)
	require.Equal(t, -1, res.LoopCounter)

	_, err = storage.FlowNodes.GetFlowNodeInstance(ctx, 999)
	requireNotFound(t, err)
}

func runDataContract(t *testing.T, dao persistence.DataInstanceDao) {
	ctx := context.Background()
	count, err := model.NewDataInstance(&model.DataDefinition{Name: "count", Type: model.DATA_TYPE_INTEGER}, 5, 10, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	items, err := model.NewDataInstance(&model.DataDefinition{Name: "items", Type: model.DATA_TYPE_LIST}, []string{"a", "b"}, 10, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	other, err := model.NewDataInstance(&model.DataDefinition{Name: "count", Type: model.DATA_TYPE_INTEGER}, 1, 10, model.DATA_CONTAINER_PROCESS_INSTANCE)
	require.NoError(t, err)
	for _, data := range []*model.DataInstance{count, items, other} {
		require.NoError(t, dao.CreateDataInstance(ctx, data))
	}

	res, err := dao.GetDataInstance(ctx, "count", 10, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	require.Equal(t, int64(5), res.Value)

	res, err = dao.GetDataInstance(ctx, "items", 10, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b"}, res.Value)

	all, err := dao.GetDataInstances(ctx, 10, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "count", all[0].Name)
	require.Equal(t, "items", all[1].Name)

	_, err = dao.GetDataInstance(ctx, "items", 10, model.DATA_CONTAINER_PROCESS_INSTANCE)
	requireNotFound(t, err)
}

func testDataInstances(t *testing.T, storage *persistence.Storage) {
	runDataContract(t, storage.Data)
}

func testTransientDataInstances(t *testing.T, storage *persistence.Storage) {
	runDataContract(t, storage.TransientData)
}

func testConnectorOrder(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	for _, order := range []int{2, 0, 1} {
		connector := &model.ConnectorInstance{
			Name:           "c" + string(rune('0'+order)),
			ContainerId:    3,
			ContainerType:  model.CONNECTOR_CONTAINER_FLOWNODE,
			State:          model.CONNECTOR_STATE_TO_BE_EXECUTED,
			ExecutionOrder: order,
		}
		require.NoError(t, storage.Connectors.CreateConnectorInstance(ctx, connector))
	}

	res, err := storage.Connectors.GetConnectorInstances(ctx, 3, model.CONNECTOR_CONTAINER_FLOWNODE)
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i, connector := range res {
		require.Equal(t, i, connector.ExecutionOrder)
		require.Equal(t, "c"+string(rune('0'+i)), connector.Name)
	}

	res, err = storage.Connectors.GetConnectorInstances(ctx, 3, model.CONNECTOR_CONTAINER_PROCESS)
	require.NoError(t, err)
	require.Empty(t, res)
}

func testRefBusinessData(t *testing.T, storage *persistence.Storage) {
	ctx := context.Background()
	multi := &model.RefBusinessDataInstance{Name: "invoices", DataClassName: "Invoice", Multiple: true, DataIds: []int64{4, 5}, ProcessInstanceId: 20}
	require.NoError(t, storage.RefBusinessData.CreateRefBusinessDataInstance(ctx, multi))
	dataId := int64(5)
	simple := &model.RefBusinessDataInstance{Name: "invoice", DataClassName: "Invoice", DataId: &dataId, FlowNodeInstanceId: 30}
	require.NoError(t, storage.RefBusinessData.CreateRefBusinessDataInstance(ctx, simple))

	res, err := storage.RefBusinessData.GetProcessRefBusinessDataInstance(ctx, "invoices", 20)
	require.NoError(t, err)
	require.Equal(t, []int64{4, 5}, res.DataIds)

	res, err = storage.RefBusinessData.GetFlowNodeRefBusinessDataInstance(ctx, "invoice", 30)
	require.NoError(t, err)
	require.Equal(t, int64(5), *res.DataId)

	_, err = storage.RefBusinessData.GetProcessRefBusinessDataInstance(ctx, "invoice", 20)
	requireNotFound(t, err)
	_, err = storage.RefBusinessData.GetFlowNodeRefBusinessDataInstance(ctx, "invoice", 31)
	requireNotFound(t, err)
}
