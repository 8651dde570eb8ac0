package instance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/actor"
	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/connector"
	"github.com/bonitasoft/bonita-engine-sub039/internal/clock"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/persistence/memory"
	"github.com/bonitasoft/bonita-engine-sub039/state"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const processDefinitionId int64 = 7

type recordingCollector struct {
	created  []*model.FlowNodeInstance
	failures []string
}

func (r *recordingCollector) RecordProcessStarted(processDefinitionId int64, processInstanceId int64) {}

func (r *recordingCollector) RecordFlowNodeCreated(instance *model.FlowNodeInstance) {
	r.created = append(r.created, instance)
}

func (r *recordingCollector) RecordFlowNodeFailure(processDefinitionId int64, flowNodeName string, reason string) {
	r.failures = append(r.failures, flowNodeName)
}

type fixture struct {
	creator   *creator
	storage   *persistence.Storage
	collector *recordingCollector
}

func newFixture(t *testing.T) *fixture {
	storage := memory.NewStorage(time.Hour)
	_, err := actor.RegisterActors(context.Background(), storage.Actors,
		model.NewProcessDefinition(processDefinitionId, "expenses", "1.0").WithActor("employee").WithActor("manager"))
	require.NoError(t, err)
	collector := &recordingCollector{}
	return &fixture{
		creator: NewCreator(storage.FlowNodes, actor.NewResolver(storage.Actors), state.NewTable(),
			connector.NewRegistrar(storage.Connectors), collector),
		storage:   storage,
		collector: collector,
	}
}

func request(def *model.FlowNodeDefinition) FlowNodeRequest {
	return FlowNodeRequest{
		Definition: def,
		Placement: Placement{
			ProcessDefinitionId: processDefinitionId,
			RootContainerId:     100,
			ParentContainerId:   100,
			ParentContainerType: model.PARENT_CONTAINER_PROCESS,
		},
		RootProcessInstanceId:     100,
		ParentProcessInstanceId:   100,
		LoopCounter:               -1,
		StateCategory:             model.STATE_CATEGORY_NORMAL,
		RelatedActivityInstanceId: -1,
	}
}

func TestCreateFlowNodeInstance(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, f *fixture){
		"logical group is kept":               testLogicalGroup,
		"standard loop creates outer":         testStandardLoop,
		"multi instance creates outer":        testMultiInstance,
		"human task resolves actor":           testHumanTask,
		"unknown actor creates nothing":       testUnknownActor,
		"connectors in declaration order":     testConnectors,
		"gateway and events":                  testGatewayAndEvents,
		"boundary event records attachment":   testBoundaryEvent,
		"sub process and call activity":       testTriggeredByEvent,
		"unknown kind":                        testUnknownKind,
		"inner instance is placed under loop": testInnerInstance,
		"negative loop counter is rejected":   testNegativeLoopCounter,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, newFixture(t))
		})
	}
}

func testLogicalGroup(t *testing.T, f *fixture) {
	req := request(model.NewFlowNode(1, "check", model.FLOWNODE_TYPE_AUTOMATIC_TASK))
	req.RootProcessInstanceId = 100
	req.ParentProcessInstanceId = 150
	req.ParentContainerId = 150
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), req)
	require.NoError(t, err)

	stored, err := f.storage.FlowNodes.GetFlowNodeInstance(context.Background(), instance.Id)
	require.NoError(t, err)
	require.Equal(t, processDefinitionId, stored.ProcessDefinitionId)
	require.Equal(t, int64(100), stored.RootProcessInstanceId)
	require.Equal(t, int64(150), stored.ParentProcessInstanceId)
	require.Zero(t, stored.ParentActivityInstanceId)
	require.Equal(t, -1, stored.LoopCounter)
	require.Equal(t, state.STATE_INITIALIZING, stored.State)
	require.Equal(t, model.STATE_CATEGORY_NORMAL, stored.StateCategory)
	require.Len(t, f.collector.created, 1)
}

func testStandardLoop(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "retry", model.FLOWNODE_TYPE_AUTOMATIC_TASK).
		WithLoop(model.NewStandardLoop(true)).
		WithConnector("notify", "email", "1.0", model.CONNECTOR_EVENT_ON_ENTER)
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)
	require.Equal(t, model.FLOWNODE_TYPE_LOOP_ACTIVITY, instance.Type)
	require.Equal(t, -1, instance.LoopCounter)
	require.Equal(t, state.STATE_INITIALIZING_LOOP, instance.State)
	require.True(t, instance.TestBefore)
	require.True(t, instance.Sequential)

	connectors, err := f.storage.Connectors.GetConnectorInstances(context.Background(), instance.Id, model.CONNECTOR_CONTAINER_FLOWNODE)
	require.NoError(t, err)
	require.Empty(t, connectors)
}

func testMultiInstance(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "review", model.FLOWNODE_TYPE_USER_TASK).
		WithActor("manager", model.TASK_PRIORITY_HIGHEST).
		WithLoop(model.NewMultiInstanceLoop(false, "items", "results", "item", "result"))
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)
	require.Equal(t, model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY, instance.Type)
	require.Equal(t, -1, instance.LoopCounter)
	require.Equal(t, state.STATE_INITIALIZING_MULTI_INSTANCE, instance.State)
	require.Equal(t, "item", instance.DataInputItemRef)
	require.Equal(t, "result", instance.DataOutputItemRef)
	require.Equal(t, "items", instance.LoopDataInputRef)
	require.Equal(t, "results", instance.LoopDataOutputRef)
	require.False(t, instance.Sequential)
}

func testHumanTask(t *testing.T, f *fixture) {
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return fixed }
	defer func() { clock.NowFunc = time.Now }()

	def := model.NewFlowNode(1, "approve", model.FLOWNODE_TYPE_USER_TASK).
		WithActor("manager", model.TASK_PRIORITY_HIGHEST).
		WithExpectedDuration(60_000)
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)

	manager, err := f.storage.Actors.GetActor(context.Background(), processDefinitionId, "manager")
	require.NoError(t, err)
	require.Equal(t, manager.Id, instance.ActorId)
	require.Equal(t, model.TASK_PRIORITY_HIGHEST, instance.Priority)
	require.Equal(t, fixed.UnixMilli()+60_000, instance.ExpectedEndDate)

	manual, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(2, "sign", model.FLOWNODE_TYPE_MANUAL_TASK).WithActor("employee", "")))
	require.NoError(t, err)
	require.Equal(t, model.TASK_PRIORITY_NORMAL, manual.Priority)
	require.Zero(t, manual.ExpectedEndDate)
}

func testUnknownActor(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "approve", model.FLOWNODE_TYPE_USER_TASK).WithActor("director", model.TASK_PRIORITY_NORMAL)
	_, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	var notFound api.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "director", notFound.Name)

	_, err = f.storage.FlowNodes.GetFlowNodeInstance(context.Background(), 1)
	require.Error(t, err)
	require.Empty(t, f.collector.created)
	require.Equal(t, []string{"approve"}, f.collector.failures)
}

func testConnectors(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "check", model.FLOWNODE_TYPE_AUTOMATIC_TASK).
		WithConnector("c0", "email", "1.0", model.CONNECTOR_EVENT_ON_ENTER).
		WithConnector("c1", "rest", "1.0", model.CONNECTOR_EVENT_ON_FINISH).
		WithConnector("c2", "email", "1.0", model.CONNECTOR_EVENT_ON_FINISH)
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)

	connectors, err := f.storage.Connectors.GetConnectorInstances(context.Background(), instance.Id, model.CONNECTOR_CONTAINER_FLOWNODE)
	require.NoError(t, err)
	require.Len(t, connectors, 3)
	for i, c := range connectors {
		require.Equal(t, i, c.ExecutionOrder)
		require.Equal(t, def.Connectors[i].Name, c.Name)
		require.Equal(t, model.CONNECTOR_STATE_TO_BE_EXECUTED, c.State)
	}
}

func testGatewayAndEvents(t *testing.T, f *fixture) {
	gateway, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(1, "split", model.FLOWNODE_TYPE_GATEWAY).WithGatewayType(model.GATEWAY_TYPE_PARALLEL)))
	require.NoError(t, err)
	require.Equal(t, model.GATEWAY_TYPE_PARALLEL, gateway.GatewayType)
	require.Equal(t, state.STATE_INITIALIZING, gateway.State)

	end, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(2, "done", model.FLOWNODE_TYPE_END_EVENT)))
	require.NoError(t, err)
	require.Equal(t, model.FLOWNODE_TYPE_END_EVENT, end.Type)
	require.NotEqual(t, gateway.Id, end.Id)
}

func testBoundaryEvent(t *testing.T, f *fixture) {
	req := request(model.NewFlowNode(3, "timeout", model.FLOWNODE_TYPE_BOUNDARY_EVENT).AttachedTo(1, true))
	req.RelatedActivityInstanceId = 42
	instance, err := f.creator.CreateFlowNodeInstance(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int64(42), instance.ActivityInstanceId)
	require.True(t, instance.Interrupting)
	require.Equal(t, state.STATE_WAITING, instance.State)
}

func testTriggeredByEvent(t *testing.T, f *fixture) {
	sub, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(1, "on error", model.FLOWNODE_TYPE_SUB_PROCESS).WithSubProcess(true, &model.FlowElementContainer{})))
	require.NoError(t, err)
	require.True(t, sub.TriggeredByEvent)

	call, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(2, "call billing", model.FLOWNODE_TYPE_CALL_ACTIVITY).WithCallableElement(model.NewConstantExpression("billing", model.DATA_TYPE_STRING), nil)))
	require.NoError(t, err)
	require.False(t, call.TriggeredByEvent)
	require.Equal(t, model.FLOWNODE_TYPE_CALL_ACTIVITY, call.Type)
}

func testUnknownKind(t *testing.T, f *fixture) {
	_, err := f.creator.CreateFlowNodeInstance(context.Background(), request(model.NewFlowNode(1, "lane", model.FlowNodeType("LANE"))))
	var typeNotFound api.ActivityTypeNotFoundError
	require.True(t, errors.As(err, &typeNotFound))
	require.Equal(t, "LANE", typeNotFound.Type)
}

func testInnerInstance(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "review", model.FLOWNODE_TYPE_USER_TASK).
		WithActor("manager", model.TASK_PRIORITY_NORMAL).
		WithLoop(model.NewMultiInstanceLoop(true, "items", "", "item", "")).
		WithConnector("c0", "email", "1.0", model.CONNECTOR_EVENT_ON_ENTER)
	outer, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)

	inner, err := f.creator.CreateInnerInstance(context.Background(), outer, def, 2)
	require.NoError(t, err)
	require.Equal(t, model.FLOWNODE_TYPE_USER_TASK, inner.Type)
	require.Equal(t, 2, inner.LoopCounter)
	require.Equal(t, outer.Id, inner.ParentContainerId)
	require.Equal(t, outer.Id, inner.ParentActivityInstanceId)
	require.Equal(t, outer.RootContainerId, inner.RootContainerId)
	require.Equal(t, outer.ParentProcessInstanceId, inner.ParentProcessInstanceId)
	require.True(t, inner.IsIteration())

	connectors, err := f.storage.Connectors.GetConnectorInstances(context.Background(), inner.Id, model.CONNECTOR_CONTAINER_FLOWNODE)
	require.NoError(t, err)
	require.Len(t, connectors, 1)
}

func testNegativeLoopCounter(t *testing.T, f *fixture) {
	def := model.NewFlowNode(1, "check", model.FLOWNODE_TYPE_AUTOMATIC_TASK).
		WithLoop(model.NewMultiInstanceLoop(false, "items", "", "item", ""))
	outer, err := f.creator.CreateFlowNodeInstance(context.Background(), request(def))
	require.NoError(t, err)
	created := len(f.collector.created)

	_, err = f.creator.CreateInnerInstance(context.Background(), outer, def, -1)
	var invalid api.InvalidLoopCounterError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, outer.Id, invalid.LoopInstanceId)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.Len(t, f.collector.created, created)
}

func TestCreateFlowNodeInstances(t *testing.T) {
	f := newFixture(t)
	defs := []*model.FlowNodeDefinition{
		model.NewFlowNode(1, "start", model.FLOWNODE_TYPE_START_EVENT),
		model.NewFlowNode(2, "check", model.FLOWNODE_TYPE_AUTOMATIC_TASK),
	}
	instances, err := f.creator.CreateFlowNodeInstances(context.Background(), Placement{
		ProcessDefinitionId: processDefinitionId,
		RootContainerId:     100,
		ParentContainerId:   100,
		ParentContainerType: model.PARENT_CONTAINER_PROCESS,
	}, defs, 100, 100, model.STATE_CATEGORY_NORMAL)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	for i, instance := range instances {
		require.Equal(t, defs[i].Id, instance.FlowNodeDefinitionId)
		require.Equal(t, -1, instance.LoopCounter)
	}

	defs = append(defs, model.NewFlowNode(3, "approve", model.FLOWNODE_TYPE_USER_TASK).WithActor("nobody", model.TASK_PRIORITY_NORMAL))
	_, err = f.creator.CreateFlowNodeInstances(context.Background(), Placement{ProcessDefinitionId: processDefinitionId}, defs, 100, 100, model.STATE_CATEGORY_NORMAL)
	require.Error(t, err)
}
