package instance

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/actor"
	"github.com/bonitasoft/bonita-engine-sub039/analytics"
	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/connector"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/state"
	"go.uber.org/zap"
)

// Placement locates a new instance in the instance tree.
type Placement struct {
	ProcessDefinitionId int64
	RootContainerId     int64
	ParentContainerId   int64
	ParentContainerType model.ParentContainerType
}

type FlowNodeRequest struct {
	Definition *model.FlowNodeDefinition
	Placement
	RootProcessInstanceId   int64
	ParentProcessInstanceId int64
	// CreateInnerActivity is set when creating one iteration of a loop, the loop
	// characteristics of the definition are then ignored.
	CreateInnerActivity bool
	LoopCounter         int
	StateCategory       model.StateCategory
	// RelatedActivityInstanceId is the activity a boundary event is attached to, -1 otherwise.
	RelatedActivityInstanceId int64
}

type Creator interface {
	CreateFlowNodeInstance(ctx context.Context, req FlowNodeRequest) (*model.FlowNodeInstance, error)
	CreateFlowNodeInstances(ctx context.Context, placement Placement, defs []*model.FlowNodeDefinition, rootProcessInstanceId int64, parentProcessInstanceId int64, stateCategory model.StateCategory) ([]*model.FlowNodeInstance, error)
	CreateInnerInstance(ctx context.Context, outer *model.FlowNodeInstance, def *model.FlowNodeDefinition, loopCounter int) (*model.FlowNodeInstance, error)
}

type constructor func(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error)

var _ Creator = new(creator)

type creator struct {
	flowNodeDao  persistence.FlowNodeInstanceDao
	actors       actor.Resolver
	states       state.Manager
	connectors   connector.Registrar
	collector    analytics.InstantiationDataCollector
	constructors map[model.FlowNodeType]constructor
}

func NewCreator(flowNodeDao persistence.FlowNodeInstanceDao, actors actor.Resolver, states state.Manager, connectors connector.Registrar, collector analytics.InstantiationDataCollector) *creator {
	c := &creator{
		flowNodeDao: flowNodeDao,
		actors:      actors,
		states:      states,
		connectors:  connectors,
		collector:   collector,
	}
	c.constructors = map[model.FlowNodeType]constructor{
		model.FLOWNODE_TYPE_AUTOMATIC_TASK:           c.newAutomaticTask,
		model.FLOWNODE_TYPE_USER_TASK:                c.newHumanTask,
		model.FLOWNODE_TYPE_MANUAL_TASK:              c.newHumanTask,
		model.FLOWNODE_TYPE_RECEIVE_TASK:             c.newReceiveTask,
		model.FLOWNODE_TYPE_SEND_TASK:                c.newSendTask,
		model.FLOWNODE_TYPE_CALL_ACTIVITY:            c.newCallActivity,
		model.FLOWNODE_TYPE_SUB_PROCESS:              c.newSubProcess,
		model.FLOWNODE_TYPE_GATEWAY:                  c.newGateway,
		model.FLOWNODE_TYPE_START_EVENT:              c.newEvent,
		model.FLOWNODE_TYPE_END_EVENT:                c.newEvent,
		model.FLOWNODE_TYPE_INTERMEDIATE_CATCH_EVENT: c.newEvent,
		model.FLOWNODE_TYPE_INTERMEDIATE_THROW_EVENT: c.newEvent,
		model.FLOWNODE_TYPE_BOUNDARY_EVENT:           c.newBoundaryEvent,
	}
	return c
}

func (c *creator) CreateFlowNodeInstance(ctx context.Context, req FlowNodeRequest) (*model.FlowNodeInstance, error) {
	def := req.Definition
	instance, err := c.createFlowNodeInstance(ctx, &req)
	if err != nil {
		logger.Error("error in creating flow node instance", zap.String("flowNode", def.Name), zap.Int64("processDefinitionId", req.ProcessDefinitionId), zap.Error(err))
		c.collector.RecordFlowNodeFailure(req.ProcessDefinitionId, def.Name, err.Error())
		return nil, err
	}
	c.collector.RecordFlowNodeCreated(instance)
	return instance, nil
}

func (c *creator) createFlowNodeInstance(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	def := req.Definition
	if !req.CreateInnerActivity && def.Type.IsActivity() && def.LoopCharacteristics != nil {
		return c.createLoopInstance(ctx, req)
	}
	build, ok := c.constructors[def.Type]
	if !ok {
		return nil, api.ActivityTypeNotFoundError{Type: string(def.Type)}
	}
	instance, err := build(ctx, req)
	if err != nil {
		return nil, err
	}
	instance.LoopCounter = req.LoopCounter
	if err := c.setFirstState(instance, req.StateCategory); err != nil {
		return nil, err
	}
	if err := c.persist(ctx, instance); err != nil {
		return nil, err
	}
	if _, err := c.connectors.CreateConnectorInstances(ctx, instance.Id, model.CONNECTOR_CONTAINER_FLOWNODE, def.Connectors); err != nil {
		return nil, err
	}
	logger.Debug("flow node instance created", zap.Int64("id", instance.Id), zap.String("name", instance.Name), zap.String("type", string(instance.Type)))
	return instance, nil
}

func (c *creator) setFirstState(instance *model.FlowNodeInstance, category model.StateCategory) error {
	st, err := c.states.FirstState(instance.Type)
	if err != nil {
		return err
	}
	instance.State = st
	if category == "" {
		category = model.STATE_CATEGORY_NORMAL
	}
	instance.StateCategory = category
	return nil
}

func (c *creator) persist(ctx context.Context, instance *model.FlowNodeInstance) error {
	switch {
	case instance.Type.IsGateway():
		return c.flowNodeDao.CreateGatewayInstance(ctx, instance)
	case instance.Type.IsEvent():
		return c.flowNodeDao.CreateEventInstance(ctx, instance)
	}
	return c.flowNodeDao.CreateActivityInstance(ctx, instance)
}

func (c *creator) CreateFlowNodeInstances(ctx context.Context, placement Placement, defs []*model.FlowNodeDefinition, rootProcessInstanceId int64, parentProcessInstanceId int64, stateCategory model.StateCategory) ([]*model.FlowNodeInstance, error) {
	instances := make([]*model.FlowNodeInstance, 0, len(defs))
	for _, def := range defs {
		instance, err := c.CreateFlowNodeInstance(ctx, FlowNodeRequest{
			Definition:                def,
			Placement:                 placement,
			RootProcessInstanceId:     rootProcessInstanceId,
			ParentProcessInstanceId:   parentProcessInstanceId,
			LoopCounter:               -1,
			StateCategory:             stateCategory,
			RelatedActivityInstanceId: -1,
		})
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// CreateInnerInstance creates iteration loopCounter of the loop outer, placed under it.
func (c *creator) CreateInnerInstance(ctx context.Context, outer *model.FlowNodeInstance, def *model.FlowNodeDefinition, loopCounter int) (*model.FlowNodeInstance, error) {
	if loopCounter < 0 {
		return nil, api.InvalidLoopCounterError{LoopInstanceId: outer.Id, LoopCounter: loopCounter}
	}
	return c.CreateFlowNodeInstance(ctx, FlowNodeRequest{
		Definition: def,
		Placement: Placement{
			ProcessDefinitionId: outer.ProcessDefinitionId,
			RootContainerId:     outer.RootContainerId,
			ParentContainerId:   outer.Id,
			ParentContainerType: model.PARENT_CONTAINER_FLOWNODE,
		},
		RootProcessInstanceId:     outer.RootProcessInstanceId,
		ParentProcessInstanceId:   outer.ParentProcessInstanceId,
		CreateInnerActivity:       true,
		LoopCounter:               loopCounter,
		StateCategory:             outer.StateCategory,
		RelatedActivityInstanceId: -1,
	})
}
