package instance

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/internal/clock"
	"github.com/bonitasoft/bonita-engine-sub039/model"
)

// newInstance copies what every kind shares from the definition and the placement.
func newInstance(req *FlowNodeRequest, kind model.FlowNodeType) *model.FlowNodeInstance {
	def := req.Definition
	var parentActivityInstanceId int64
	if req.ParentContainerType == model.PARENT_CONTAINER_FLOWNODE {
		parentActivityInstanceId = req.ParentContainerId
	}
	return &model.FlowNodeInstance{
		Type:                 kind,
		Name:                 def.Name,
		DisplayName:          def.DisplayName,
		Description:          def.Description,
		FlowNodeDefinitionId: def.Id,
		LogicalGroup: model.LogicalGroup{
			ProcessDefinitionId:      req.ProcessDefinitionId,
			RootProcessInstanceId:    req.RootProcessInstanceId,
			ParentActivityInstanceId: parentActivityInstanceId,
			ParentProcessInstanceId:  req.ParentProcessInstanceId,
		},
		RootContainerId:   req.RootContainerId,
		ParentContainerId: req.ParentContainerId,
		LoopCounter:       req.LoopCounter,
	}
}

func (c *creator) newAutomaticTask(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	return newInstance(req, model.FLOWNODE_TYPE_AUTOMATIC_TASK), nil
}

func (c *creator) newReceiveTask(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	return newInstance(req, model.FLOWNODE_TYPE_RECEIVE_TASK), nil
}

func (c *creator) newSendTask(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	return newInstance(req, model.FLOWNODE_TYPE_SEND_TASK), nil
}

// newHumanTask resolves the actor first: no instance exists for an unknown actor.
func (c *creator) newHumanTask(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	def := req.Definition
	human := def.HumanTask
	if human == nil {
		human = &model.HumanTask{}
	}
	actor, err := c.actors.ResolveActor(ctx, req.ProcessDefinitionId, human.ActorName)
	if err != nil {
		return nil, err
	}
	instance := newInstance(req, def.Type)
	instance.ActorId = actor.Id
	instance.Priority = human.Priority
	if instance.Priority == "" {
		instance.Priority = model.TASK_PRIORITY_NORMAL
	}
	if human.ExpectedDuration != nil {
		instance.ExpectedEndDate = clock.Now().UnixMilli() + *human.ExpectedDuration
	}
	return instance, nil
}

func (c *creator) newCallActivity(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	instance := newInstance(req, model.FLOWNODE_TYPE_CALL_ACTIVITY)
	instance.TriggeredByEvent = req.Definition.IsTriggeredByEvent()
	return instance, nil
}

func (c *creator) newSubProcess(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	instance := newInstance(req, model.FLOWNODE_TYPE_SUB_PROCESS)
	instance.TriggeredByEvent = req.Definition.IsTriggeredByEvent()
	return instance, nil
}

func (c *creator) newGateway(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	instance := newInstance(req, model.FLOWNODE_TYPE_GATEWAY)
	instance.GatewayType = req.Definition.GatewayType
	return instance, nil
}

func (c *creator) newEvent(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	return newInstance(req, req.Definition.Type), nil
}

func (c *creator) newBoundaryEvent(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	instance := newInstance(req, model.FLOWNODE_TYPE_BOUNDARY_EVENT)
	instance.ActivityInstanceId = req.RelatedActivityInstanceId
	if req.Definition.Boundary != nil {
		instance.Interrupting = req.Definition.Boundary.Interrupting
	}
	return instance, nil
}
