package service

import (
	"context"
	"fmt"

	"github.com/bonitasoft/bonita-engine-sub039/analytics"
	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/connector"
	"github.com/bonitasoft/bonita-engine-sub039/data"
	"github.com/bonitasoft/bonita-engine-sub039/instance"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/metadata"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"go.uber.org/zap"
)

type StartRequest struct {
	ProcessDefinitionId int64 `json:"processDefinitionId"`
	// ProcessInstanceId is allocated when zero.
	ProcessInstanceId int64            `json:"processInstanceId,omitempty"`
	Operations        model.Operations `json:"operations,omitempty"`
	Inputs            map[string]any   `json:"inputs,omitempty"`
}

type StartResult struct {
	ProcessInstanceId int64                            `json:"processInstanceId"`
	Data              []*model.DataInstance            `json:"data"`
	BusinessData      []*model.RefBusinessDataInstance `json:"businessData"`
	Connectors        []*model.ConnectorInstance       `json:"connectors"`
	FlowNodes         []*model.FlowNodeInstance        `json:"flowNodes"`
	// UnusedOperations are the operations no data or business data consumed.
	UnusedOperations model.Operations `json:"unusedOperations,omitempty"`
}

type IterationRequest struct {
	LoopInstanceId int64 `json:"loopInstanceId"`
	LoopCounter    int   `json:"loopCounter"`
}

type IterationResult struct {
	FlowNode *model.FlowNodeInstance `json:"flowNode"`
	Data     []*model.DataInstance   `json:"data"`
}

type InstantiationService struct {
	metadataService metadata.MetadataService
	storage         *persistence.Storage
	creator         instance.Creator
	binder          data.Binder
	connectors      connector.Registrar
	collector       analytics.InstantiationDataCollector
}

func NewInstantiationService(metadataService metadata.MetadataService, storage *persistence.Storage, creator instance.Creator,
	binder data.Binder, connectors connector.Registrar, collector analytics.InstantiationDataCollector) *InstantiationService {
	return &InstantiationService{
		metadataService: metadataService,
		storage:         storage,
		creator:         creator,
		binder:          binder,
		connectors:      connectors,
		collector:       collector,
	}
}

// StartProcess binds the process data, business data and connectors of a new process
// instance, then creates its start flow nodes and the data of the activities among them.
func (s *InstantiationService) StartProcess(ctx context.Context, req StartRequest) (*StartResult, error) {
	def, err := s.metadataService.GetProcessDefinition(ctx, req.ProcessDefinitionId)
	if err != nil {
		return nil, err
	}
	processInstanceId := req.ProcessInstanceId
	if processInstanceId == 0 {
		processInstanceId, err = s.storage.Sequence.NextId(ctx, persistence.SEQ_PROCESS_INSTANCE)
		if err != nil {
			return nil, err
		}
	}
	operations := req.Operations.WithDefaultOperator()
	result := &StartResult{ProcessInstanceId: processInstanceId}

	result.Data, err = s.binder.CreateProcessDataInstances(ctx, def, processInstanceId, &operations, req.Inputs)
	if err != nil {
		return nil, err
	}
	evalCtx := model.NewExpressionContext(processInstanceId, model.DATA_CONTAINER_PROCESS_INSTANCE, def.Id)
	for name, value := range req.Inputs {
		evalCtx.InputValues[name] = value
	}
	for _, bound := range result.Data {
		evalCtx.InputValues[bound.Name] = bound.Value
	}
	result.BusinessData, err = s.binder.CreateBusinessDataReferences(ctx, def, processInstanceId, &operations, evalCtx)
	if err != nil {
		return nil, err
	}
	result.Connectors, err = s.connectors.CreateConnectorInstances(ctx, processInstanceId, model.CONNECTOR_CONTAINER_PROCESS, def.Connectors)
	if err != nil {
		return nil, err
	}

	placement := instance.Placement{
		ProcessDefinitionId: def.Id,
		RootContainerId:     processInstanceId,
		ParentContainerId:   processInstanceId,
		ParentContainerType: model.PARENT_CONTAINER_PROCESS,
	}
	result.FlowNodes, err = s.creator.CreateFlowNodeInstances(ctx, placement, def.Container.StartFlowNodes(), processInstanceId, processInstanceId, model.STATE_CATEGORY_NORMAL)
	if err != nil {
		return nil, err
	}
	for _, flowNode := range result.FlowNodes {
		if !flowNode.Type.IsActivity() {
			continue
		}
		if _, err := s.binder.CreateActivityDataInstances(ctx, def, flowNode); err != nil {
			return nil, err
		}
	}
	if len(operations) > 0 {
		result.UnusedOperations = operations
		logger.Warn("operations not matching any data", zap.Int64("processInstanceId", processInstanceId), zap.Int("count", len(operations)))
	}
	s.collector.RecordProcessStarted(def.Id, processInstanceId)
	logger.Info("process started", zap.Int64("processDefinitionId", def.Id), zap.Int64("processInstanceId", processInstanceId), zap.Int("flowNodes", len(result.FlowNodes)))
	return result, nil
}

// CreateIteration creates iteration loopCounter of a loop or multi-instance activity and binds its data.
func (s *InstantiationService) CreateIteration(ctx context.Context, req IterationRequest) (*IterationResult, error) {
	outer, err := s.storage.FlowNodes.GetFlowNodeInstance(ctx, req.LoopInstanceId)
	if err != nil {
		return nil, err
	}
	if outer.Type != model.FLOWNODE_TYPE_LOOP_ACTIVITY && outer.Type != model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY {
		return nil, api.NotFoundError{Entity: "loop activity instance", Name: fmt.Sprint(req.LoopInstanceId)}
	}
	def, err := s.metadataService.GetProcessDefinition(ctx, outer.ProcessDefinitionId)
	if err != nil {
		return nil, err
	}
	flowNode := def.FlowNode(outer.FlowNodeDefinitionId)
	if flowNode == nil {
		return nil, api.NotFoundError{Entity: "flow node definition", Name: fmt.Sprint(outer.FlowNodeDefinitionId), Scope: fmt.Sprintf("process definition %d", def.Id)}
	}
	inner, err := s.creator.CreateInnerInstance(ctx, outer, flowNode, req.LoopCounter)
	if err != nil {
		return nil, err
	}
	bound, err := s.binder.CreateActivityDataInstances(ctx, def, inner)
	if err != nil {
		return nil, err
	}
	return &IterationResult{FlowNode: inner, Data: bound}, nil
}

func (s *InstantiationService) GetFlowNodeInstance(ctx context.Context, id int64) (*model.FlowNodeInstance, error) {
	return s.storage.FlowNodes.GetFlowNodeInstance(ctx, id)
}

// GetDataInstances lists durable then transient data of a container.
func (s *InstantiationService) GetDataInstances(ctx context.Context, containerId int64, containerType model.DataContainerType) ([]*model.DataInstance, error) {
	durable, err := s.storage.Data.GetDataInstances(ctx, containerId, containerType)
	if err != nil {
		return nil, err
	}
	transient, err := s.storage.TransientData.GetDataInstances(ctx, containerId, containerType)
	if err != nil {
		return nil, err
	}
	return append(durable, transient...), nil
}

func (s *InstantiationService) GetConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType) ([]*model.ConnectorInstance, error) {
	return s.storage.Connectors.GetConnectorInstances(ctx, containerId, containerType)
}
