package data

import (
	"context"
	"errors"
	"fmt"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/expression"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"go.uber.org/zap"
)

// DataRequest describes the data instances to create for one container.
// The loop fields are only read for an iteration of a multi-instance activity.
type DataRequest struct {
	Definitions   []model.DataDefinition
	ContainerId   int64
	ContainerType model.DataContainerType
	Context       *model.ExpressionContext
	// Operations overriding default values, consumed as they match.
	Operations *model.Operations

	LoopDataInputRef  string
	LoopCounter       int
	DataInputItemRef  string
	ParentContainerId int64
	ProcessInstanceId int64
}

func (r *DataRequest) bindsLoopItem() bool {
	return r.LoopDataInputRef != "" && r.DataInputItemRef != "" && r.LoopCounter >= 0
}

type Binder interface {
	CreateDataInstances(ctx context.Context, req DataRequest) ([]*model.DataInstance, error)
	CreateProcessDataInstances(ctx context.Context, def *model.ProcessDefinition, processInstanceId int64, operations *model.Operations, inputs map[string]any) ([]*model.DataInstance, error)
	CreateActivityDataInstances(ctx context.Context, def *model.ProcessDefinition, instance *model.FlowNodeInstance) ([]*model.DataInstance, error)
	CreateBusinessDataReferences(ctx context.Context, def *model.ProcessDefinition, processInstanceId int64, operations *model.Operations, evalCtx *model.ExpressionContext) ([]*model.RefBusinessDataInstance, error)
}

var _ Binder = new(binder)

type binder struct {
	evaluator          expression.Evaluator
	dataDao            persistence.DataInstanceDao
	transientDao       persistence.TransientDataDao
	refDao             persistence.RefBusinessDataDao
	businessDataBinder BusinessDataBinder
}

func NewBinder(evaluator expression.Evaluator, dataDao persistence.DataInstanceDao, transientDao persistence.TransientDataDao, refDao persistence.RefBusinessDataDao) *binder {
	return &binder{
		evaluator:          evaluator,
		dataDao:            dataDao,
		transientDao:       transientDao,
		refDao:             refDao,
		businessDataBinder: NewBusinessDataBinder(refDao),
	}
}

func (b *binder) CreateDataInstances(ctx context.Context, req DataRequest) ([]*model.DataInstance, error) {
	evalCtx := req.Context
	if evalCtx == nil {
		evalCtx = model.NewExpressionContext(req.ContainerId, req.ContainerType, 0)
	}
	if req.Operations == nil {
		req.Operations = &model.Operations{}
	}
	definitions := req.Definitions
	if req.bindsLoopItem() && !declares(definitions, req.DataInputItemRef) {
		item := model.DataDefinition{Name: req.DataInputItemRef, Type: model.DATA_TYPE_OBJECT}
		definitions = append([]model.DataDefinition{item}, definitions...)
	}

	bound := make(map[string]bool, len(definitions))
	created := make([]*model.DataInstance, 0, len(definitions))
	for i := range definitions {
		def := &definitions[i]
		if bound[def.Name] {
			logger.Warn("data already created in container", zap.String("data", def.Name), zap.Int64("containerId", req.ContainerId))
			continue
		}
		value, err := b.initialValue(ctx, &req, def, evalCtx)
		if err != nil {
			return nil, err
		}
		instance, err := model.NewDataInstance(def, value, req.ContainerId, req.ContainerType)
		if err != nil {
			return nil, api.NotWellFormedError{Name: def.Name, Cause: err}
		}
		if err := b.store(def).CreateDataInstance(ctx, instance); err != nil {
			return nil, err
		}
		bound[def.Name] = true
		created = append(created, instance)
		evalCtx = evalCtx.With(def.Name, instance.Value)
	}
	return created, nil
}

// initialValue applies, in order: the loop item, the first matching assignment, the default value.
func (b *binder) initialValue(ctx context.Context, req *DataRequest, def *model.DataDefinition, evalCtx *model.ExpressionContext) (any, error) {
	if req.bindsLoopItem() && def.Name == req.DataInputItemRef {
		return b.readLoopItem(ctx, req)
	}
	expr := def.DefaultValue
	if op, ok := req.Operations.Take(model.LEFT_OPERAND_DATA, def.Name); ok {
		expr = op.RightOperand
	}
	if expr == nil {
		if def.IsTransientData() {
			logger.Warn("creating transient data with null expression is not good practice",
				zap.String("data", def.Name), zap.Int64("containerId", req.ContainerId), zap.String("containerType", string(req.ContainerType)))
		}
		return nil, nil
	}
	return b.evaluator.Evaluate(ctx, expr, evalCtx)
}

func (b *binder) store(def *model.DataDefinition) persistence.DataInstanceDao {
	if def.IsTransientData() {
		return b.transientDao
	}
	return b.dataDao
}

// readLoopItem returns the element loopCounter of the list loopDataInputRef, read
// from the outer activity first and from the process instance otherwise.
func (b *binder) readLoopItem(ctx context.Context, req *DataRequest) (any, error) {
	containerId, containerType := req.ParentContainerId, model.DATA_CONTAINER_ACTIVITY_INSTANCE
	list, err := b.getData(ctx, req.LoopDataInputRef, containerId, containerType)
	var notFound api.NotFoundError
	if errors.As(err, &notFound) && req.ProcessInstanceId != 0 {
		containerId, containerType = req.ProcessInstanceId, model.DATA_CONTAINER_PROCESS_INSTANCE
		list, err = b.getData(ctx, req.LoopDataInputRef, containerId, containerType)
	}
	readError := func(cause error) error {
		return api.ReadError{Name: req.LoopDataInputRef, ContainerId: containerId, ContainerType: string(containerType), Cause: cause}
	}
	if err != nil {
		return nil, readError(err)
	}
	value, err := model.DATA_TYPE_LIST.Coerce(list.Value)
	if err != nil {
		return nil, readError(err)
	}
	items, _ := value.([]any)
	if req.LoopCounter >= len(items) {
		return nil, readError(fmt.Errorf("loop counter %d out of range, list has %d elements", req.LoopCounter, len(items)))
	}
	return items[req.LoopCounter], nil
}

func (b *binder) getData(ctx context.Context, name string, containerId int64, containerType model.DataContainerType) (*model.DataInstance, error) {
	data, err := b.dataDao.GetDataInstance(ctx, name, containerId, containerType)
	var notFound api.NotFoundError
	if errors.As(err, &notFound) {
		return b.transientDao.GetDataInstance(ctx, name, containerId, containerType)
	}
	return data, err
}

// containerValues exposes the data of a container to expressions, by name.
func (b *binder) containerValues(ctx context.Context, containerId int64, containerType model.DataContainerType, into map[string]any) error {
	for _, dao := range []persistence.DataInstanceDao{b.dataDao, b.transientDao} {
		all, err := dao.GetDataInstances(ctx, containerId, containerType)
		if err != nil {
			return err
		}
		for _, data := range all {
			into[data.Name] = data.Value
		}
	}
	return nil
}

func declares(definitions []model.DataDefinition, name string) bool {
	for _, def := range definitions {
		if def.Name == name {
			return true
		}
	}
	return false
}

func (b *binder) CreateProcessDataInstances(ctx context.Context, def *model.ProcessDefinition, processInstanceId int64, operations *model.Operations, inputs map[string]any) ([]*model.DataInstance, error) {
	evalCtx := model.NewExpressionContext(processInstanceId, model.DATA_CONTAINER_PROCESS_INSTANCE, def.Id)
	for name, value := range inputs {
		evalCtx.InputValues[name] = value
	}
	return b.CreateDataInstances(ctx, DataRequest{
		Definitions:       def.DataDefinitions,
		ContainerId:       processInstanceId,
		ContainerType:     model.DATA_CONTAINER_PROCESS_INSTANCE,
		Context:           evalCtx,
		Operations:        operations,
		LoopCounter:       -1,
		ProcessInstanceId: processInstanceId,
	})
}

// CreateActivityDataInstances binds the data declared by the definition of instance.
// For an iteration of a multi-instance activity it also binds the loop items, either
// as data or as business data references when the process declares the loop refs as
// business data. Every failure is returned as an ExecutionError.
func (b *binder) CreateActivityDataInstances(ctx context.Context, def *model.ProcessDefinition, instance *model.FlowNodeInstance) ([]*model.DataInstance, error) {
	created, err := b.createActivityDataInstances(ctx, def, instance)
	if err != nil {
		return nil, api.ExecutionError{FlowNodeInstanceId: instance.Id, Cause: err}
	}
	return created, nil
}

func (b *binder) createActivityDataInstances(ctx context.Context, def *model.ProcessDefinition, instance *model.FlowNodeInstance) ([]*model.DataInstance, error) {
	flowNode := def.FlowNode(instance.FlowNodeDefinitionId)
	if flowNode == nil {
		return nil, api.NotFoundError{Entity: "flow node definition", Name: fmt.Sprint(instance.FlowNodeDefinitionId), Scope: fmt.Sprintf("process definition %d", def.Id)}
	}
	evalCtx := model.NewExpressionContext(instance.Id, model.DATA_CONTAINER_ACTIVITY_INSTANCE, def.Id)
	if err := b.containerValues(ctx, instance.ParentProcessInstanceId, model.DATA_CONTAINER_PROCESS_INSTANCE, evalCtx.InputValues); err != nil {
		return nil, err
	}
	if instance.IsIteration() {
		if err := b.containerValues(ctx, instance.ParentContainerId, model.DATA_CONTAINER_ACTIVITY_INSTANCE, evalCtx.InputValues); err != nil {
			return nil, err
		}
	}
	req := DataRequest{
		Definitions:       flowNode.DataDefinitions,
		ContainerId:       instance.Id,
		ContainerType:     model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		Context:           evalCtx,
		LoopCounter:       instance.LoopCounter,
		ParentContainerId: instance.ParentContainerId,
		ProcessInstanceId: instance.ParentProcessInstanceId,
	}
	loop := flowNode.LoopCharacteristics
	iteration := loop.IsMultiInstance() && instance.IsIteration() && instance.Type != model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY
	if iteration && def.BusinessData(loop.LoopDataInputRef) == nil {
		req.LoopDataInputRef = loop.LoopDataInputRef
		req.DataInputItemRef = loop.DataInputItemRef
	}
	created, err := b.CreateDataInstances(ctx, req)
	if err != nil {
		return nil, err
	}
	if iteration {
		if _, err := b.businessDataBinder.CreateIterationReferences(ctx, def, loop, instance); err != nil {
			return nil, err
		}
	}
	return created, nil
}
