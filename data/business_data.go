package data

import (
	"context"
	"fmt"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

// BusinessDataBinder creates the business data references of one multi-instance iteration.
type BusinessDataBinder interface {
	CreateIterationReferences(ctx context.Context, def *model.ProcessDefinition, loop *model.LoopCharacteristics, instance *model.FlowNodeInstance) ([]*model.RefBusinessDataInstance, error)
}

var _ BusinessDataBinder = new(businessDataBinder)

type businessDataBinder struct {
	refDao persistence.RefBusinessDataDao
}

func NewBusinessDataBinder(refDao persistence.RefBusinessDataDao) *businessDataBinder {
	return &businessDataBinder{refDao: refDao}
}

// CreateIterationReferences only handles loop refs the process declares as business data.
// The output item gets an empty reference, the input item a reference to the element
// loopCounter of the process multiple reference.
func (b *businessDataBinder) CreateIterationReferences(ctx context.Context, def *model.ProcessDefinition, loop *model.LoopCharacteristics, instance *model.FlowNodeInstance) ([]*model.RefBusinessDataInstance, error) {
	var created []*model.RefBusinessDataInstance
	if output := def.BusinessData(loop.LoopDataOutputRef); output != nil && loop.DataOutputItemRef != "" {
		ref := &model.RefBusinessDataInstance{
			Name:               loop.DataOutputItemRef,
			DataClassName:      output.ClassName,
			FlowNodeInstanceId: instance.Id,
		}
		if err := b.refDao.CreateRefBusinessDataInstance(ctx, ref); err != nil {
			return nil, err
		}
		created = append(created, ref)
	}
	if input := def.BusinessData(loop.LoopDataInputRef); input != nil && loop.DataInputItemRef != "" {
		ref, err := b.inputReference(ctx, loop, instance)
		if err != nil {
			return nil, err
		}
		if err := b.refDao.CreateRefBusinessDataInstance(ctx, ref); err != nil {
			return nil, err
		}
		created = append(created, ref)
	}
	return created, nil
}

func (b *businessDataBinder) inputReference(ctx context.Context, loop *model.LoopCharacteristics, instance *model.FlowNodeInstance) (*model.RefBusinessDataInstance, error) {
	readError := func(cause error) error {
		return api.ReadError{
			Name:          loop.LoopDataInputRef,
			ContainerId:   instance.ParentProcessInstanceId,
			ContainerType: string(model.DATA_CONTAINER_PROCESS_INSTANCE),
			Cause:         cause,
		}
	}
	multi, err := b.refDao.GetProcessRefBusinessDataInstance(ctx, loop.LoopDataInputRef, instance.ParentProcessInstanceId)
	if err != nil {
		return nil, readError(err)
	}
	if instance.LoopCounter < 0 || instance.LoopCounter >= len(multi.DataIds) {
		return nil, readError(fmt.Errorf("loop counter %d out of range, reference has %d ids", instance.LoopCounter, len(multi.DataIds)))
	}
	dataId := multi.DataIds[instance.LoopCounter]
	return &model.RefBusinessDataInstance{
		Name:               loop.DataInputItemRef,
		DataClassName:      multi.DataClassName,
		DataId:             &dataId,
		FlowNodeInstanceId: instance.Id,
	}, nil
}

// CreateBusinessDataReferences creates the references declared by the process. A
// BUSINESS_DATA assignment overrides the default value; the value is a data id, a
// list of data ids for a multiple reference, or nil.
func (b *binder) CreateBusinessDataReferences(ctx context.Context, def *model.ProcessDefinition, processInstanceId int64, operations *model.Operations, evalCtx *model.ExpressionContext) ([]*model.RefBusinessDataInstance, error) {
	if operations == nil {
		operations = &model.Operations{}
	}
	if evalCtx == nil {
		evalCtx = model.NewExpressionContext(processInstanceId, model.DATA_CONTAINER_PROCESS_INSTANCE, def.Id)
	}
	created := make([]*model.RefBusinessDataInstance, 0, len(def.BusinessDataDefinitions))
	for i := range def.BusinessDataDefinitions {
		bd := &def.BusinessDataDefinitions[i]
		expr := bd.DefaultValue
		if op, ok := operations.Take(model.LEFT_OPERAND_BUSINESS_DATA, bd.Name); ok {
			expr = op.RightOperand
		}
		value, err := b.evaluator.Evaluate(ctx, expr, evalCtx)
		if err != nil {
			return nil, err
		}
		ref := &model.RefBusinessDataInstance{
			Name:              bd.Name,
			DataClassName:     bd.ClassName,
			Multiple:          bd.Multiple,
			ProcessInstanceId: processInstanceId,
		}
		if err := assignIds(ref, value); err != nil {
			return nil, api.NotWellFormedError{Name: bd.Name, Cause: err}
		}
		if err := b.refDao.CreateRefBusinessDataInstance(ctx, ref); err != nil {
			return nil, err
		}
		created = append(created, ref)
	}
	return created, nil
}

func assignIds(ref *model.RefBusinessDataInstance, value any) error {
	if value == nil {
		return nil
	}
	if ref.Multiple {
		list, err := model.DATA_TYPE_LIST.Coerce(value)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(list.([]any)))
		for _, item := range list.([]any) {
			id, err := model.DATA_TYPE_LONG.Coerce(item)
			if err != nil {
				return err
			}
			if id == nil {
				return fmt.Errorf("nil id in %s", ref.Name)
			}
			ids = append(ids, id.(int64))
		}
		ref.DataIds = ids
		return nil
	}
	id, err := model.DATA_TYPE_LONG.Coerce(value)
	if err != nil {
		return err
	}
	dataId := id.(int64)
	ref.DataId = &dataId
	return nil
}
