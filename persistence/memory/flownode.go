package memory

import (
	"context"
	"fmt"
	"sync"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.FlowNodeInstanceDao = new(flowNodeInstanceDao)

type flowNodeInstanceDao struct {
	mu        sync.RWMutex
	seq       persistence.SequenceDao
	instances map[int64]model.FlowNodeInstance
}

func NewFlowNodeInstanceDao(seq persistence.SequenceDao) *flowNodeInstanceDao {
	return &flowNodeInstanceDao{
		seq:       seq,
		instances: make(map[int64]model.FlowNodeInstance),
	}
}

func (d *flowNodeInstanceDao) create(ctx context.Context, instance *model.FlowNodeInstance) error {
	id, err := d.seq.NextId(ctx, persistence.SEQ_FLOWNODE)
	if err != nil {
		return err
	}
	instance.Id = id
	d.mu.Lock()
	defer d.mu.Unlock()
	d.instances[id] = *instance
	return nil
}

func (d *flowNodeInstanceDao) CreateActivityInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return d.create(ctx, instance)
}

func (d *flowNodeInstanceDao) CreateGatewayInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return d.create(ctx, instance)
}

func (d *flowNodeInstanceDao) CreateEventInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return d.create(ctx, instance)
}

func (d *flowNodeInstanceDao) GetFlowNodeInstance(ctx context.Context, id int64) (*model.FlowNodeInstance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	instance, ok := d.instances[id]
	if !ok {
		return nil, api.NotFoundError{Entity: "flow node instance", Name: fmt.Sprint(id)}
	}
	return &instance, nil
}
