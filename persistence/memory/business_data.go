package memory

import (
	"context"
	"sync"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.RefBusinessDataDao = new(refBusinessDataDao)

type refKey struct {
	name string
	id   int64
}

type refBusinessDataDao struct {
	mu        sync.RWMutex
	seq       persistence.SequenceDao
	processes map[refKey]model.RefBusinessDataInstance
	flowNodes map[refKey]model.RefBusinessDataInstance
}

func NewRefBusinessDataDao(seq persistence.SequenceDao) *refBusinessDataDao {
	return &refBusinessDataDao{
		seq:       seq,
		processes: make(map[refKey]model.RefBusinessDataInstance),
		flowNodes: make(map[refKey]model.RefBusinessDataInstance),
	}
}

func (d *refBusinessDataDao) CreateRefBusinessDataInstance(ctx context.Context, ref *model.RefBusinessDataInstance) error {
	id, err := d.seq.NextId(ctx, persistence.SEQ_REF_BUSINESS_DATA)
	if err != nil {
		return err
	}
	ref.Id = id
	d.mu.Lock()
	defer d.mu.Unlock()
	if ref.FlowNodeInstanceId != 0 {
		d.flowNodes[refKey{ref.Name, ref.FlowNodeInstanceId}] = *ref
	} else {
		d.processes[refKey{ref.Name, ref.ProcessInstanceId}] = *ref
	}
	return nil
}

func (d *refBusinessDataDao) GetProcessRefBusinessDataInstance(ctx context.Context, name string, processInstanceId int64) (*model.RefBusinessDataInstance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ref, ok := d.processes[refKey{name, processInstanceId}]
	if !ok {
		return nil, persistence.RefBusinessDataNotFound(name, "process instance", processInstanceId)
	}
	return &ref, nil
}

func (d *refBusinessDataDao) GetFlowNodeRefBusinessDataInstance(ctx context.Context, name string, flowNodeInstanceId int64) (*model.RefBusinessDataInstance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ref, ok := d.flowNodes[refKey{name, flowNodeInstanceId}]
	if !ok {
		return nil, persistence.RefBusinessDataNotFound(name, "flow node instance", flowNodeInstanceId)
	}
	return &ref, nil
}
