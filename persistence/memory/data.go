package memory

import (
	"context"
	"sync"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.DataInstanceDao = new(dataInstanceDao)

type containerKey struct {
	id            int64
	containerType model.DataContainerType
}

type dataInstanceDao struct {
	mu         sync.RWMutex
	seq        persistence.SequenceDao
	containers map[containerKey][]model.DataInstance
}

func NewDataInstanceDao(seq persistence.SequenceDao) *dataInstanceDao {
	return &dataInstanceDao{
		seq:        seq,
		containers: make(map[containerKey][]model.DataInstance),
	}
}

func (d *dataInstanceDao) CreateDataInstance(ctx context.Context, data *model.DataInstance) error {
	id, err := d.seq.NextId(ctx, persistence.SEQ_DATA)
	if err != nil {
		return err
	}
	data.Id = id
	key := containerKey{data.ContainerId, data.ContainerType}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.containers[key] = append(d.containers[key], *data)
	return nil
}

func (d *dataInstanceDao) GetDataInstance(ctx context.Context, name string, containerId int64, containerType model.DataContainerType) (*model.DataInstance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, data := range d.containers[containerKey{containerId, containerType}] {
		if data.Name == name {
			found := data
			return &found, nil
		}
	}
	return nil, persistence.DataNotFound(name, containerId, containerType)
}

func (d *dataInstanceDao) GetDataInstances(ctx context.Context, containerId int64, containerType model.DataContainerType) ([]*model.DataInstance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	stored := d.containers[containerKey{containerId, containerType}]
	result := make([]*model.DataInstance, 0, len(stored))
	for i := range stored {
		data := stored[i]
		result = append(result, &data)
	}
	return result, nil
}
