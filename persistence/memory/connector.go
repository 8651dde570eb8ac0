package memory

import (
	"context"
	"sync"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.ConnectorInstanceDao = new(connectorInstanceDao)

type connectorKey struct {
	id            int64
	containerType model.ConnectorContainerType
}

type connectorInstanceDao struct {
	mu         sync.RWMutex
	seq        persistence.SequenceDao
	containers map[connectorKey][]model.ConnectorInstance
}

func NewConnectorInstanceDao(seq persistence.SequenceDao) *connectorInstanceDao {
	return &connectorInstanceDao{
		seq:        seq,
		containers: make(map[connectorKey][]model.ConnectorInstance),
	}
}

func (d *connectorInstanceDao) CreateConnectorInstance(ctx context.Context, connector *model.ConnectorInstance) error {
	id, err := d.seq.NextId(ctx, persistence.SEQ_CONNECTOR)
	if err != nil {
		return err
	}
	connector.Id = id
	key := connectorKey{connector.ContainerId, connector.ContainerType}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.containers[key] = append(d.containers[key], *connector)
	return nil
}

func (d *connectorInstanceDao) GetConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType) ([]*model.ConnectorInstance, error) {
	d.mu.RLock()
	stored := d.containers[connectorKey{containerId, containerType}]
	result := make([]*model.ConnectorInstance, 0, len(stored))
	for i := range stored {
		connector := stored[i]
		result = append(result, &connector)
	}
	d.mu.RUnlock()
	persistence.SortConnectors(result)
	return result, nil
}
