package connector

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

type Registrar interface {
	CreateConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType, defs []model.ConnectorDefinition) ([]*model.ConnectorInstance, error)
}

var _ Registrar = new(registrar)

type registrar struct {
	connectorDao persistence.ConnectorInstanceDao
}

func NewRegistrar(connectorDao persistence.ConnectorInstanceDao) *registrar {
	return &registrar{connectorDao: connectorDao}
}

// BuildConnectorInstances has no side effect: execution order is the declaration index.
func BuildConnectorInstances(containerId int64, containerType model.ConnectorContainerType, defs []model.ConnectorDefinition) []*model.ConnectorInstance {
	instances := make([]*model.ConnectorInstance, 0, len(defs))
	for order, def := range defs {
		instances = append(instances, &model.ConnectorInstance{
			Name:            def.Name,
			ContainerId:     containerId,
			ContainerType:   containerType,
			ConnectorId:     def.ConnectorId,
			Version:         def.Version,
			ActivationEvent: def.ActivationEvent,
			State:           model.CONNECTOR_STATE_TO_BE_EXECUTED,
			ExecutionOrder:  order,
		})
	}
	return instances
}

func (r *registrar) CreateConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType, defs []model.ConnectorDefinition) ([]*model.ConnectorInstance, error) {
	instances := BuildConnectorInstances(containerId, containerType, defs)
	for _, instance := range instances {
		if err := r.connectorDao.CreateConnectorInstance(ctx, instance); err != nil {
			return nil, err
		}
	}
	return instances, nil
}
