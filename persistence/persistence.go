package persistence

import (
	"context"
	"fmt"
	"sort"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
)

const SEQ_FLOWNODE string = "FLOWNODE"
const SEQ_DATA string = "DATA"
const SEQ_CONNECTOR string = "CONNECTOR"
const SEQ_REF_BUSINESS_DATA string = "REF_BUSINESS_DATA"
const SEQ_PROCESS_INSTANCE string = "PROCESS_INSTANCE"
const SEQ_ACTOR string = "ACTOR"

type SequenceDao interface {
	NextId(ctx context.Context, sequence string) (int64, error)
}

type ProcessDefinitionDao interface {
	SaveProcessDefinition(ctx context.Context, def *model.ProcessDefinition) error
	GetProcessDefinition(ctx context.Context, id int64) (*model.ProcessDefinition, error)
}

type ActorDao interface {
	SaveActor(ctx context.Context, actor *model.Actor) error
	GetActor(ctx context.Context, processDefinitionId int64, name string) (*model.Actor, error)
}

// The three flow node daos share one id space; every Create assigns the id.

type ActivityInstanceDao interface {
	CreateActivityInstance(ctx context.Context, instance *model.FlowNodeInstance) error
}

type GatewayInstanceDao interface {
	CreateGatewayInstance(ctx context.Context, instance *model.FlowNodeInstance) error
}

type EventInstanceDao interface {
	CreateEventInstance(ctx context.Context, instance *model.FlowNodeInstance) error
}

type FlowNodeInstanceDao interface {
	ActivityInstanceDao
	GatewayInstanceDao
	EventInstanceDao
	GetFlowNodeInstance(ctx context.Context, id int64) (*model.FlowNodeInstance, error)
}

type DataInstanceDao interface {
	CreateDataInstance(ctx context.Context, data *model.DataInstance) error
	GetDataInstance(ctx context.Context, name string, containerId int64, containerType model.DataContainerType) (*model.DataInstance, error)
	GetDataInstances(ctx context.Context, containerId int64, containerType model.DataContainerType) ([]*model.DataInstance, error)
}

type TransientDataDao interface {
	DataInstanceDao
}

type ConnectorInstanceDao interface {
	CreateConnectorInstance(ctx context.Context, connector *model.ConnectorInstance) error
	// GetConnectorInstances returns the instances of a container ordered by execution order.
	GetConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType) ([]*model.ConnectorInstance, error)
}

type RefBusinessDataDao interface {
	CreateRefBusinessDataInstance(ctx context.Context, ref *model.RefBusinessDataInstance) error
	GetProcessRefBusinessDataInstance(ctx context.Context, name string, processInstanceId int64) (*model.RefBusinessDataInstance, error)
	GetFlowNodeRefBusinessDataInstance(ctx context.Context, name string, flowNodeInstanceId int64) (*model.RefBusinessDataInstance, error)
}

// Storage groups the daos one backend provides.
type Storage struct {
	Sequence        SequenceDao
	Definitions     ProcessDefinitionDao
	Actors          ActorDao
	FlowNodes       FlowNodeInstanceDao
	Data            DataInstanceDao
	TransientData   TransientDataDao
	Connectors      ConnectorInstanceDao
	RefBusinessData RefBusinessDataDao
}

func DataNotFound(name string, containerId int64, containerType model.DataContainerType) api.NotFoundError {
	return api.NotFoundError{
		Entity: "data",
		Name:   name,
		Scope:  fmt.Sprintf("%s %d", containerType, containerId),
	}
}

func RefBusinessDataNotFound(name string, scope string, id int64) api.NotFoundError {
	return api.NotFoundError{
		Entity: "business data reference",
		Name:   name,
		Scope:  fmt.Sprintf("%s %d", scope, id),
	}
}

// SortConnectors orders connector instances by execution order, then by id.
func SortConnectors(connectors []*model.ConnectorInstance) {
	sort.SliceStable(connectors, func(i, j int) bool {
		if connectors[i].ExecutionOrder != connectors[j].ExecutionOrder {
			return connectors[i].ExecutionOrder < connectors[j].ExecutionOrder
		}
		return connectors[i].Id < connectors[j].Id
	})
}
