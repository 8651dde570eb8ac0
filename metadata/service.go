package metadata

import (
	"context"
	"fmt"

	"github.com/bonitasoft/bonita-engine-sub039/actor"
	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"go.uber.org/zap"
)

type MetadataService interface {
	DeployProcess(ctx context.Context, def *model.ProcessDefinition) ([]*model.Actor, error)
	GetProcessDefinition(ctx context.Context, id int64) (*model.ProcessDefinition, error)
	AddActor(ctx context.Context, processDefinitionId int64, declared model.ActorDefinition) (*model.Actor, error)
	ValidateProcess(def *model.ProcessDefinition) error
}

type MetadataServiceImpl struct {
	definitions persistence.ProcessDefinitionDao
	actors      persistence.ActorDao
}

func NewMetadataService(definitions persistence.ProcessDefinitionDao, actors persistence.ActorDao) MetadataService {
	return &MetadataServiceImpl{
		definitions: definitions,
		actors:      actors,
	}
}

// DeployProcess stores the definition and creates one actor per declared actor.
func (s *MetadataServiceImpl) DeployProcess(ctx context.Context, def *model.ProcessDefinition) ([]*model.Actor, error) {
	if err := s.ValidateProcess(def); err != nil {
		return nil, api.NotWellFormedError{Name: def.Name, Cause: err}
	}
	if err := s.definitions.SaveProcessDefinition(ctx, def); err != nil {
		return nil, err
	}
	actors, err := actor.RegisterActors(ctx, s.actors, def)
	if err != nil {
		return nil, err
	}
	logger.Info("process deployed", zap.Int64("processDefinitionId", def.Id), zap.String("name", def.Name), zap.String("version", def.Version))
	return actors, nil
}

func (s *MetadataServiceImpl) GetProcessDefinition(ctx context.Context, id int64) (*model.ProcessDefinition, error) {
	return s.definitions.GetProcessDefinition(ctx, id)
}

func (s *MetadataServiceImpl) AddActor(ctx context.Context, processDefinitionId int64, declared model.ActorDefinition) (*model.Actor, error) {
	if _, err := s.definitions.GetProcessDefinition(ctx, processDefinitionId); err != nil {
		return nil, err
	}
	actor := &model.Actor{
		Name:                declared.Name,
		Description:         declared.Description,
		ProcessDefinitionId: processDefinitionId,
		Initiator:           declared.Initiator,
	}
	if err := s.actors.SaveActor(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// ValidateProcess rejects definitions the instantiation relies on never seeing:
// duplicate flow node ids, and data declared twice under one name in a container.
func (s *MetadataServiceImpl) ValidateProcess(def *model.ProcessDefinition) error {
	if def.Container == nil {
		return fmt.Errorf("process %s has no flow element container", def.Name)
	}
	if err := uniqueData(def.Name, def.DataDefinitions); err != nil {
		return err
	}
	ids := make(map[int64]bool)
	var err error
	def.Container.Walk(func(_ *model.FlowNodeDefinition, node *model.FlowNodeDefinition) bool {
		if ids[node.Id] {
			err = fmt.Errorf("flow node id %d is duplicate", node.Id)
			return false
		}
		ids[node.Id] = true
		if err = uniqueData(node.Name, node.DataDefinitions); err != nil {
			return false
		}
		if node.Type == model.FLOWNODE_TYPE_SUB_PROCESS && (node.SubProcess == nil || node.SubProcess.Container == nil) {
			err = fmt.Errorf("sub process %s has no flow element container", node.Name)
			return false
		}
		return true
	})
	return err
}

func uniqueData(owner string, definitions []model.DataDefinition) error {
	names := make(map[string]bool, len(definitions))
	for _, def := range definitions {
		if names[def.Name] {
			return fmt.Errorf("data %s is declared twice in %s", def.Name, owner)
		}
		names[def.Name] = true
	}
	return nil
}
