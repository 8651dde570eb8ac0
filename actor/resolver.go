package actor

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"go.uber.org/zap"
)

type Resolver interface {
	ResolveActor(ctx context.Context, processDefinitionId int64, actorName string) (*model.Actor, error)
}

var _ Resolver = new(resolver)

type resolver struct {
	actorDao persistence.ActorDao
}

func NewResolver(actorDao persistence.ActorDao) *resolver {
	return &resolver{actorDao: actorDao}
}

func (r *resolver) ResolveActor(ctx context.Context, processDefinitionId int64, actorName string) (*model.Actor, error) {
	actor, err := r.actorDao.GetActor(ctx, processDefinitionId, actorName)
	if err != nil {
		logger.Debug("actor not resolved", zap.Int64("processDefinitionId", processDefinitionId), zap.String("actor", actorName), zap.Error(err))
		return nil, err
	}
	return actor, nil
}

// RegisterActors creates one actor per declaration of the process definition.
func RegisterActors(ctx context.Context, actorDao persistence.ActorDao, def *model.ProcessDefinition) ([]*model.Actor, error) {
	actors := make([]*model.Actor, 0, len(def.Actors))
	for _, declared := range def.Actors {
		actor := &model.Actor{
			Name:                declared.Name,
			Description:         declared.Description,
			ProcessDefinitionId: def.Id,
			Initiator:           declared.Initiator,
		}
		if err := actorDao.SaveActor(ctx, actor); err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	return actors, nil
}
