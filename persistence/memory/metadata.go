package memory

import (
	"context"
	"fmt"
	"sync"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.ProcessDefinitionDao = new(processDefinitionDao)
var _ persistence.ActorDao = new(actorDao)

type processDefinitionDao struct {
	mu          sync.RWMutex
	definitions map[int64]*model.ProcessDefinition
}

func NewProcessDefinitionDao() *processDefinitionDao {
	return &processDefinitionDao{
		definitions: make(map[int64]*model.ProcessDefinition),
	}
}

func (d *processDefinitionDao) SaveProcessDefinition(ctx context.Context, def *model.ProcessDefinition) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.definitions[def.Id] = def
	return nil
}

func (d *processDefinitionDao) GetProcessDefinition(ctx context.Context, id int64) (*model.ProcessDefinition, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	def, ok := d.definitions[id]
	if !ok {
		return nil, api.NotFoundError{Entity: "process definition", Name: fmt.Sprint(id)}
	}
	return def, nil
}

type actorKey struct {
	processDefinitionId int64
	name                string
}

type actorDao struct {
	mu     sync.RWMutex
	seq    persistence.SequenceDao
	actors map[actorKey]model.Actor
}

func NewActorDao(seq persistence.SequenceDao) *actorDao {
	return &actorDao{
		seq:    seq,
		actors: make(map[actorKey]model.Actor),
	}
}

func (d *actorDao) SaveActor(ctx context.Context, actor *model.Actor) error {
	if actor.Id == 0 {
		id, err := d.seq.NextId(ctx, persistence.SEQ_ACTOR)
		if err != nil {
			return err
		}
		actor.Id = id
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actors[actorKey{actor.ProcessDefinitionId, actor.Name}] = *actor
	return nil
}

func (d *actorDao) GetActor(ctx context.Context, processDefinitionId int64, name string) (*model.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	actor, ok := d.actors[actorKey{processDefinitionId, name}]
	if !ok {
		return nil, api.ActorNotFound(processDefinitionId, name)
	}
	return &actor, nil
}
