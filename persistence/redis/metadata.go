package redis

import (
	"context"
	"fmt"
	"strconv"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/util"
	"go.uber.org/zap"
)

const PROCESS_DEF string = "PROCESS"
const ACTOR_KEY string = "ACTOR"

var _ persistence.ProcessDefinitionDao = new(redisMetadataStorage)
var _ persistence.ActorDao = new(redisMetadataStorage)

type redisMetadataStorage struct {
	*baseDao
	seq                   persistence.SequenceDao
	processEncoderDecoder util.EncoderDecoder[model.ProcessDefinition]
	actorEncoderDecoder   util.EncoderDecoder[model.Actor]
}

func NewRedisMetadataStorage(baseDao *baseDao, seq persistence.SequenceDao) *redisMetadataStorage {
	return &redisMetadataStorage{
		baseDao:               baseDao,
		seq:                   seq,
		processEncoderDecoder: util.NewJsonEncoderDecoder[model.ProcessDefinition](),
		actorEncoderDecoder:   util.NewJsonEncoderDecoder[model.Actor](),
	}
}

func (r *redisMetadataStorage) SaveProcessDefinition(ctx context.Context, def *model.ProcessDefinition) error {
	key := r.getNamespaceKey(PROCESS_DEF, strconv.FormatInt(def.Id, 10))
	data, err := r.processEncoderDecoder.Encode(*def)
	if err != nil {
		return err
	}
	if err := r.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return storageError("error in saving process definition", err, nil)
	}
	return nil
}

func (r *redisMetadataStorage) GetProcessDefinition(ctx context.Context, id int64) (*model.ProcessDefinition, error) {
	key := r.getNamespaceKey(PROCESS_DEF, strconv.FormatInt(id, 10))
	val, err := r.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, storageError("error in getting process definition", err,
			api.NotFoundError{Entity: "process definition", Name: fmt.Sprint(id)})
	}
	return r.processEncoderDecoder.Decode([]byte(val))
}

func (r *redisMetadataStorage) SaveActor(ctx context.Context, actor *model.Actor) error {
	if actor.Id == 0 {
		id, err := r.seq.NextId(ctx, persistence.SEQ_ACTOR)
		if err != nil {
			return err
		}
		actor.Id = id
	}
	data, err := r.actorEncoderDecoder.Encode(*actor)
	if err != nil {
		return err
	}
	key := r.getNamespaceKey(ACTOR_KEY, strconv.FormatInt(actor.ProcessDefinitionId, 10))
	if err := r.redisClient.HSet(ctx, key, []string{actor.Name, string(data)}).Err(); err != nil {
		logger.Error("error in saving actor", zap.String("actor", actor.Name), zap.Int64("processDefinitionId", actor.ProcessDefinitionId))
		return storageError("error in saving actor", err, nil)
	}
	return nil
}

func (r *redisMetadataStorage) GetActor(ctx context.Context, processDefinitionId int64, name string) (*model.Actor, error) {
	key := r.getNamespaceKey(ACTOR_KEY, strconv.FormatInt(processDefinitionId, 10))
	actorStr, err := r.redisClient.HGet(ctx, key, name).Result()
	if err != nil {
		return nil, storageError("error in getting actor", err, api.ActorNotFound(processDefinitionId, name))
	}
	return r.actorEncoderDecoder.Decode([]byte(actorStr))
}
