package redis

import (
	"context"
	"fmt"
	"strconv"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/util"
)

const FLOWNODE_KEY string = "FLOWNODE"

var _ persistence.FlowNodeInstanceDao = new(redisFlowNodeDao)

type redisFlowNodeDao struct {
	*baseDao
	seq            persistence.SequenceDao
	encoderDecoder util.EncoderDecoder[model.FlowNodeInstance]
}

func NewRedisFlowNodeDao(baseDao *baseDao, seq persistence.SequenceDao) *redisFlowNodeDao {
	return &redisFlowNodeDao{
		baseDao:        baseDao,
		seq:            seq,
		encoderDecoder: util.NewJsonEncoderDecoder[model.FlowNodeInstance](),
	}
}

func (r *redisFlowNodeDao) save(ctx context.Context, instance *model.FlowNodeInstance) error {
	id, err := r.seq.NextId(ctx, persistence.SEQ_FLOWNODE)
	if err != nil {
		return err
	}
	instance.Id = id
	data, err := r.encoderDecoder.Encode(*instance)
	if err != nil {
		return err
	}
	key := r.getNamespaceKey(FLOWNODE_KEY, strconv.FormatInt(id, 10))
	if err := r.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return storageError("error in saving flow node instance", err, nil)
	}
	return nil
}

func (r *redisFlowNodeDao) CreateActivityInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return r.save(ctx, instance)
}

func (r *redisFlowNodeDao) CreateGatewayInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return r.save(ctx, instance)
}

func (r *redisFlowNodeDao) CreateEventInstance(ctx context.Context, instance *model.FlowNodeInstance) error {
	return r.save(ctx, instance)
}

func (r *redisFlowNodeDao) GetFlowNodeInstance(ctx context.Context, id int64) (*model.FlowNodeInstance, error) {
	key := r.getNamespaceKey(FLOWNODE_KEY, strconv.FormatInt(id, 10))
	val, err := r.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, storageError("error in getting flow node instance", err,
			api.NotFoundError{Entity: "flow node instance", Name: fmt.Sprint(id)})
	}
	return r.encoderDecoder.Decode([]byte(val))
}
