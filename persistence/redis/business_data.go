package redis

import (
	"context"
	"strconv"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/util"
)

const REF_BUSINESS_DATA_KEY string = "REF_BDATA"
const SCOPE_PROCESS string = "PROCESS"
const SCOPE_FLOWNODE string = "FLOWNODE"

var _ persistence.RefBusinessDataDao = new(redisRefBusinessDataDao)

type redisRefBusinessDataDao struct {
	*baseDao
	seq            persistence.SequenceDao
	encoderDecoder util.EncoderDecoder[model.RefBusinessDataInstance]
}

func NewRedisRefBusinessDataDao(baseDao *baseDao, seq persistence.SequenceDao) *redisRefBusinessDataDao {
	return &redisRefBusinessDataDao{
		baseDao:        baseDao,
		seq:            seq,
		encoderDecoder: util.NewJsonEncoderDecoder[model.RefBusinessDataInstance](),
	}
}

func (r *redisRefBusinessDataDao) CreateRefBusinessDataInstance(ctx context.Context, ref *model.RefBusinessDataInstance) error {
	id, err := r.seq.NextId(ctx, persistence.SEQ_REF_BUSINESS_DATA)
	if err != nil {
		return err
	}
	ref.Id = id
	data, err := r.encoderDecoder.Encode(*ref)
	if err != nil {
		return err
	}
	key := r.getNamespaceKey(REF_BUSINESS_DATA_KEY, SCOPE_PROCESS, strconv.FormatInt(ref.ProcessInstanceId, 10))
	if ref.FlowNodeInstanceId != 0 {
		key = r.getNamespaceKey(REF_BUSINESS_DATA_KEY, SCOPE_FLOWNODE, strconv.FormatInt(ref.FlowNodeInstanceId, 10))
	}
	if err := r.redisClient.HSet(ctx, key, []string{ref.Name, string(data)}).Err(); err != nil {
		return storageError("error in saving business data reference", err, nil)
	}
	return nil
}

func (r *redisRefBusinessDataDao) get(ctx context.Context, scope string, name string, id int64, scopeName string) (*model.RefBusinessDataInstance, error) {
	key := r.getNamespaceKey(REF_BUSINESS_DATA_KEY, scope, strconv.FormatInt(id, 10))
	val, err := r.redisClient.HGet(ctx, key, name).Result()
	if err != nil {
		return nil, storageError("error in getting business data reference", err, persistence.RefBusinessDataNotFound(name, scopeName, id))
	}
	return r.encoderDecoder.Decode([]byte(val))
}

func (r *redisRefBusinessDataDao) GetProcessRefBusinessDataInstance(ctx context.Context, name string, processInstanceId int64) (*model.RefBusinessDataInstance, error) {
	return r.get(ctx, SCOPE_PROCESS, name, processInstanceId, "process instance")
}

func (r *redisRefBusinessDataDao) GetFlowNodeRefBusinessDataInstance(ctx context.Context, name string, flowNodeInstanceId int64) (*model.RefBusinessDataInstance, error) {
	return r.get(ctx, SCOPE_FLOWNODE, name, flowNodeInstanceId, "flow node instance")
}
