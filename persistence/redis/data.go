package redis

import (
	"context"
	"sort"
	"strconv"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/util"
)

const DATA_KEY string = "DATA"

var _ persistence.DataInstanceDao = new(redisDataDao)

// redisDataDao keeps the data of one container in a hash keyed by data name.
type redisDataDao struct {
	*baseDao
	seq            persistence.SequenceDao
	encoderDecoder util.EncoderDecoder[model.DataInstance]
}

func NewRedisDataDao(baseDao *baseDao, seq persistence.SequenceDao) *redisDataDao {
	return &redisDataDao{
		baseDao:        baseDao,
		seq:            seq,
		encoderDecoder: util.NewJsonEncoderDecoder[model.DataInstance](),
	}
}

func (r *redisDataDao) containerKey(containerId int64, containerType model.DataContainerType) string {
	return r.getNamespaceKey(DATA_KEY, string(containerType), strconv.FormatInt(containerId, 10))
}

func (r *redisDataDao) CreateDataInstance(ctx context.Context, data *model.DataInstance) error {
	id, err := r.seq.NextId(ctx, persistence.SEQ_DATA)
	if err != nil {
		return err
	}
	data.Id = id
	encoded, err := r.encoderDecoder.Encode(*data)
	if err != nil {
		return err
	}
	key := r.containerKey(data.ContainerId, data.ContainerType)
	if err := r.redisClient.HSet(ctx, key, []string{data.Name, string(encoded)}).Err(); err != nil {
		return storageError("error in saving data instance", err, nil)
	}
	return nil
}

// decode restores the canonical value representation lost in json, numbers come back as float64.
func (r *redisDataDao) decode(val string) (*model.DataInstance, error) {
	data, err := r.encoderDecoder.Decode([]byte(val))
	if err != nil {
		return nil, err
	}
	value, err := data.Type.Coerce(data.Value)
	if err != nil {
		return nil, err
	}
	data.Value = value
	return data, nil
}

func (r *redisDataDao) GetDataInstance(ctx context.Context, name string, containerId int64, containerType model.DataContainerType) (*model.DataInstance, error) {
	val, err := r.redisClient.HGet(ctx, r.containerKey(containerId, containerType), name).Result()
	if err != nil {
		return nil, storageError("error in getting data instance", err, persistence.DataNotFound(name, containerId, containerType))
	}
	return r.decode(val)
}

func (r *redisDataDao) GetDataInstances(ctx context.Context, containerId int64, containerType model.DataContainerType) ([]*model.DataInstance, error) {
	values, err := r.redisClient.HGetAll(ctx, r.containerKey(containerId, containerType)).Result()
	if err != nil {
		return nil, storageError("error in listing data instances", err, nil)
	}
	result := make([]*model.DataInstance, 0, len(values))
	for _, val := range values {
		data, err := r.decode(val)
		if err != nil {
			return nil, err
		}
		result = append(result, data)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Id < result[j].Id
	})
	return result, nil
}
