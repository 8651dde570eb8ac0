package redis

import (
	"context"
	"strconv"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/util"
	rd "github.com/go-redis/redis/v9"
)

const CONNECTOR_KEY string = "CONNECTOR"

var _ persistence.ConnectorInstanceDao = new(redisConnectorDao)

// redisConnectorDao keeps the connectors of a container in a sorted set scored by execution order.
type redisConnectorDao struct {
	*baseDao
	seq            persistence.SequenceDao
	encoderDecoder util.EncoderDecoder[model.ConnectorInstance]
}

func NewRedisConnectorDao(baseDao *baseDao, seq persistence.SequenceDao) *redisConnectorDao {
	return &redisConnectorDao{
		baseDao:        baseDao,
		seq:            seq,
		encoderDecoder: util.NewJsonEncoderDecoder[model.ConnectorInstance](),
	}
}

func (r *redisConnectorDao) containerKey(containerId int64, containerType model.ConnectorContainerType) string {
	return r.getNamespaceKey(CONNECTOR_KEY, string(containerType), strconv.FormatInt(containerId, 10))
}

func (r *redisConnectorDao) CreateConnectorInstance(ctx context.Context, connector *model.ConnectorInstance) error {
	id, err := r.seq.NextId(ctx, persistence.SEQ_CONNECTOR)
	if err != nil {
		return err
	}
	connector.Id = id
	data, err := r.encoderDecoder.Encode(*connector)
	if err != nil {
		return err
	}
	member := rd.Z{
		Score:  float64(connector.ExecutionOrder),
		Member: string(data),
	}
	if err := r.redisClient.ZAdd(ctx, r.containerKey(connector.ContainerId, connector.ContainerType), member).Err(); err != nil {
		return storageError("error in saving connector instance", err, nil)
	}
	return nil
}

func (r *redisConnectorDao) GetConnectorInstances(ctx context.Context, containerId int64, containerType model.ConnectorContainerType) ([]*model.ConnectorInstance, error) {
	opt := &rd.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}
	members, err := r.redisClient.ZRangeByScore(ctx, r.containerKey(containerId, containerType), opt).Result()
	if err != nil {
		return nil, storageError("error in listing connector instances", err, nil)
	}
	result := make([]*model.ConnectorInstance, 0, len(members))
	for _, member := range members {
		connector, err := r.encoderDecoder.Decode([]byte(member))
		if err != nil {
			return nil, err
		}
		result = append(result, connector)
	}
	persistence.SortConnectors(result)
	return result, nil
}
