package redis

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

const SEQUENCE_KEY string = "SEQ"

var _ persistence.SequenceDao = new(redisSequenceDao)

type redisSequenceDao struct {
	*baseDao
}

func NewRedisSequenceDao(baseDao *baseDao) *redisSequenceDao {
	return &redisSequenceDao{baseDao: baseDao}
}

func (r *redisSequenceDao) NextId(ctx context.Context, sequence string) (int64, error) {
	key := r.getNamespaceKey(SEQUENCE_KEY, sequence)
	id, err := r.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, storageError("error in allocating id", err, nil)
	}
	return id, nil
}
