package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	rd "github.com/go-redis/redis/v9"
	"go.uber.org/zap"
)

type baseDao struct {
	redisClient rd.UniversalClient
	namespace   string
}

func newBaseDao(conf Config) *baseDao {
	redisClient := rd.NewUniversalClient(&rd.UniversalOptions{
		Addrs:    conf.Addrs,
		Password: conf.Password,
		PoolSize: conf.PoolSize,
	})
	return &baseDao{
		redisClient: redisClient,
		namespace:   conf.Namespace,
	}
}

func (bs *baseDao) getNamespaceKey(args ...string) string {
	return fmt.Sprintf("%s:%s", bs.namespace, strings.Join(args, ":"))
}

func (bs *baseDao) Close() error {
	return bs.redisClient.Close()
}

func (bs *baseDao) Ping(ctx context.Context) error {
	if err := bs.redisClient.Ping(ctx).Err(); err != nil {
		return api.StorageLayerError{Message: err.Error()}
	}
	return nil
}

// storageError logs the failure and converts it; a missing key becomes notFound.
func storageError(msg string, err error, notFound error) error {
	if errors.Is(err, rd.Nil) && notFound != nil {
		return notFound
	}
	logger.Error(msg, zap.Error(err))
	return api.StorageLayerError{Message: err.Error()}
}
