package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/patrickmn/go-cache"
)

var _ persistence.TransientDataDao = new(transientDataDao)

// transientDataDao keeps transient data in process memory only; entries expire after ttl.
type transientDataDao struct {
	seq   persistence.SequenceDao
	cache *cache.Cache
}

func NewTransientDataDao(seq persistence.SequenceDao, ttl time.Duration) *transientDataDao {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &transientDataDao{
		seq:   seq,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func containerPrefix(containerId int64, containerType model.DataContainerType) string {
	return fmt.Sprintf("%s:%d:", containerType, containerId)
}

func (d *transientDataDao) CreateDataInstance(ctx context.Context, data *model.DataInstance) error {
	id, err := d.seq.NextId(ctx, persistence.SEQ_DATA)
	if err != nil {
		return err
	}
	data.Id = id
	d.cache.Set(containerPrefix(data.ContainerId, data.ContainerType)+data.Name, *data, cache.DefaultExpiration)
	return nil
}

func (d *transientDataDao) GetDataInstance(ctx context.Context, name string, containerId int64, containerType model.DataContainerType) (*model.DataInstance, error) {
	value, ok := d.cache.Get(containerPrefix(containerId, containerType) + name)
	if !ok {
		return nil, persistence.DataNotFound(name, containerId, containerType)
	}
	data := value.(model.DataInstance)
	return &data, nil
}

func (d *transientDataDao) GetDataInstances(ctx context.Context, containerId int64, containerType model.DataContainerType) ([]*model.DataInstance, error) {
	prefix := containerPrefix(containerId, containerType)
	var result []*model.DataInstance
	for key, item := range d.cache.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		data := item.Object.(model.DataInstance)
		result = append(result, &data)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Id < result[j].Id
	})
	return result, nil
}
