package redis

import (
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/persistence/memory"
)

// NewStorage builds the redis daos. Transient data never reaches redis, it stays in process memory.
func NewStorage(conf Config, transientTTL time.Duration) *persistence.Storage {
	base := newBaseDao(conf)
	seq := NewRedisSequenceDao(base)
	metadata := NewRedisMetadataStorage(base, seq)
	return &persistence.Storage{
		Sequence:        seq,
		Definitions:     metadata,
		Actors:          metadata,
		FlowNodes:       NewRedisFlowNodeDao(base, seq),
		Data:            NewRedisDataDao(base, seq),
		TransientData:   memory.NewTransientDataDao(seq, transientTTL),
		Connectors:      NewRedisConnectorDao(base, seq),
		RefBusinessData: NewRedisRefBusinessDataDao(base, seq),
	}
}
