package memory

import (
	"context"
	"sync"

	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

var _ persistence.SequenceDao = new(sequenceDao)

type sequenceDao struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewSequenceDao() *sequenceDao {
	return &sequenceDao{
		last: make(map[string]int64),
	}
}

func (s *sequenceDao) NextId(ctx context.Context, sequence string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[sequence]++
	return s.last[sequence], nil
}
