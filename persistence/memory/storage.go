package memory

import (
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/persistence"
)

// NewStorage builds every dao on one shared sequence.
func NewStorage(transientTTL time.Duration) *persistence.Storage {
	seq := NewSequenceDao()
	return &persistence.Storage{
		Sequence:        seq,
		Definitions:     NewProcessDefinitionDao(),
		Actors:          NewActorDao(seq),
		FlowNodes:       NewFlowNodeInstanceDao(seq),
		Data:            NewDataInstanceDao(seq),
		TransientData:   NewTransientDataDao(seq, transientTTL),
		Connectors:      NewConnectorInstanceDao(seq),
		RefBusinessData: NewRefBusinessDataDao(seq),
	}
}
