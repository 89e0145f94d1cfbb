package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by everything that travels on the bus.
type Event interface {
	Type() string
}

// FlowEvent carries the fields shared by every event of one workflow.
type FlowEvent struct {
	ID            uuid.UUID
	CorrelationID uuid.UUID
	Timestamp     time.Time
}

// NewFlowEvent starts a new workflow with a fresh correlation ID.
func NewFlowEvent() FlowEvent {
	id := uuid.New()
	return FlowEvent{ID: id, CorrelationID: id, Timestamp: time.Now()}
}

// Flow returns the flow header. Embedding types expose it to generic middleware.
func (f FlowEvent) Flow() FlowEvent { return f }

// Next derives the flow header of a follow-up event in the same workflow.
func (f FlowEvent) Next() FlowEvent {
	return FlowEvent{ID: uuid.New(), CorrelationID: f.CorrelationID, Timestamp: time.Now()}
}
