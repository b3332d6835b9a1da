package telemetry

import "time"

type EventType string

const (
	EventDayStarted         EventType = "day_started"
	EventObjectiveInstalled EventType = "objective_installed"
	EventObjectiveCompleted EventType = "objective_completed"
	EventObjectiveFailed    EventType = "objective_failed"
	EventStepCompleted      EventType = "step_completed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}

// Sink is the write side of the journal. The lifecycle manager and the
// completion tracker record through it; a nil sink is valid and drops events.
type Sink interface {
	RecordEvent(eventType EventType, metadata EventMetadata) error
}
