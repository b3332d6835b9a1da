package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period              string            `json:"period"`
	EventCounts         map[EventType]int `json:"event_counts"`
	DaysStarted         int               `json:"days_started"`
	ObjectivesInstalled int               `json:"objectives_installed"`
	ObjectivesCompleted int               `json:"objectives_completed"`
	ObjectivesFailed    int               `json:"objectives_failed"`
	StepsCompleted      int               `json:"steps_completed"`
	CompletionRate      float64           `json:"completion_rate"`
	CompletedByTemplate map[string]int    `json:"completed_by_template"`
}

// CalculateStats computes objective balance stats from journal events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:              since.Format("2006-01-02"),
		EventCounts:         make(map[EventType]int),
		CompletedByTemplate: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventDayStarted:
			stats.DaysStarted++
		case EventObjectiveInstalled:
			stats.ObjectivesInstalled++
		case EventObjectiveCompleted:
			stats.ObjectivesCompleted++
			if tpl, ok := metadata["template_id"].(string); ok {
				stats.CompletedByTemplate[tpl]++
			}
		case EventObjectiveFailed:
			stats.ObjectivesFailed++
		case EventStepCompleted:
			stats.StepsCompleted++
		}
	}

	resolved := stats.ObjectivesCompleted + stats.ObjectivesFailed
	if resolved > 0 {
		stats.CompletionRate = float64(stats.ObjectivesCompleted) / float64(resolved)
	}

	return stats, nil
}
