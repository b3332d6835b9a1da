package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventDayStarted, EventMetadata{"day": 1}))
	require.NoError(t, repo.RecordEvent(EventObjectiveInstalled, EventMetadata{"template_id": "kill_target"}))
	require.NoError(t, repo.RecordEvent(EventStepCompleted, EventMetadata{"step_id": "kill"}))
	require.NoError(t, repo.RecordEvent(EventObjectiveCompleted, EventMetadata{"template_id": "kill_target"}))
	require.NoError(t, repo.RecordEvent(EventDayStarted, EventMetadata{"day": 2}))
	require.NoError(t, repo.RecordEvent(EventObjectiveInstalled, EventMetadata{"template_id": "eat_part"}))
	require.NoError(t, repo.RecordEvent(EventObjectiveFailed, EventMetadata{"template_id": "eat_part"}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DaysStarted)
	assert.Equal(t, 2, stats.ObjectivesInstalled)
	assert.Equal(t, 1, stats.ObjectivesCompleted)
	assert.Equal(t, 1, stats.ObjectivesFailed)
	assert.Equal(t, 1, stats.StepsCompleted)
	assert.InDelta(t, 0.5, stats.CompletionRate, 0.0001)
	assert.Equal(t, 1, stats.CompletedByTemplate["kill_target"])
}

func TestMemoryRepository_FilterByType(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventDayStarted, nil))
	require.NoError(t, repo.RecordEvent(EventObjectiveCompleted, nil))

	events, err := repo.GetEvents(time.Time{}, []EventType{EventObjectiveCompleted})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventObjectiveCompleted, events[0].Type)
}
