package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressStats(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	completions := memory.NewCompletionRepository()
	ctx := context.Background()

	for _, c := range []domain.Completion{
		{StudentID: memory.StudentJoaoID, WorkoutID: memory.WorkoutUpperID, Points: 45, CompletedAt: now.Add(-2 * time.Hour)},
		{StudentID: memory.StudentJoaoID, WorkoutID: memory.WorkoutLowerID, Points: 40, CompletedAt: now.AddDate(0, 0, -1)},
		{StudentID: memory.StudentJoaoID, WorkoutID: memory.WorkoutUpperID, Points: 45, CompletedAt: now.AddDate(0, 0, -2)},
		{StudentID: memory.StudentMariaID, WorkoutID: memory.WorkoutBackID, Points: 49, CompletedAt: now},
	} {
		c := c
		_, err := completions.Create(ctx, &c)
		require.NoError(t, err)
	}

	svc := NewProgressService(completions).(*progressService)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(ctx, memory.StudentJoaoID)
	require.NoError(t, err)
	assert.Equal(t, 130, stats.TotalPoints)
	assert.Equal(t, 3, stats.WorkoutsCompleted)
	assert.Equal(t, 3, stats.Streak)
	assert.Equal(t, 1, stats.Level.Level)
	assert.Equal(t, 70, stats.Level.PointsToNextLevel)
	assert.False(t, stats.FireMaster())
	require.Len(t, stats.Achievements, 3)
	assert.True(t, stats.Achievements[0].Unlocked)
	assert.True(t, stats.Achievements[1].Unlocked)
	assert.False(t, stats.Achievements[2].Unlocked)

	history, err := svc.History(ctx, memory.StudentJoaoID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 45, history[0].Points)

	empty, err := svc.Stats(ctx, memory.StudentCarlosID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Streak)
	assert.Equal(t, 0, empty.Level.Level)
	assert.False(t, empty.Achievements[0].Unlocked)
}
