package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/domain"
)

func newWeeklyTask(t *testing.T) *domain.Task {
	t.Helper()

	rec, err := domain.NewIntervalRecurrence(7)
	require.NoError(t, err)

	anchor := domain.NewDate(2024, time.January, 1)
	target := anchor.AddDays(7)
	seed := anchor
	return &domain.Task{
		ID:            "task-1",
		Name:          "Clean the fish tank",
		Recurrence:    rec,
		AnchorDate:    anchor,
		TargetDueDate: &target,
		LastCompleted: &seed,
	}
}

func TestMarkDoneIsIdempotentPerDate(t *testing.T) {
	task := newWeeklyTask(t)
	today := domain.NewDate(2024, time.January, 8)
	now := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

	assert.True(t, task.MarkDone(today, now))
	require.Len(t, task.CompletionHistory, 1)
	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(today))

	// Second click on the same day changes nothing.
	assert.False(t, task.MarkDone(today, now.Add(time.Hour)))
	assert.Len(t, task.CompletionHistory, 1)
}

func TestMarkUndoneRevertsToPreviousCompletion(t *testing.T) {
	task := newWeeklyTask(t)
	now := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	first := domain.NewDate(2024, time.January, 8)
	second := domain.NewDate(2024, time.January, 15)
	require.True(t, task.MarkDone(first, now.AddDate(0, 0, -7)))
	require.True(t, task.MarkDone(second, now))

	assert.True(t, task.MarkUndone(second, now))
	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(first))
	assert.Len(t, task.CompletionHistory, 1)
}

func TestMarkUndoneLocatesEntryByDate(t *testing.T) {
	// Today's entry may not be the last appended one; undo must remove
	// the entry matching the date, not blindly pop the tail.
	task := newWeeklyTask(t)
	now := time.Now().UTC()

	jan8 := domain.NewDate(2024, time.January, 8)
	jan15 := domain.NewDate(2024, time.January, 15)
	require.True(t, task.MarkDone(jan15, now))
	require.True(t, task.MarkDone(jan8, now))

	assert.True(t, task.MarkUndone(jan15, now))
	require.Len(t, task.CompletionHistory, 1)
	assert.True(t, task.CompletionHistory[0].Date.Equal(jan8))
	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(jan8))
}

func TestMarkDoneBackfillKeepsLatestCompletion(t *testing.T) {
	task := newWeeklyTask(t)
	now := time.Now().UTC()

	jan8 := domain.NewDate(2024, time.January, 8)
	jan15 := domain.NewDate(2024, time.January, 15)
	require.True(t, task.MarkDone(jan15, now))

	// Backfilling an earlier date records history but never pulls the
	// schedule backwards.
	require.True(t, task.MarkDone(jan8, now))
	assert.Len(t, task.CompletionHistory, 2)
	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(jan15))
}

func TestMarkUndoneWithoutEntryIsNoOp(t *testing.T) {
	task := newWeeklyTask(t)
	now := time.Now().UTC()

	assert.False(t, task.MarkUndone(domain.NewDate(2024, time.January, 8), now))
	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(task.AnchorDate))
}

func TestMarkUndoneEmptiesHistory(t *testing.T) {
	task := newWeeklyTask(t)
	task.LastCompleted = nil
	now := time.Now().UTC()

	today := domain.NewDate(2024, time.January, 8)
	require.True(t, task.MarkDone(today, now))
	require.True(t, task.MarkUndone(today, now))

	assert.Nil(t, task.LastCompleted)
	assert.Empty(t, task.CompletionHistory)
}

func TestExhaustionDerivedFromHistory(t *testing.T) {
	anchor := domain.NewDate(2024, time.March, 14)
	target := anchor.AddDays(1)
	task := &domain.Task{
		ID:            "one-shot",
		Name:          "Replace smoke detector battery",
		Recurrence:    domain.OneTimeRecurrence(),
		AnchorDate:    anchor,
		TargetDueDate: &target,
	}
	now := time.Now().UTC()

	assert.False(t, task.Exhausted())

	require.True(t, task.MarkDone(target, now))
	assert.True(t, task.Exhausted())

	// Undoing the completion revives the task.
	require.True(t, task.MarkUndone(target, now))
	assert.False(t, task.Exhausted())
}

func TestRecurringTaskNeverExhausted(t *testing.T) {
	task := newWeeklyTask(t)
	now := time.Now().UTC()

	task.MarkDone(domain.NewDate(2024, time.January, 8), now)
	task.MarkDone(domain.NewDate(2024, time.January, 15), now)
	assert.False(t, task.Exhausted())
}

func TestSkipMovesLastCompletedWithoutHistory(t *testing.T) {
	task := newWeeklyTask(t)
	now := time.Now().UTC()
	due := domain.NewDate(2024, time.January, 8)

	task.Skip(due, now)

	require.NotNil(t, task.LastCompleted)
	assert.True(t, task.LastCompleted.Equal(due))
	assert.Empty(t, task.CompletionHistory)
	assert.False(t, task.CompletedOn(due))
}

func TestAnchorImmutableUnderLifecycle(t *testing.T) {
	task := newWeeklyTask(t)
	anchor := task.AnchorDate
	target := *task.TargetDueDate
	now := time.Now().UTC()

	task.MarkDone(domain.NewDate(2024, time.January, 8), now)
	task.Skip(domain.NewDate(2024, time.January, 15), now)
	task.MarkUndone(domain.NewDate(2024, time.January, 8), now)

	assert.True(t, task.AnchorDate.Equal(anchor))
	assert.True(t, task.TargetDueDate.Equal(target))
}

func TestNewIntervalRecurrence(t *testing.T) {
	rec, err := domain.NewIntervalRecurrence(30)
	require.NoError(t, err)
	assert.False(t, rec.OneTime)
	assert.Equal(t, 30, rec.CycleDays())

	for _, days := range []int{0, -1, -30} {
		_, err := domain.NewIntervalRecurrence(days)
		assert.ErrorIs(t, err, domain.ErrInvalidFrequency, "days %d", days)
	}
}

func TestOneTimeRecurrenceCycle(t *testing.T) {
	rec := domain.OneTimeRecurrence()
	assert.True(t, rec.OneTime)
	assert.Equal(t, 1, rec.CycleDays())
}

func TestNewName(t *testing.T) {
	name, err := domain.NewName("  Mow the lawn  ")
	require.NoError(t, err)
	assert.Equal(t, "Mow the lawn", name.String())

	_, err = domain.NewName("   ")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = domain.NewName(string(long))
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}
