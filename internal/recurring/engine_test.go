package recurring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/recurring"
)

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func weeklyTask(t *testing.T) *domain.Task {
	t.Helper()

	rec, err := domain.NewIntervalRecurrence(7)
	require.NoError(t, err)

	anchor := date("2024-01-01")
	target := date("2024-01-08")
	return &domain.Task{
		ID:            "weekly",
		Name:          "Water the plants",
		Recurrence:    rec,
		AnchorDate:    anchor,
		TargetDueDate: &target,
	}
}

func TestNextDueAdvancesFromLastCompleted(t *testing.T) {
	task := weeklyTask(t)
	last := date("2024-01-01")
	task.LastCompleted = &last

	due := recurring.NextDue(task)
	require.NotNil(t, due)
	assert.Equal(t, "2024-01-08", due.String())

	last = date("2024-01-10")
	task.LastCompleted = &last
	due = recurring.NextDue(task)
	require.NotNil(t, due)
	assert.Equal(t, "2024-01-17", due.String())
}

func TestNextDueNilWithoutCompletion(t *testing.T) {
	task := weeklyTask(t)
	assert.Nil(t, recurring.NextDue(task))
}

func TestNextDueNilWhenExhausted(t *testing.T) {
	anchor := date("2024-03-14")
	target := date("2024-03-15")
	task := &domain.Task{
		ID:            "one-shot",
		Name:          "File taxes",
		Recurrence:    domain.OneTimeRecurrence(),
		AnchorDate:    anchor,
		TargetDueDate: &target,
	}

	seed := anchor
	task.LastCompleted = &seed
	due := recurring.NextDue(task)
	require.NotNil(t, due)
	assert.Equal(t, "2024-03-15", due.String())

	require.True(t, task.MarkDone(target, time.Now().UTC()))
	assert.Nil(t, recurring.NextDue(task))

	// Undo empties the history, so the task is no longer exhausted but
	// has no completion left to advance from: it becomes unscheduled.
	require.True(t, task.MarkUndone(target, time.Now().UTC()))
	assert.False(t, task.Exhausted())
	assert.Nil(t, recurring.NextDue(task))

	// The calendar still shows its occurrence, derived from the anchor.
	occs := recurring.OccurrencesInRange(task, date("2024-03-01"), date("2024-03-31"), date("2024-03-01"))
	require.Len(t, occs, 1)
	assert.Equal(t, "2024-03-15", occs[0].Date.String())
}

func TestOccurrencesFixedPhaseFromAnchor(t *testing.T) {
	task := weeklyTask(t)
	today := date("2024-01-20")

	occs := recurring.OccurrencesInRange(task, date("2024-01-01"), date("2024-02-29"), today)

	var got []string
	for _, o := range occs {
		got = append(got, o.Date.String())
	}
	assert.Equal(t, []string{
		"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29",
		"2024-02-05", "2024-02-12", "2024-02-19", "2024-02-26",
	}, got)

	// Overdue flags split strictly before today.
	assert.True(t, occs[0].Overdue)
	assert.True(t, occs[1].Overdue)
	assert.False(t, occs[2].Overdue)
}

func TestOccurrencesUnaffectedByCompletions(t *testing.T) {
	// Completing off-schedule moves the next due date but never the
	// calendar phase.
	task := weeklyTask(t)
	today := date("2024-01-20")
	window := func() []recurring.Occurrence {
		return recurring.OccurrencesInRange(task, date("2024-01-01"), date("2024-02-29"), today)
	}

	before := window()
	require.True(t, task.MarkDone(date("2024-01-10"), time.Now().UTC()))
	after := window()

	assert.Equal(t, before, after)
}

func TestOccurrencesPhaseAdvanceFarFromAnchor(t *testing.T) {
	task := weeklyTask(t)
	today := date("2030-06-15")

	// Anchor 2024-01-01, so occurrences stay on the Monday phase years out.
	occs := recurring.OccurrencesInRange(task, date("2030-06-01"), date("2030-06-30"), today)
	require.NotEmpty(t, occs)
	for _, o := range occs {
		assert.Equal(t, time.Monday, o.Date.Weekday())
	}
	assert.Equal(t, "2030-06-03", occs[0].Date.String())
}

func TestOccurrencesRespectTargetFloor(t *testing.T) {
	rec, err := domain.NewIntervalRecurrence(7)
	require.NoError(t, err)

	// Target is two cycles after the first phase slot; nothing before it
	// may surface.
	anchor := date("2024-01-01")
	target := date("2024-01-22")
	task := &domain.Task{
		ID:            "floored",
		Name:          "Deep clean oven",
		Recurrence:    rec,
		AnchorDate:    anchor,
		TargetDueDate: &target,
	}

	occs := recurring.OccurrencesInRange(task, date("2024-01-01"), date("2024-02-05"), date("2024-01-01"))
	var got []string
	for _, o := range occs {
		got = append(got, o.Date.String())
	}
	assert.Equal(t, []string{"2024-01-22", "2024-01-29", "2024-02-05"}, got)
}

func TestOneTimeOccurrence(t *testing.T) {
	anchor := date("2024-03-14")
	target := date("2024-03-15")
	task := &domain.Task{
		ID:            "one-shot",
		Name:          "Renew passport",
		Recurrence:    domain.OneTimeRecurrence(),
		AnchorDate:    anchor,
		TargetDueDate: &target,
	}

	occs := recurring.OccurrencesInRange(task, date("2024-03-01"), date("2024-03-31"), date("2024-03-20"))
	require.Len(t, occs, 1)
	assert.Equal(t, "2024-03-15", occs[0].Date.String())
	assert.True(t, occs[0].Overdue)

	// Outside the window: nothing.
	assert.Empty(t, recurring.OccurrencesInRange(task, date("2024-04-01"), date("2024-04-30"), date("2024-03-20")))

	// Completed: nothing, it is exhausted.
	require.True(t, task.MarkDone(target, time.Now().UTC()))
	assert.Empty(t, recurring.OccurrencesInRange(task, date("2024-03-01"), date("2024-03-31"), date("2024-03-20")))
}

func TestOccurrencesEmptyWindow(t *testing.T) {
	task := weeklyTask(t)
	assert.Nil(t, recurring.OccurrencesInRange(task, date("2024-02-01"), date("2024-01-01"), date("2024-01-01")))
}

func TestOccurrencesDeterministic(t *testing.T) {
	task := weeklyTask(t)
	today := date("2024-01-20")

	first := recurring.OccurrencesInRange(task, date("2024-01-01"), date("2024-03-31"), today)
	second := recurring.OccurrencesInRange(task, date("2024-01-01"), date("2024-03-31"), today)
	assert.Equal(t, first, second)
}
