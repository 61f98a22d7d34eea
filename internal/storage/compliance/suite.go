// Package compliance defines a shared behavioral test suite that every
// repository backend must pass.
package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/domain"
)

// newTask builds a fully-populated recurring task for round-trip checks.
func newTask(t *testing.T) *domain.Task {
	t.Helper()

	rec, err := domain.NewIntervalRecurrence(7)
	require.NoError(t, err)

	anchor := domain.NewDate(2024, time.January, 1)
	target := anchor.AddDays(7)
	last := anchor.AddDays(14)
	now := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

	return &domain.Task{
		ID:            uuid.New().String(),
		Name:          "Water the plants",
		Category:      "home",
		Description:   "All of them, even the cactus",
		Recurrence:    rec,
		AnchorDate:    anchor,
		TargetDueDate: &target,
		LastCompleted: &last,
		CompletionHistory: []domain.Completion{
			{CompletedAt: now.AddDate(0, 0, -7), Date: anchor.AddDays(7)},
			{CompletedAt: now, Date: last},
		},
		CreatedAt: now.AddDate(0, 0, -14),
		UpdatedAt: now,
	}
}

// RunRepositoryComplianceTest runs a standard set of tests against a
// Repository implementation. setup returns a fresh (clean) repository
// plus a teardown function.
func RunRepositoryComplianceTest(t *testing.T, setup func() (tracker.Repository, func())) {
	t.Run("CreateAndGetTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask(t)
		require.NoError(t, repo.CreateTask(ctx, task))

		fetched, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, fetched.ID)
		assert.Equal(t, task.Name, fetched.Name)
		assert.Equal(t, task.Category, fetched.Category)
		assert.Equal(t, task.Description, fetched.Description)
		assert.Equal(t, task.Recurrence, fetched.Recurrence)
		assert.True(t, task.AnchorDate.Equal(fetched.AnchorDate))
		require.NotNil(t, fetched.TargetDueDate)
		assert.True(t, task.TargetDueDate.Equal(*fetched.TargetDueDate))
		require.NotNil(t, fetched.LastCompleted)
		assert.True(t, task.LastCompleted.Equal(*fetched.LastCompleted))
		require.Len(t, fetched.CompletionHistory, 2)
		assert.True(t, task.CompletionHistory[1].Date.Equal(fetched.CompletionHistory[1].Date))
		assert.True(t, task.CompletionHistory[1].CompletedAt.Equal(fetched.CompletionHistory[1].CompletedAt))
	})

	t.Run("CreateOneTimeTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		anchor := domain.NewDate(2024, time.March, 14)
		target := anchor.AddDays(1)
		task := &domain.Task{
			ID:            uuid.New().String(),
			Name:          "Renew passport",
			Recurrence:    domain.OneTimeRecurrence(),
			AnchorDate:    anchor,
			TargetDueDate: &target,
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		}
		require.NoError(t, repo.CreateTask(ctx, task))

		fetched, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, fetched.Recurrence.OneTime)
		assert.False(t, fetched.Exhausted())
		assert.Nil(t, fetched.LastCompleted)
		assert.Empty(t, fetched.CompletionHistory)
	})

	t.Run("DuplicateCreate", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask(t)
		require.NoError(t, repo.CreateTask(ctx, task))

		err := repo.CreateTask(ctx, task)
		assert.ErrorIs(t, err, domain.ErrTaskExists)
	})

	t.Run("UpdateTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask(t)
		require.NoError(t, repo.CreateTask(ctx, task))

		done := task.MarkDone(domain.NewDate(2024, time.January, 22), time.Now().UTC())
		require.True(t, done)
		task.Name = "Water the plants twice"
		require.NoError(t, repo.UpdateTask(ctx, task))

		fetched, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water the plants twice", fetched.Name)
		require.Len(t, fetched.CompletionHistory, 3)
		require.NotNil(t, fetched.LastCompleted)
		assert.Equal(t, "2024-01-22", fetched.LastCompleted.String())
	})

	t.Run("UpdateNonExistentTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := repo.UpdateTask(ctx, newTask(t))
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("ListTasks", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		first := newTask(t)
		second := newTask(t)
		second.Name = "Descale the kettle"

		require.NoError(t, repo.CreateTask(ctx, first))
		require.NoError(t, repo.CreateTask(ctx, second))

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)

		ids := make(map[string]bool)
		for _, task := range tasks {
			ids[task.ID] = true
		}
		assert.True(t, ids[first.ID])
		assert.True(t, ids[second.ID])
	})

	t.Run("DeleteTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask(t)
		require.NoError(t, repo.CreateTask(ctx, task))
		require.NoError(t, repo.DeleteTask(ctx, task.ID))

		_, err := repo.FindTaskByID(ctx, task.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("DeleteNonExistentTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := repo.DeleteTask(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("GetNonExistentTask", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		_, err := repo.FindTaskByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}
