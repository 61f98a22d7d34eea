package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/storage/compliance"
	"github.com/rezkam/upkeep/internal/storage/memory"
)

func TestMemoryStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (tracker.Repository, func()) {
		return memory.NewStore(), func() {}
	})
}

func TestStoreIsolation(t *testing.T) {
	// Mutating a task after storing it must not leak into the store.
	store := memory.NewStore()
	ctx := context.Background()

	rec, err := domain.NewIntervalRecurrence(3)
	require.NoError(t, err)

	task := &domain.Task{
		ID:         uuid.New().String(),
		Name:       "Take out recycling",
		Recurrence: rec,
		AnchorDate: domain.NewDate(2024, time.June, 1),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.CreateTask(ctx, task))

	task.Name = "changed outside the store"
	task.MarkDone(domain.NewDate(2024, time.June, 4), time.Now().UTC())

	fetched, err := store.FindTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Take out recycling", fetched.Name)
	assert.Empty(t, fetched.CompletionHistory)

	// And mutating a fetched copy must not leak back either.
	fetched.Name = "changed after fetch"
	again, err := store.FindTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Take out recycling", again.Name)
}
