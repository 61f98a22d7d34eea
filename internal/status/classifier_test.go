package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/status"
)

func TestClassifyBoundaries(t *testing.T) {
	today := domain.NewDate(2024, time.June, 15)

	tests := []struct {
		name     string
		offset   int
		category status.Category
	}{
		{"yesterday is overdue", -1, status.CategoryOverdue},
		{"long past is overdue", -90, status.CategoryOverdue},
		{"today is due soon", 0, status.CategoryDueSoon},
		{"window edge is due soon", 30, status.CategoryDueSoon},
		{"past window is upcoming", 31, status.CategoryUpcoming},
		{"far future is upcoming", 365, status.CategoryUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := today.AddDays(tt.offset)
			st := status.Classify(&due, today, status.DefaultDueSoonWindowDays)
			assert.Equal(t, tt.category, st.Category)
			assert.Equal(t, tt.offset, st.DaysUntil)
		})
	}
}

func TestClassifyUnscheduled(t *testing.T) {
	today := domain.NewDate(2024, time.June, 15)

	st := status.Classify(nil, today, status.DefaultDueSoonWindowDays)
	assert.Equal(t, status.CategoryUnscheduled, st.Category)
	assert.Equal(t, status.UnscheduledSortKey, st.DaysUntil)
}

func TestClassifyCustomWindow(t *testing.T) {
	today := domain.NewDate(2024, time.June, 15)

	due := today.AddDays(10)
	st := status.Classify(&due, today, 7)
	assert.Equal(t, status.CategoryUpcoming, st.Category)

	st = status.Classify(&due, today, 10)
	assert.Equal(t, status.CategoryDueSoon, st.Category)

	// Non-positive windows fall back to the default.
	due = today.AddDays(30)
	st = status.Classify(&due, today, 0)
	assert.Equal(t, status.CategoryDueSoon, st.Category)
}

func TestSortKeyOrdering(t *testing.T) {
	// Ascending DaysUntil yields overdue first, then due-soon, upcoming,
	// and unscheduled last.
	today := domain.NewDate(2024, time.June, 15)

	overdue := today.AddDays(-3)
	soon := today.AddDays(2)
	far := today.AddDays(200)

	keys := []int{
		status.Classify(&overdue, today, 30).DaysUntil,
		status.Classify(&soon, today, 30).DaysUntil,
		status.Classify(&far, today, 30).DaysUntil,
		status.Classify(nil, today, 30).DaysUntil,
	}
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}
