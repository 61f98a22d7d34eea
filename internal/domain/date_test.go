package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/domain"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2024-03-15", d.String())
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "15/03/2024", "2024-13-01", "2024-02-30", "yesterday"} {
		_, err := domain.ParseDate(s)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", s)
	}
}

func TestDateOfUsesLocalCalendarDate(t *testing.T) {
	// 23:30 on March 15 in a UTC+2 zone is still March 15 for the user,
	// even though the UTC instant is already March 15 21:30.
	zone := time.FixedZone("UTC+2", 2*60*60)
	wall := time.Date(2024, time.March, 15, 23, 30, 0, 0, zone)

	d := domain.DateOf(wall)
	assert.Equal(t, "2024-03-15", d.String())

	// And 00:30 on March 16 local is March 16, though UTC says March 15.
	wall = time.Date(2024, time.March, 16, 0, 30, 0, 0, zone)
	assert.Equal(t, "2024-03-16", domain.DateOf(wall).String())
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	tests := []struct {
		name string
		from string
		days int
		want string
	}{
		{"within month", "2024-01-10", 7, "2024-01-17"},
		{"month rollover", "2024-01-31", 1, "2024-02-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"non-leap year", "2023-02-28", 1, "2023-03-01"},
		{"year rollover", "2023-12-31", 1, "2024-01-01"},
		{"negative", "2024-03-01", -1, "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := domain.ParseDate(tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, from.AddDays(tt.days).String())
		})
	}
}

func TestDaysUntil(t *testing.T) {
	a := domain.NewDate(2024, time.January, 1)
	b := domain.NewDate(2024, time.February, 1)

	assert.Equal(t, 31, a.DaysUntil(b))
	assert.Equal(t, -31, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))

	// Spanning a leap day.
	c := domain.NewDate(2024, time.March, 1)
	assert.Equal(t, 29, b.DaysUntil(c))
}

func TestDateOrdering(t *testing.T) {
	a := domain.NewDate(2024, time.June, 1)
	b := domain.NewDate(2024, time.June, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(domain.NewDate(2024, time.June, 1)))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := domain.NewDate(2024, time.July, 4)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-04"`, string(data))

	var back domain.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`"07/04/2024"`), &back))
}
