package daterange

import (
	"testing"
	"time"

	"rental-booking/apperrors"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInclusiveDays(t *testing.T) {
	t.Run("SameDayIsOneBillableDay", func(t *testing.T) {
		days, err := InclusiveDays(day(2025, 3, 10), day(2025, 3, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("CountsBothEndpoints", func(t *testing.T) {
		days, err := InclusiveDays(day(2025, 3, 10), day(2025, 3, 12))
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := InclusiveDays(day(2025, 3, 12), day(2025, 3, 10))
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	})

	t.Run("IgnoresTimeOfDay", func(t *testing.T) {
		start := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
		days, err := InclusiveDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("SpansMonthBoundary", func(t *testing.T) {
		days, err := InclusiveDays(day(2025, 1, 30), day(2025, 2, 2))
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})
}

func TestOverlaps(t *testing.T) {
	t.Run("DisjointRanges", func(t *testing.T) {
		assert.False(t, Overlaps(
			day(2025, 3, 1), day(2025, 3, 5),
			day(2025, 3, 6), day(2025, 3, 10),
		))
	})

	t.Run("SharedBoundaryDayOverlaps", func(t *testing.T) {
		// Closed intervals: a rental ending on the 5th conflicts with one
		// starting on the 5th.
		assert.True(t, Overlaps(
			day(2025, 3, 1), day(2025, 3, 5),
			day(2025, 3, 5), day(2025, 3, 10),
		))
	})

	t.Run("ContainedRange", func(t *testing.T) {
		assert.True(t, Overlaps(
			day(2025, 3, 1), day(2025, 3, 31),
			day(2025, 3, 10), day(2025, 3, 12),
		))
	})

	t.Run("PartialOverlap", func(t *testing.T) {
		assert.True(t, Overlaps(
			day(2025, 3, 1), day(2025, 3, 10),
			day(2025, 3, 8), day(2025, 3, 15),
		))
	})

	t.Run("Symmetric", func(t *testing.T) {
		s1, e1 := day(2025, 3, 1), day(2025, 3, 5)
		s2, e2 := day(2025, 3, 4), day(2025, 3, 8)
		assert.Equal(t, Overlaps(s1, e1, s2, e2), Overlaps(s2, e2, s1, e1))
	})
}
