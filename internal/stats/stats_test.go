package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sherm18/ThriveOS/internal"
)

func entryOn(date string, score int) internal.SleepEntry {
	return internal.SleepEntry{ID: date, OwnerID: "u1", Date: date, Score: score}
}

func daysAgo(anchor time.Time, n int) string {
	return anchor.AddDate(0, 0, -n).Format("2006-01-02")
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	assert.Equal(t, internal.SleepStats{}, got)
	assert.Zero(t, got.TotalNights)
	assert.Zero(t, got.AverageScore)
	assert.Zero(t, got.CurrentStreak)
	assert.Zero(t, got.BestStreak)
}

func TestComputeAverageRoundsToOneDecimal(t *testing.T) {
	anchor := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	entries := []internal.SleepEntry{
		entryOn(daysAgo(anchor, 0), 80),
		entryOn(daysAgo(anchor, 1), 85),
		entryOn(daysAgo(anchor, 2), 90),
	}
	got := Compute(entries)
	assert.Equal(t, 3, got.TotalNights)
	assert.Equal(t, 85.0, got.AverageScore)

	entries = append(entries, entryOn(daysAgo(anchor, 3), 76))
	got = Compute(entries)
	assert.Equal(t, 82.8, got.AverageScore) // 331/4 = 82.75, rounds to 82.8
}

func TestComputeStreakWithGap(t *testing.T) {
	anchor := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	// entries today, yesterday and five days ago: the gap breaks the run
	entries := []internal.SleepEntry{
		entryOn(daysAgo(anchor, 5), 70),
		entryOn(daysAgo(anchor, 0), 80),
		entryOn(daysAgo(anchor, 1), 90),
	}
	got := Compute(entries)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.BestStreak)
}

func TestComputeUnbrokenStreak(t *testing.T) {
	anchor := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	var entries []internal.SleepEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, entryOn(daysAgo(anchor, i), 75))
	}
	got := Compute(entries)
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 7, got.BestStreak)
}

func TestComputeAnchorsAtMostRecentEntry(t *testing.T) {
	// no entry for wall-clock today; streak still counts from the latest log
	anchor := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []internal.SleepEntry{
		entryOn(daysAgo(anchor, 1), 60),
		entryOn(daysAgo(anchor, 0), 60),
		entryOn(daysAgo(anchor, 2), 60),
	}
	got := Compute(entries)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 3, got.BestStreak)
}

func TestStreakWalkEmpty(t *testing.T) {
	current, best := StreakWalk(nil)
	assert.Zero(t, current)
	assert.Zero(t, best)
}

func TestSortByDateDescDoesNotMutate(t *testing.T) {
	entries := []internal.SleepEntry{
		entryOn("2026-01-01", 50),
		entryOn("2026-01-03", 50),
		entryOn("2026-01-02", 50),
	}
	sorted := SortByDateDesc(entries)
	assert.Equal(t, "2026-01-03", sorted[0].Date)
	assert.Equal(t, "2026-01-01", entries[0].Date)
}

func TestDayIgnoresTimeOfDayAndRejectsGarbage(t *testing.T) {
	d := Day("2026-03-14")
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), d)
	assert.True(t, Day("not-a-date").IsZero())
}
