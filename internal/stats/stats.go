// Package stats derives aggregate sleep statistics from an owner's full
// entry history. Everything is recomputed from scratch on each call; there
// is no incremental path.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/sherm18/ThriveOS/internal"
)

// Compute returns totals, the average score (one decimal) and the
// current/best consecutive-day streaks for the given entries.
func Compute(entries []internal.SleepEntry) internal.SleepStats {
	if len(entries) == 0 {
		return internal.SleepStats{}
	}

	total := 0
	for _, e := range entries {
		total += e.Score
	}
	avg := math.Round(float64(total)/float64(len(entries))*10) / 10

	sorted := SortByDateDesc(entries)
	days := make([]time.Time, len(sorted))
	for i, e := range sorted {
		days[i] = Day(e.Date)
	}
	current, best := StreakWalk(days)

	return internal.SleepStats{
		TotalNights:   len(entries),
		AverageScore:  avg,
		CurrentStreak: current,
		BestStreak:    best,
	}
}

// SortByDateDesc returns a copy of entries ordered most recent first.
// ISO dates sort lexicographically, so string comparison is enough.
func SortByDateDesc(entries []internal.SleepEntry) []internal.SleepEntry {
	sorted := make([]internal.SleepEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// Day parses a YYYY-MM-DD string to a UTC midnight instant. Unparseable
// dates collapse to the zero time, which breaks any streak they sit in.
func Day(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StreakWalk scans days (most recent first) against the expected sequence
// anchor, anchor-1d, anchor-2d, ... where anchor is the first element.
// current is the length of the unbroken run containing index 0; best is
// the longest run seen anywhere in the walk. Duplicate days are not
// deduplicated and will break the offset sequence.
func StreakWalk(days []time.Time) (current, best int) {
	if len(days) == 0 {
		return 0, 0
	}

	anchor := days[0]
	run := 0
	leading := true
	for i, d := range days {
		if d.Equal(anchor.AddDate(0, 0, -i)) {
			run++
			if leading {
				current = run
			}
		} else {
			if run > best {
				best = run
			}
			run = 0
			leading = false
		}
	}
	if run > best {
		best = run
	}
	return current, best
}
