package badge

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sherm18/ThriveOS/internal"
)

func nightsEndingAt(anchor time.Time, n int, tweak func(i int, e *internal.SleepEntry)) []internal.SleepEntry {
	entries := make([]internal.SleepEntry, 0, n)
	for i := 0; i < n; i++ {
		e := internal.SleepEntry{
			ID:       fmt.Sprintf("e%d", i),
			OwnerID:  "u1",
			Date:     anchor.AddDate(0, 0, -i).Format("2006-01-02"),
			Bedtime:  "23:00",
			Waketime: "07:00",
			Quality:  7,
			Feeling:  internal.FeelingGood,
			Duration: 8.0,
			Score:    85,
		}
		if tweak != nil {
			tweak(i, &e)
		}
		entries = append(entries, e)
	}
	return entries
}

func evalFor(t *testing.T, entries []internal.SleepEntry, id string) Evaluation {
	t.Helper()
	for _, ev := range Evaluate(entries) {
		if ev.BadgeID == id {
			return ev
		}
	}
	t.Fatalf("badge %s not in catalog", id)
	return Evaluation{}
}

var anchor = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

func TestFirstEntryIsBinary(t *testing.T) {
	ev := evalFor(t, nil, "first_entry")
	assert.False(t, ev.Earned)
	assert.Equal(t, 0.0, ev.Progress)

	ev = evalFor(t, nightsEndingAt(anchor, 1, nil), "first_entry")
	assert.True(t, ev.Earned)
	assert.Equal(t, 100.0, ev.Progress)
}

func TestPerfectSleeperProgress(t *testing.T) {
	perfect := func(i int, e *internal.SleepEntry) { e.Score = 100 }

	ev := evalFor(t, nightsEndingAt(anchor, 2, perfect), "perfect_sleeper")
	assert.False(t, ev.Earned)
	assert.Equal(t, 66.67, ev.Progress)

	ev = evalFor(t, nightsEndingAt(anchor, 3, perfect), "perfect_sleeper")
	assert.True(t, ev.Earned)
	assert.Equal(t, 100.0, ev.Progress)
}

func TestSleepChampionTracksBestScore(t *testing.T) {
	ev := evalFor(t, nightsEndingAt(anchor, 2, func(i int, e *internal.SleepEntry) { e.Score = 45 }), "sleep_champion")
	assert.False(t, ev.Earned)
	assert.Equal(t, 50.0, ev.Progress)

	ev = evalFor(t, nightsEndingAt(anchor, 2, func(i int, e *internal.SleepEntry) { e.Score = 92 }), "sleep_champion")
	assert.True(t, ev.Earned)
}

func TestEarlyBirdNeedsSevenRecentNights(t *testing.T) {
	early := func(i int, e *internal.SleepEntry) { e.Bedtime = "21:30" }

	ev := evalFor(t, nightsEndingAt(anchor, 7, early), "early_bird")
	assert.True(t, ev.Earned)
	assert.Equal(t, 100.0, ev.Progress)

	// most recent night too late: the run within the 7-night window is 6
	ev = evalFor(t, nightsEndingAt(anchor, 7, func(i int, e *internal.SleepEntry) {
		if i == 0 {
			e.Bedtime = "23:30"
		} else {
			e.Bedtime = "22:00" // boundary counts
		}
	}), "early_bird")
	assert.False(t, ev.Earned)
	assert.Equal(t, 85.71, ev.Progress)
}

func TestNightOwlCountsAcrossHistory(t *testing.T) {
	late := func(i int, e *internal.SleepEntry) { e.Bedtime = "01:15" }

	ev := evalFor(t, nightsEndingAt(anchor, 4, late), "night_owl")
	assert.False(t, ev.Earned)
	assert.Equal(t, 40.0, ev.Progress)

	ev = evalFor(t, nightsEndingAt(anchor, 10, late), "night_owl")
	assert.True(t, ev.Earned)
}

func TestOptimalSleeperDurationWindow(t *testing.T) {
	ev := evalFor(t, nightsEndingAt(anchor, 3, func(i int, e *internal.SleepEntry) { e.Duration = 7.5 }), "optimal_sleeper")
	assert.True(t, ev.Earned)

	ev = evalFor(t, nightsEndingAt(anchor, 3, func(i int, e *internal.SleepEntry) { e.Duration = 9.0 }), "optimal_sleeper")
	assert.False(t, ev.Earned)
	assert.Equal(t, 0.0, ev.Progress)
}

func TestQualitySleeperRun(t *testing.T) {
	ev := evalFor(t, nightsEndingAt(anchor, 5, func(i int, e *internal.SleepEntry) { e.Quality = 9 }), "quality_sleeper")
	assert.True(t, ev.Earned)

	ev = evalFor(t, nightsEndingAt(anchor, 5, func(i int, e *internal.SleepEntry) {
		if i == 2 {
			e.Quality = 6
		} else {
			e.Quality = 10
		}
	}), "quality_sleeper")
	assert.False(t, ev.Earned)
	assert.Equal(t, 40.0, ev.Progress)
}

func TestConsistencyBadgesShareStreakSemantics(t *testing.T) {
	entries := nightsEndingAt(anchor, 7, nil)
	ev := evalFor(t, entries, "consistent_sleeper")
	assert.True(t, ev.Earned)
	assert.Equal(t, 100.0, ev.Progress)

	ev = evalFor(t, entries, "habit_master")
	assert.False(t, ev.Earned)
	assert.Equal(t, 23.33, ev.Progress)

	// a gap right after the most recent night resets the current streak
	gapped := nightsEndingAt(anchor, 3, nil)
	gapped[1].Date = anchor.AddDate(0, 0, -4).Format("2006-01-02")
	gapped[2].Date = anchor.AddDate(0, 0, -5).Format("2006-01-02")
	ev = evalFor(t, gapped, "consistent_sleeper")
	assert.False(t, ev.Earned)
	assert.Equal(t, 14.29, ev.Progress)
}

func TestWeekendWarrior(t *testing.T) {
	// Feb 2026: Sundays fall on the 1st, 8th, 15th, 22nd
	weekendDates := []string{
		"2026-02-01", "2026-02-07",
		"2026-02-08", "2026-02-14",
		"2026-02-15", "2026-02-21",
		"2026-02-22", "2026-02-28",
	}
	var entries []internal.SleepEntry
	for _, d := range weekendDates {
		entries = append(entries, internal.SleepEntry{
			ID: d, OwnerID: "u1", Date: d,
			Bedtime: "23:00", Waketime: "07:00", Quality: 8,
			Feeling: internal.FeelingGood, Duration: 8, Score: 85,
		})
	}
	ev := evalFor(t, entries, "weekend_warrior")
	assert.True(t, ev.Earned)

	// one weak Saturday disqualifies its whole week
	entries[3].Score = 60
	ev = evalFor(t, entries, "weekend_warrior")
	assert.False(t, ev.Earned)
	assert.Equal(t, 50.0, ev.Progress) // longest run is 2 qualifying weeks
}

func TestEvaluateIsPure(t *testing.T) {
	entries := nightsEndingAt(anchor, 5, nil)
	assert.Equal(t, Evaluate(entries), Evaluate(entries))
}

func TestMergeStampsEarnedDateOnce(t *testing.T) {
	entries := nightsEndingAt(anchor, 1, nil)
	now := time.Date(2026, 3, 18, 9, 30, 0, 0, time.UTC)

	merged, newly := Merge(nil, Evaluate(entries), now)
	assert.Contains(t, newly, "first_entry")

	var first internal.BadgeState
	for _, st := range merged {
		if st.BadgeID == "first_entry" {
			first = st
		}
	}
	assert.True(t, first.Earned)
	assert.Equal(t, "2026-03-18", first.EarnedDate)

	// re-evaluating with unchanged entries must not move the earned date
	later := now.AddDate(0, 0, 3)
	again, newly := Merge(merged, Evaluate(entries), later)
	assert.Empty(t, newly)
	assert.Equal(t, merged, again)
}

func TestMergeNeverClearsEarnedDate(t *testing.T) {
	prev := []internal.BadgeState{{
		BadgeID: "consistent_sleeper", Earned: true, Progress: 100, EarnedDate: "2026-01-05",
	}}
	// history no longer satisfies the rule; the date survives anyway
	merged, newly := Merge(prev, Evaluate(nightsEndingAt(anchor, 1, nil)), anchor)
	assert.Empty(t, newly)
	for _, st := range merged {
		if st.BadgeID == "consistent_sleeper" {
			assert.False(t, st.Earned)
			assert.Equal(t, "2026-01-05", st.EarnedDate)
		}
	}
}

func TestCollectionPartitionsCatalog(t *testing.T) {
	merged, _ := Merge(nil, Evaluate(nightsEndingAt(anchor, 1, nil)), anchor)
	earned, unearned := Collection(merged)
	assert.Len(t, earned, 1)
	assert.Equal(t, "first_entry", earned[0].ID)
	assert.Len(t, unearned, len(Catalog())-1)
}
