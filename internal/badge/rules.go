package badge

import (
	"math"
	"sort"
	"time"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/score"
	"github.com/sherm18/ThriveOS/internal/stats"
)

// progress is min(100, n/threshold×100) rounded to two decimals, so a
// rule's progress only ever grows as qualifying entries accumulate.
func progress(n, threshold int) float64 {
	p := float64(n) / float64(threshold) * 100
	if p > 100 {
		p = 100
	}
	return math.Round(p*100) / 100
}

func runEval(id string, run, threshold int) Evaluation {
	return Evaluation{BadgeID: id, Earned: run >= threshold, Progress: progress(run, threshold)}
}

// longestRun scans entries in the given order and returns the longest
// stretch of consecutive entries satisfying pred.
func longestRun(entries []internal.SleepEntry, pred func(internal.SleepEntry) bool) int {
	run, max := 0, 0
	for _, e := range entries {
		if pred(e) {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 0
		}
	}
	return max
}

func recent(entries []internal.SleepEntry, n int) []internal.SleepEntry {
	sorted := stats.SortByDateDesc(entries)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Bedtime at or before 22:00 for the 7 most recent nights.
func checkEarlyBird(entries []internal.SleepEntry) Evaluation {
	run := longestRun(recent(entries, 7), func(e internal.SleepEntry) bool {
		h, m, err := score.ParseClock(e.Bedtime)
		return err == nil && h*60+m <= 22*60
	})
	return runEval("early_bird", run, 7)
}

// Ten nights (anywhere in history) with a bedtime hour after midnight.
func checkNightOwl(entries []internal.SleepEntry) Evaluation {
	lateNights := 0
	for _, e := range entries {
		if h, _, err := score.ParseClock(e.Bedtime); err == nil && h >= 0 && h < 6 {
			lateNights++
		}
	}
	return runEval("night_owl", lateNights, 10)
}

// Duration within half an hour of 8h for the 3 most recent nights.
func checkOptimalSleeper(entries []internal.SleepEntry) Evaluation {
	run := longestRun(recent(entries, 3), func(e internal.SleepEntry) bool {
		return e.Duration >= 7.5 && e.Duration <= 8.5
	})
	return runEval("optimal_sleeper", run, 3)
}

// Quality rated 9+ for the 5 most recent nights.
func checkQualitySleeper(entries []internal.SleepEntry) Evaluation {
	run := longestRun(recent(entries, 5), func(e internal.SleepEntry) bool {
		return e.Quality >= 9
	})
	return runEval("quality_sleeper", run, 5)
}

// Any single entry scoring 90+. Progress tracks the best score so far.
func checkSleepChampion(entries []internal.SleepEntry) Evaluation {
	best := 0
	for _, e := range entries {
		if e.Score > best {
			best = e.Score
		}
	}
	return runEval("sleep_champion", best, 90)
}

func checkPerfectSleeper(entries []internal.SleepEntry) Evaluation {
	perfect := 0
	for _, e := range entries {
		if e.Score == 100 {
			perfect++
		}
	}
	return runEval("perfect_sleeper", perfect, 3)
}

// Earned the moment any entry exists. Progress is strictly 0 or 100.
func checkFirstEntry(entries []internal.SleepEntry) Evaluation {
	ev := Evaluation{BadgeID: "first_entry"}
	if len(entries) >= 1 {
		ev.Earned = true
		ev.Progress = 100
	}
	return ev
}

// streakCheck builds a consecutive-day rule sharing the aggregator's
// offset walk, so the streak semantics stay in one place.
func streakCheck(id string, threshold int) func([]internal.SleepEntry) Evaluation {
	return func(entries []internal.SleepEntry) Evaluation {
		if len(entries) == 0 {
			return Evaluation{BadgeID: id}
		}
		sorted := stats.SortByDateDesc(entries)
		days := make([]time.Time, len(sorted))
		for i, e := range sorted {
			days[i] = stats.Day(e.Date)
		}
		current, _ := stats.StreakWalk(days)
		return runEval(id, current, threshold)
	}
}

// Weekends (Sat/Sun) grouped by calendar week; a week qualifies with two
// or more weekend entries all scoring 80+. Earned at 4 consecutive
// qualifying weeks, scanned newest-first.
func checkWeekendWarrior(entries []internal.SleepEntry) Evaluation {
	byWeek := map[string][]internal.SleepEntry{}
	for _, e := range entries {
		d := stats.Day(e.Date)
		if d.IsZero() {
			continue
		}
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			continue
		}
		weekStart := d.AddDate(0, 0, -int(wd))
		key := weekStart.Format("2006-01-02")
		byWeek[key] = append(byWeek[key], e)
	}

	weeks := make([]string, 0, len(byWeek))
	for k := range byWeek {
		weeks = append(weeks, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))

	run, max := 0, 0
	for _, week := range weeks {
		qualifies := len(byWeek[week]) >= 2
		for _, e := range byWeek[week] {
			if e.Score < 80 {
				qualifies = false
				break
			}
		}
		if qualifies {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 0
		}
	}
	return runEval("weekend_warrior", max, 4)
}
