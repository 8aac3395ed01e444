// Package score turns a logged night (bedtime, waketime, quality rating,
// feeling) into a duration in hours and a 0–100 sleep score.
package score

import (
	"math"
	"strconv"
	"strings"

	"github.com/sherm18/ThriveOS/internal"
)

type Result struct {
	Duration float64 // hours
	Score    int     // 0–100
}

var feelingPoints = map[internal.Feeling]float64{
	internal.FeelingTerrible: 0,
	internal.FeelingTired:    5,
	internal.FeelingOkay:     10,
	internal.FeelingGood:     15,
	internal.FeelingAmazing:  20,
}

// Compute derives duration and score from the raw entry fields. Both are
// recomputed on every save; callers never supply them directly.
func Compute(bedtime, waketime string, quality int, feeling internal.Feeling) (Result, error) {
	if bedtime == "" || waketime == "" {
		return Result{}, internal.NewValidationError("both times required")
	}

	bedH, bedM, err := ParseClock(bedtime)
	if err != nil {
		return Result{}, err
	}
	wakeH, wakeM, err := ParseClock(waketime)
	if err != nil {
		return Result{}, err
	}

	duration := (float64(wakeH) + float64(wakeM)/60) - (float64(bedH) + float64(bedM)/60)
	if duration < 0 {
		duration += 24 // sleep crossed midnight
	}

	total := durationPoints(duration) + qualityPoints(quality) + feelingBonus(feeling)
	s := int(math.Round(total))
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}

	return Result{Duration: duration, Score: s}, nil
}

// ParseClock splits an "HH:MM" string into hour and minute. It does not
// range-check the components; malformed strings fail with a ValidationError.
func ParseClock(s string) (hour, min int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, internal.NewValidationError("use HH:MM format")
	}
	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, internal.NewValidationError("use HH:MM format")
	}
	min, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, internal.NewValidationError("use HH:MM format")
	}
	return hour, min, nil
}

// durationPoints awards up to 40 points, peaking in the 7–9h band.
func durationPoints(hours float64) float64 {
	switch {
	case hours >= 7 && hours <= 9:
		return 40
	case hours >= 6 && hours <= 10:
		return 30
	case hours >= 5 && hours <= 11:
		return 20
	default:
		return 10
	}
}

// qualityPoints maps the 1–10 rating linearly onto ~0–40 points.
func qualityPoints(quality int) float64 {
	return float64(quality-1) * 4.44
}

// feelingBonus awards up to 20 points. Unrecognized feelings fall back to
// the "okay" midpoint so the calculator stays total.
func feelingBonus(feeling internal.Feeling) float64 {
	if pts, ok := feelingPoints[feeling]; ok {
		return pts
	}
	return 10
}
