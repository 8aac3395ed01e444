package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sherm18/ThriveOS/internal"
)

func TestComputeDurationWrapsMidnight(t *testing.T) {
	res, err := Compute("23:00", "07:00", 5, internal.FeelingOkay)
	assert.NoError(t, err)
	assert.InDelta(t, 8.0, res.Duration, 0.001)

	// waketime numerically before bedtime: duration = 24 - (bed - wake)
	res, err = Compute("22:30", "06:15", 5, internal.FeelingOkay)
	assert.NoError(t, err)
	assert.InDelta(t, 7.75, res.Duration, 0.001)
}

func TestComputeSameTimesYieldZeroDuration(t *testing.T) {
	res, err := Compute("08:00", "08:00", 5, internal.FeelingOkay)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.Duration)
	// 0h lands in the worst duration band
	assert.Equal(t, 10+18+10, res.Score) // 10 + round(4*4.44) folded into total
}

func TestComputeReferenceVector(t *testing.T) {
	res, err := Compute("23:00", "07:00", 10, internal.FeelingAmazing)
	assert.NoError(t, err)
	assert.InDelta(t, 8.0, res.Duration, 0.001)
	assert.GreaterOrEqual(t, res.Score, 99)
	assert.LessOrEqual(t, res.Score, 100)
}

func TestComputeIsDeterministic(t *testing.T) {
	a, err := Compute("00:45", "09:10", 7, internal.FeelingGood)
	assert.NoError(t, err)
	b, err := Compute("00:45", "09:10", 7, internal.FeelingGood)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeDurationBands(t *testing.T) {
	cases := []struct {
		bedtime, waketime string
		points            int
	}{
		{"23:00", "07:00", 40}, // 8h
		{"23:00", "05:30", 30}, // 6.5h
		{"23:00", "04:30", 20}, // 5.5h
		{"23:00", "02:00", 10}, // 3h
		{"20:00", "08:00", 10}, // 12h, oversleeping scores low too
	}
	for _, tc := range cases {
		// quality 1 and terrible feeling zero out the other bands
		res, err := Compute(tc.bedtime, tc.waketime, 1, internal.FeelingTerrible)
		assert.NoError(t, err)
		assert.Equal(t, tc.points, res.Score, "bedtime %s waketime %s", tc.bedtime, tc.waketime)
	}
}

func TestComputeUnknownFeelingDefaults(t *testing.T) {
	known, err := Compute("23:00", "07:00", 1, internal.FeelingOkay)
	assert.NoError(t, err)
	unknown, err := Compute("23:00", "07:00", 1, internal.Feeling("puzzled"))
	assert.NoError(t, err)
	assert.Equal(t, known.Score, unknown.Score)
}

func TestComputeValidation(t *testing.T) {
	var validationErr *internal.ValidationError

	_, err := Compute("", "07:00", 5, internal.FeelingOkay)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "both times required", validationErr.Reason)

	_, err = Compute("23:00", "", 5, internal.FeelingOkay)
	assert.ErrorAs(t, err, &validationErr)

	_, err = Compute("2300", "07:00", 5, internal.FeelingOkay)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "use HH:MM format", validationErr.Reason)

	_, err = Compute("23:00", "ab:cd", 5, internal.FeelingOkay)
	assert.ErrorAs(t, err, &validationErr)
}

func TestParseClockAcceptsUnpadded(t *testing.T) {
	h, m, err := ParseClock("7:5")
	assert.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)
}
