package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, 24*time.Hour, ParseDuration("24h", time.Hour))

	// Invalid strings fall back to the default
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("tomorrow", time.Hour))
	assert.Equal(t, 30*time.Minute, ParseDuration("1 hour", 30*time.Minute))
}

func TestFormatClockHour(t *testing.T) {
	assert.Equal(t, "09:30", FormatClockHour(9.5))
	assert.Equal(t, "00:00", FormatClockHour(0))
	assert.Equal(t, "14:00", FormatClockHour(14))
	assert.Equal(t, "15:45", FormatClockHour(15.75))
	assert.Equal(t, "23:15", FormatClockHour(23.25))
}

func TestSameDate(t *testing.T) {
	day := time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(day, day))
	assert.True(t, SameDate(day, day.Add(23*time.Hour)))
	assert.False(t, SameDate(day, day.AddDate(0, 0, 1)))
	assert.False(t, SameDate(day, day.AddDate(1, 0, 0)))
}

func TestIntervalsOverlap(t *testing.T) {
	assert.True(t, IntervalsOverlap(9, 11, 10, 12))
	assert.True(t, IntervalsOverlap(10, 12, 9, 11))
	assert.True(t, IntervalsOverlap(9, 12, 10, 11))
	assert.True(t, IntervalsOverlap(10, 11, 9, 12))
	assert.True(t, IntervalsOverlap(9, 11, 9, 11))

	// Touching endpoints do not conflict
	assert.False(t, IntervalsOverlap(9, 10, 10, 11))
	assert.False(t, IntervalsOverlap(10, 11, 9, 10))
	assert.False(t, IntervalsOverlap(9, 10, 11, 12))
}
