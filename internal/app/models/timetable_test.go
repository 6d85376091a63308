package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName(Monday))
	assert.Equal(t, "Sunday", DayName(Sunday))
	assert.Equal(t, "Wednesday", DayName(2))
	assert.Equal(t, "", DayName(-1))
	assert.Equal(t, "", DayName(7))
}

func TestTimetableEntryValidate(t *testing.T) {
	valid := &TimetableEntry{Day: Monday, StartHour: 9, EndHour: 10}
	assert.NoError(t, valid.Validate())

	badDay := &TimetableEntry{Day: 7, StartHour: 9, EndHour: 10}
	assert.Error(t, badDay.Validate())

	negativeStart := &TimetableEntry{Day: Monday, StartHour: -1, EndHour: 10}
	assert.Error(t, negativeStart.Validate())

	pastMidnight := &TimetableEntry{Day: Monday, StartHour: 23, EndHour: 25}
	assert.Error(t, pastMidnight.Validate())

	reversed := &TimetableEntry{Day: Monday, StartHour: 10, EndHour: 9}
	assert.Error(t, reversed.Validate())

	zeroLength := &TimetableEntry{Day: Monday, StartHour: 9, EndHour: 9}
	assert.Error(t, zeroLength.Validate())
}

func TestTimetableEntryOverlapsWith(t *testing.T) {
	base := &TimetableEntry{ID: 1, Day: Monday, StartHour: 9, EndHour: 11}

	overlapping := &TimetableEntry{ID: 2, Day: Monday, StartHour: 10, EndHour: 12}
	assert.True(t, base.OverlapsWith(overlapping))
	assert.True(t, overlapping.OverlapsWith(base))

	contained := &TimetableEntry{ID: 3, Day: Monday, StartHour: 9.5, EndHour: 10.5}
	assert.True(t, base.OverlapsWith(contained))

	// Back-to-back slots do not conflict
	adjacent := &TimetableEntry{ID: 4, Day: Monday, StartHour: 11, EndHour: 12}
	assert.False(t, base.OverlapsWith(adjacent))

	otherDay := &TimetableEntry{ID: 5, Day: Tuesday, StartHour: 9, EndHour: 11}
	assert.False(t, base.OverlapsWith(otherDay))

	// An entry never conflicts with itself, which matters when updating
	same := &TimetableEntry{ID: 1, Day: Monday, StartHour: 9, EndHour: 11}
	assert.False(t, base.OverlapsWith(same))

	// Unsaved entries have ID 0 and are never treated as the same record
	unsavedA := &TimetableEntry{Day: Monday, StartHour: 9, EndHour: 11}
	unsavedB := &TimetableEntry{Day: Monday, StartHour: 9, EndHour: 11}
	assert.True(t, unsavedA.OverlapsWith(unsavedB))
}

func TestTimetableEntryLabel(t *testing.T) {
	entry := &TimetableEntry{Day: Monday, StartHour: 9.5, EndHour: 10.5}
	assert.Equal(t, "Monday 09:30-10:30", entry.Label())

	afternoon := &TimetableEntry{Day: Friday, StartHour: 14, EndHour: 15.75}
	assert.Equal(t, "Friday 14:00-15:45", afternoon.Label())
}
