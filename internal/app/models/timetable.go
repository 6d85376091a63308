package models

import (
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/helpers"
)

// Week days for timetable slots, Monday = 0
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the English name for a day index, or "" when out of range
func DayName(day int) string {
	if day < Monday || day > Sunday {
		return ""
	}
	return dayNames[day]
}

// TimetableEntry defines one recurring weekly slot in the 'timetable_entries'
// table. Times are fractional hours in [0,24), half-open: a slot 9-10 does
// not conflict with a slot 10-11.
type TimetableEntry struct {
	ID          int64   `json:"id" db:"id"`
	CourseID    int64   `json:"courseId" db:"course_id"`
	FacultyID   int64   `json:"facultyId" db:"faculty_id"`
	ClassroomID int64   `json:"classroomId" db:"classroom_id"`
	BatchID     int64   `json:"batchId" db:"batch_id"`
	SemesterID  int64   `json:"semesterId" db:"semester_id"`
	Day         int     `json:"day" db:"day" example:"0"`
	StartHour   float64 `json:"startHour" db:"start_hour" example:"9.5"`
	EndHour     float64 `json:"endHour" db:"end_hour" example:"10.5"`
	Active      bool    `json:"active" db:"active"`

	Course    *Course    `json:"course,omitempty"`
	Faculty   *Faculty   `json:"faculty,omitempty"`
	Classroom *Classroom `json:"classroom,omitempty"`
}

// Validate checks the local invariants of a timetable entry
func (t *TimetableEntry) Validate() error {
	if t.Day < Monday || t.Day > Sunday {
		return apperrors.NewBadRequestError("day must be between 0 (Monday) and 6 (Sunday)")
	}
	if t.StartHour < 0 || t.StartHour > 24 || t.EndHour < 0 || t.EndHour > 24 {
		return apperrors.ErrTimeOutOfBounds
	}
	if t.EndHour <= t.StartHour {
		return apperrors.ErrInvalidTimeRange
	}
	return nil
}

// OverlapsWith reports whether two entries occupy overlapping time on the
// same day. Entries on different days never overlap; an entry never
// overlaps itself.
func (t *TimetableEntry) OverlapsWith(other *TimetableEntry) bool {
	if other.ID != 0 && other.ID == t.ID {
		return false
	}
	if t.Day != other.Day {
		return false
	}
	return helpers.IntervalsOverlap(t.StartHour, t.EndHour, other.StartHour, other.EndHour)
}

// Label renders the slot for display, e.g. "Monday 09:30-10:30"
func (t *TimetableEntry) Label() string {
	return DayName(t.Day) + " " + helpers.FormatClockHour(t.StartHour) + "-" + helpers.FormatClockHour(t.EndHour)
}
