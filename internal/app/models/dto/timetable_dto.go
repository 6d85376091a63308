package dto

// CreateTimetableEntryRequest adds a weekly slot. Times are fractional hours,
// e.g. 9.5 for 09:30.
type CreateTimetableEntryRequest struct {
	CourseID    int64   `json:"courseId" binding:"required"`
	FacultyID   int64   `json:"facultyId" binding:"required"`
	ClassroomID int64   `json:"classroomId" binding:"required"`
	BatchID     int64   `json:"batchId" binding:"required"`
	SemesterID  int64   `json:"semesterId" binding:"required"`
	Day         int     `json:"day" example:"0"`
	StartHour   float64 `json:"startHour" example:"9.5"`
	EndHour     float64 `json:"endHour" example:"10.5"`
}

// UpdateTimetableEntryRequest moves an existing slot
type UpdateTimetableEntryRequest struct {
	FacultyID   *int64   `json:"facultyId,omitempty"`
	ClassroomID *int64   `json:"classroomId,omitempty"`
	Day         *int     `json:"day,omitempty"`
	StartHour   *float64 `json:"startHour,omitempty"`
	EndHour     *float64 `json:"endHour,omitempty"`
}

// TimetableFilter narrows timetable list queries
type TimetableFilter struct {
	BatchID     int64 `form:"batchId"`
	FacultyID   int64 `form:"facultyId"`
	ClassroomID int64 `form:"classroomId"`
	SemesterID  int64 `form:"semesterId"`
	Day         *int  `form:"day"`
}
