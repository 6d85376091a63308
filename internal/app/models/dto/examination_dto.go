package dto

import "time"

// CreateExaminationRequest creates an exam event in draft state
type CreateExaminationRequest struct {
	Name           string    `json:"name" binding:"required" example:"Semester 3 Finals"`
	Code           string    `json:"code" binding:"required" example:"S3F-2024"`
	ExamType       string    `json:"examType" binding:"required,oneof=internal midterm final supplementary" example:"final"`
	AcademicYearID int64     `json:"academicYearId" binding:"required"`
	SemesterID     int64     `json:"semesterId" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
}

// CreateExamScheduleRequest adds one paper to an examination
type CreateExamScheduleRequest struct {
	CourseID    int64     `json:"courseId" binding:"required"`
	ExamDate    time.Time `json:"examDate" binding:"required"`
	StartHour   float64   `json:"startHour" example:"10"`
	EndHour     float64   `json:"endHour" example:"13"`
	ClassroomID *int64    `json:"classroomId,omitempty"`
}

// EnterResultRequest records one student's marks for a course. Absent takes
// precedence over the mark fields.
type EnterResultRequest struct {
	StudentID     int64   `json:"studentId" binding:"required"`
	CourseID      int64   `json:"courseId" binding:"required"`
	InternalMarks float64 `json:"internalMarks" example:"24"`
	ExternalMarks float64 `json:"externalMarks" example:"51"`
	Absent        bool    `json:"absent"`
}

// CreateGradeBandRequest defines one percentage-to-grade mapping
type CreateGradeBandRequest struct {
	Grade      string  `json:"grade" binding:"required" example:"A+"`
	MinPercent float64 `json:"minPercent" example:"90"`
	MaxPercent float64 `json:"maxPercent" example:"100"`
	GradePoint float64 `json:"gradePoint" example:"10"`
}

// ResultFilter narrows result list queries
type ResultFilter struct {
	StudentID int64  `form:"studentId"`
	CourseID  int64  `form:"courseId"`
	Status    string `form:"status"`
}
