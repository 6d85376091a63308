package models

import (
	"math"
	"time"

	"github.com/univera/univera/internal/pkg/apperrors"
)

// Examination statuses
const (
	ExamDraft     Status = "draft"
	ExamScheduled Status = "scheduled"
	ExamOngoing   Status = "ongoing"
	ExamCompleted Status = "completed"
	ExamCancelled Status = "cancelled"
)

// ExaminationTransitions lists the legal status changes for examinations
var ExaminationTransitions = map[Status][]Status{
	ExamDraft:     {ExamScheduled, ExamCancelled},
	ExamScheduled: {ExamOngoing, ExamCancelled},
	ExamOngoing:   {ExamCompleted},
}

// Examination defines an exam event in the 'examinations' table
type Examination struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" example:"Semester 3 Finals"`
	Code           string    `json:"code" db:"code" example:"S3F-2024"`
	ExamType       string    `json:"examType" db:"exam_type" example:"final"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	SemesterID     int64     `json:"semesterId" db:"semester_id"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	Status         Status    `json:"status" db:"status" example:"draft"`
	Active         bool      `json:"active" db:"active"`
}

// Validate checks the local invariants of an examination
func (e *Examination) Validate() error {
	if e.Name == "" || e.Code == "" {
		return apperrors.NewBadRequestError("examination name and code are required")
	}
	if e.EndDate.Before(e.StartDate) {
		return apperrors.NewBadRequestError("examination end date must not be before start date")
	}
	return nil
}

// ContainsDate reports whether a calendar day falls inside the examination
// window, both ends inclusive
func (e *Examination) ContainsDate(day time.Time) bool {
	start := time.Date(e.StartDate.Year(), e.StartDate.Month(), e.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(e.EndDate.Year(), e.EndDate.Month(), e.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}

// ExamSchedule defines one paper of an examination in the 'exam_schedules' table
type ExamSchedule struct {
	ID            int64     `json:"id" db:"id"`
	ExaminationID int64     `json:"examinationId" db:"examination_id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	ExamDate      time.Time `json:"examDate" db:"exam_date"`
	StartHour     float64   `json:"startHour" db:"start_hour" example:"10"`
	EndHour       float64   `json:"endHour" db:"end_hour" example:"13"`
	ClassroomID   *int64    `json:"classroomId,omitempty" db:"classroom_id"`

	Course *Course `json:"course,omitempty"`
}

// GradeBand maps a percentage range to a letter grade and grade point.
// Ranges are inclusive on both ends; bands are checked highest first.
type GradeBand struct {
	ID         int64   `json:"id" db:"id"`
	Grade      string  `json:"grade" db:"grade" example:"A+"`
	MinPercent float64 `json:"minPercent" db:"min_percent" example:"90"`
	MaxPercent float64 `json:"maxPercent" db:"max_percent" example:"100"`
	GradePoint float64 `json:"gradePoint" db:"grade_point" example:"10"`
	Active     bool    `json:"active" db:"active"`
}

// Covers reports whether a percentage falls inside this band
func (b *GradeBand) Covers(percentage float64) bool {
	return percentage >= b.MinPercent && percentage <= b.MaxPercent
}

// GradeFor finds the band covering a percentage
func GradeFor(bands []GradeBand, percentage float64) (*GradeBand, error) {
	for i := range bands {
		if bands[i].Covers(percentage) {
			return &bands[i], nil
		}
	}
	return nil, apperrors.ErrGradeBandNotFound
}

// Exam result statuses
const (
	ResultDraft     Status = "draft"
	ResultSubmitted Status = "submitted"
	ResultVerified  Status = "verified"
	ResultPublished Status = "published"
)

// ExamResultTransitions lists the legal status changes for results. A
// submitted result can be sent back to draft for correction.
var ExamResultTransitions = map[Status][]Status{
	ResultDraft:     {ResultSubmitted},
	ResultSubmitted: {ResultVerified, ResultDraft},
	ResultVerified:  {ResultPublished},
}

// ExamResult defines a per-student per-course mark sheet row in the
// 'exam_results' table. Total, percentage, grade and passed are derived by
// Compute and stored denormalized for reporting.
type ExamResult struct {
	ID            int64   `json:"id" db:"id"`
	ExaminationID int64   `json:"examinationId" db:"examination_id"`
	StudentID     int64   `json:"studentId" db:"student_id"`
	CourseID      int64   `json:"courseId" db:"course_id"`
	InternalMarks float64 `json:"internalMarks" db:"internal_marks" example:"24"`
	ExternalMarks float64 `json:"externalMarks" db:"external_marks" example:"51"`
	Absent        bool    `json:"absent" db:"absent"`
	TotalMarks    float64 `json:"totalMarks" db:"total_marks"`
	Percentage    float64 `json:"percentage" db:"percentage"`
	Grade         string  `json:"grade" db:"grade" example:"B+"`
	GradePoint    float64 `json:"gradePoint" db:"grade_point" example:"8"`
	Passed        bool    `json:"passed" db:"passed"`
	Status        Status  `json:"status" db:"status" example:"draft"`

	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}

// Minimum share of each component's maximum required to pass
const componentPassFraction = 0.40

// Compute derives total, percentage, grade and pass flag from the raw marks
// against the course's maxima and the grade bands. An absent student fails
// with grade "AB" and zero marks. A component also fails the student when it
// falls under 40% of its own maximum even if the total clears the passing
// mark.
func (r *ExamResult) Compute(course *Course, bands []GradeBand) error {
	if r.Absent {
		r.InternalMarks = 0
		r.ExternalMarks = 0
		r.TotalMarks = 0
		r.Percentage = 0
		r.Grade = "AB"
		r.GradePoint = 0
		r.Passed = false
		return nil
	}

	if r.InternalMarks < 0 || r.ExternalMarks < 0 ||
		r.InternalMarks > float64(course.InternalMax) || r.ExternalMarks > float64(course.ExternalMax) {
		return apperrors.ErrMarksOutOfRange
	}

	r.TotalMarks = r.InternalMarks + r.ExternalMarks
	if course.MaxMarks > 0 {
		r.Percentage = r.TotalMarks / float64(course.MaxMarks) * 100.0
	} else {
		r.Percentage = 0
	}

	band, err := GradeFor(bands, r.Percentage)
	if err != nil {
		return err
	}
	r.Grade = band.Grade
	r.GradePoint = band.GradePoint

	r.Passed = r.TotalMarks >= float64(course.PassingMarks) &&
		r.InternalMarks >= componentPassFraction*float64(course.InternalMax) &&
		r.ExternalMarks >= componentPassFraction*float64(course.ExternalMax)
	return nil
}

// MeanGradePoint averages the grade points of the non-absent results in a
// set, rounded to two decimals. Absent rows carry grade point 0 and would
// otherwise drag the mean down. A set with no countable results yields 0.0.
// Used for both SGPA (one semester's published results) and CGPA (all
// published results).
func MeanGradePoint(results []ExamResult) float64 {
	var sum float64
	count := 0
	for i := range results {
		if results[i].Absent {
			continue
		}
		sum += results[i].GradePoint
		count++
	}
	if count == 0 {
		return 0.0
	}
	return math.Round(sum/float64(count)*100) / 100
}
