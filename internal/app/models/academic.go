package models

import (
	"time"

	"github.com/univera/univera/internal/pkg/apperrors"
)

// Academic year statuses
const (
	YearDraft  Status = "draft"
	YearActive Status = "active"
	YearClosed Status = "closed"
)

// AcademicYearTransitions lists the legal status changes for academic years
var AcademicYearTransitions = map[Status][]Status{
	YearDraft:  {YearActive},
	YearActive: {YearClosed},
}

// AcademicYear defines a record in the 'academic_years' table
type AcademicYear struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"2024-2025"`
	Code        string    `json:"code" db:"code" example:"AY2425"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	IsCurrent   bool      `json:"isCurrent" db:"is_current"`
	Status      Status    `json:"status" db:"status" example:"draft"`
	Description string    `json:"description,omitempty" db:"description"`
	Active      bool      `json:"active" db:"active"`
}

// Validate checks the local invariants of an academic year
func (y *AcademicYear) Validate() error {
	if y.Name == "" || y.Code == "" {
		return apperrors.NewBadRequestError("academic year name and code are required")
	}
	if !y.StartDate.Before(y.EndDate) {
		return apperrors.ErrAcademicYearDates
	}
	return nil
}

// Semester defines a record in the 'semesters' table
type Semester struct {
	ID             int64     `json:"id" db:"id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	Number         int       `json:"number" db:"number" example:"1"`
	Name           string    `json:"name" db:"name" example:"Semester 1"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	Active         bool      `json:"active" db:"active"`
}

// Department defines a record in the 'departments' table
type Department struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name" example:"Computer Science"`
	Code   string `json:"code" db:"code" example:"CSE"`
	Active bool   `json:"active" db:"active"`
}

// Program defines a degree program in the 'programs' table
type Program struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name" example:"B.Tech Computer Science"`
	Code           string `json:"code" db:"code" example:"BTCS"`
	DepartmentID   int64  `json:"departmentId" db:"department_id"`
	DurationYears  int    `json:"durationYears" db:"duration_years" example:"4"`
	TotalSemesters int    `json:"totalSemesters" db:"total_semesters" example:"8"`
	Active         bool   `json:"active" db:"active"`

	Department *Department `json:"department,omitempty"`
}

// Batch statuses
const (
	BatchPlanned   Status = "planned"
	BatchActive    Status = "active"
	BatchGraduated Status = "graduated"
)

// BatchTransitions lists the legal status changes for batches
var BatchTransitions = map[Status][]Status{
	BatchPlanned: {BatchActive},
	BatchActive:  {BatchGraduated},
}

// Batch defines an intake cohort in the 'batches' table
type Batch struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" example:"2024 Intake"`
	Code      string `json:"code" db:"code" example:"B24"`
	ProgramID int64  `json:"programId" db:"program_id"`
	StartYear int    `json:"startYear" db:"start_year" example:"2024"`
	EndYear   int    `json:"endYear" db:"end_year" example:"2028"`
	Status    Status `json:"status" db:"status" example:"active"`

	Program *Program `json:"program,omitempty"`
}

// Classroom defines a physical room in the 'classrooms' table
type Classroom struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" example:"Room 101"`
	Code     string `json:"code" db:"code" example:"R101"`
	Building string `json:"building,omitempty" db:"building"`
	Floor    int    `json:"floor" db:"floor"`
	Capacity int    `json:"capacity" db:"capacity" example:"60"`
	Active   bool   `json:"active" db:"active"`
}

// Subject defines a record in the 'subjects' table
type Subject struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" example:"Data Structures"`
	Code    string `json:"code" db:"code" example:"CS201"`
	Credits int    `json:"credits" db:"credits" example:"4"`
	Active  bool   `json:"active" db:"active"`
}

// Course binds a subject to a program, batch, semester and teaching faculty
// for one academic year. Mark maxima live here so result entry can default
// from them.
type Course struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name" example:"Data Structures - B24 - Sem 3"`
	Code           string `json:"code" db:"code" example:"CS201-B24"`
	SubjectID      int64  `json:"subjectId" db:"subject_id"`
	ProgramID      int64  `json:"programId" db:"program_id"`
	DepartmentID   int64  `json:"departmentId" db:"department_id"`
	BatchID        int64  `json:"batchId" db:"batch_id"`
	SemesterID     int64  `json:"semesterId" db:"semester_id"`
	AcademicYearID int64  `json:"academicYearId" db:"academic_year_id"`
	FacultyID      int64  `json:"facultyId" db:"faculty_id"`
	MaxMarks       int    `json:"maxMarks" db:"max_marks" example:"100"`
	PassingMarks   int    `json:"passingMarks" db:"passing_marks" example:"40"`
	InternalMax    int    `json:"internalMax" db:"internal_max" example:"30"`
	ExternalMax    int    `json:"externalMax" db:"external_max" example:"70"`
	Active         bool   `json:"active" db:"active"`

	Subject *Subject `json:"subject,omitempty"`
}
