package dto

import "time"

// CreateAcademicYearRequest creates a new academic year in draft state
type CreateAcademicYearRequest struct {
	Name        string    `json:"name" binding:"required" example:"2024-2025"`
	Code        string    `json:"code" binding:"required" example:"AY2425"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Description string    `json:"description"`
}

// UpdateAcademicYearRequest updates the mutable fields of an academic year
type UpdateAcademicYearRequest struct {
	Name        *string    `json:"name,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// ChangeStatusRequest moves a record to a new lifecycle status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required" example:"active"`
}

// CreateSemesterRequest adds a semester to an academic year
type CreateSemesterRequest struct {
	AcademicYearID int64     `json:"academicYearId" binding:"required"`
	Number         int       `json:"number" binding:"required,min=1" example:"1"`
	Name           string    `json:"name" binding:"required" example:"Semester 1"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
}

// CreateDepartmentRequest creates a department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Computer Science"`
	Code string `json:"code" binding:"required" example:"CSE"`
}

// CreateProgramRequest creates a degree program
type CreateProgramRequest struct {
	Name           string `json:"name" binding:"required" example:"B.Tech Computer Science"`
	Code           string `json:"code" binding:"required" example:"BTCS"`
	DepartmentID   int64  `json:"departmentId" binding:"required"`
	DurationYears  int    `json:"durationYears" binding:"required,min=1" example:"4"`
	TotalSemesters int    `json:"totalSemesters" binding:"required,min=1" example:"8"`
}

// CreateBatchRequest creates an intake cohort
type CreateBatchRequest struct {
	Name      string `json:"name" binding:"required" example:"2024 Intake"`
	Code      string `json:"code" binding:"required" example:"B24"`
	ProgramID int64  `json:"programId" binding:"required"`
	StartYear int    `json:"startYear" binding:"required" example:"2024"`
	EndYear   int    `json:"endYear" binding:"required" example:"2028"`
}

// CreateClassroomRequest creates a physical room
type CreateClassroomRequest struct {
	Name     string `json:"name" binding:"required" example:"Room 101"`
	Code     string `json:"code" binding:"required" example:"R101"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity" binding:"required,min=1" example:"60"`
}

// CreateSubjectRequest creates a subject
type CreateSubjectRequest struct {
	Name    string `json:"name" binding:"required" example:"Data Structures"`
	Code    string `json:"code" binding:"required" example:"CS201"`
	Credits int    `json:"credits" binding:"required,min=1" example:"4"`
}

// CreateCourseRequest binds a subject to a batch semester with a teaching faculty
type CreateCourseRequest struct {
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code" binding:"required"`
	SubjectID      int64  `json:"subjectId" binding:"required"`
	ProgramID      int64  `json:"programId" binding:"required"`
	DepartmentID   int64  `json:"departmentId" binding:"required"`
	BatchID        int64  `json:"batchId" binding:"required"`
	SemesterID     int64  `json:"semesterId" binding:"required"`
	AcademicYearID int64  `json:"academicYearId" binding:"required"`
	FacultyID      int64  `json:"facultyId" binding:"required"`
	MaxMarks       int    `json:"maxMarks" example:"100"`
	PassingMarks   int    `json:"passingMarks" example:"40"`
	InternalMax    int    `json:"internalMax" example:"30"`
	ExternalMax    int    `json:"externalMax" example:"70"`
}
