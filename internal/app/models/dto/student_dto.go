package dto

import "time"

// CreateStudentRequest admits a new student. The account and the student
// record are created together; the registration number is assigned by the
// server.
type CreateStudentRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=8"`
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName"`
	ProgramID      int64      `json:"programId" binding:"required"`
	DepartmentID   int64      `json:"departmentId" binding:"required"`
	BatchID        int64      `json:"batchId" binding:"required"`
	AdmissionDate  *time.Time `json:"admissionDate,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender"`
	Mobile         string     `json:"mobile"`
	GuardianName   string     `json:"guardianName"`
	GuardianMobile string     `json:"guardianMobile"`
}

// UpdateStudentRequest updates mutable student fields
type UpdateStudentRequest struct {
	FirstName      *string    `json:"firstName,omitempty"`
	LastName       *string    `json:"lastName,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	Mobile         *string    `json:"mobile,omitempty"`
	GuardianName   *string    `json:"guardianName,omitempty"`
	GuardianMobile *string    `json:"guardianMobile,omitempty"`
}

// StudentFilter narrows student list queries
type StudentFilter struct {
	ProgramID    int64  `form:"programId"`
	DepartmentID int64  `form:"departmentId"`
	BatchID      int64  `form:"batchId"`
	Status       string `form:"status"`
	Search       string `form:"search"`
}

// MarkAttendanceRequest records one day's attendance for a set of students
type MarkAttendanceRequest struct {
	CourseID int64             `json:"courseId" binding:"required"`
	Date     time.Time         `json:"date" binding:"required"`
	Entries  []AttendanceEntry `json:"entries" binding:"required,dive"`
}

// AttendanceEntry is one student's presence flag within a marking request
type AttendanceEntry struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Present   bool   `json:"present"`
	Remarks   string `json:"remarks"`
}

// AttendanceSummaryResponse reports a student's attendance ratio
type AttendanceSummaryResponse struct {
	StudentID  int64   `json:"studentId"`
	Present    int     `json:"present"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage" example:"82.5"`
}

// CreateDisciplineRequest opens a discipline case against a student
type CreateDisciplineRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	Severity    string `json:"severity" binding:"required,oneof=minor major critical"`
	Description string `json:"description" binding:"required"`
}

// ResolveDisciplineRequest moves a discipline case and records the action taken
type ResolveDisciplineRequest struct {
	Status      string `json:"status" binding:"required" example:"closed"`
	ActionTaken string `json:"actionTaken"`
}

// SemesterPerformance is one semester's aggregate in a performance report
type SemesterPerformance struct {
	SemesterID   int64   `json:"semesterId"`
	SemesterName string  `json:"semesterName"`
	Courses      int     `json:"courses"`
	SGPA         float64 `json:"sgpa" example:"8.25"`
}

// PerformanceResponse is a student's published academic record
type PerformanceResponse struct {
	StudentID          int64                 `json:"studentId"`
	RegistrationNumber string                `json:"registrationNumber"`
	Semesters          []SemesterPerformance `json:"semesters"`
	CGPA               float64               `json:"cgpa" example:"8.1"`
}
