package models

import "time"

// Student statuses
const (
	StudentEnrolled  Status = "enrolled"
	StudentSuspended Status = "suspended"
	StudentGraduated Status = "graduated"
	StudentDropped   Status = "dropped"
)

// StudentTransitions lists the legal status changes for students
var StudentTransitions = map[Status][]Status{
	StudentEnrolled:  {StudentSuspended, StudentGraduated, StudentDropped},
	StudentSuspended: {StudentEnrolled, StudentDropped},
}

// Student defines a record in the 'students' table. The account identity
// lives in the embedded User row; the student record carries the academic
// relationship. This is plain composition with accessor forwarding, not
// inheritance.
type Student struct {
	ID                 int64      `json:"id" db:"id" example:"1"`
	UserID             int64      `json:"userId" db:"user_id"`
	RegistrationNumber string     `json:"registrationNumber" db:"registration_number" example:"REG-2024-00042"`
	ProgramID          int64      `json:"programId" db:"program_id"`
	DepartmentID       int64      `json:"departmentId" db:"department_id"`
	BatchID            int64      `json:"batchId" db:"batch_id"`
	CurrentSemester    int        `json:"currentSemester" db:"current_semester" example:"3"`
	AdmissionDate      time.Time  `json:"admissionDate" db:"admission_date"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender             string     `json:"gender,omitempty" db:"gender"`
	Mobile             string     `json:"mobile,omitempty" db:"mobile"`
	GuardianName       string     `json:"guardianName,omitempty" db:"guardian_name"`
	GuardianMobile     string     `json:"guardianMobile,omitempty" db:"guardian_mobile"`
	Status             Status     `json:"status" db:"status" example:"enrolled"`
	Active             bool       `json:"active" db:"active"`

	User       *User       `json:"user,omitempty"`
	Program    *Program    `json:"program,omitempty"`
	Department *Department `json:"department,omitempty"`
	Batch      *Batch      `json:"batch,omitempty"`
}

// Name forwards to the embedded user account
func (s *Student) Name() string {
	if s.User == nil {
		return ""
	}
	return s.User.FullName()
}

// Email forwards to the embedded user account
func (s *Student) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// AttendanceRecord defines one day's attendance in the 'attendance_records' table
type AttendanceRecord struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Date      time.Time `json:"date" db:"date"`
	Present   bool      `json:"present" db:"present"`
	Remarks   string    `json:"remarks,omitempty" db:"remarks"`
}

// AttendancePercentage computes present/total as a percentage. Zero records
// yield 0.0.
func AttendancePercentage(present, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(present) / float64(total) * 100.0
}

// Discipline severities
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// Discipline record statuses
const (
	DisciplineOpen          Status = "open"
	DisciplineInvestigating Status = "investigating"
	DisciplineClosed        Status = "closed"
)

// DisciplineTransitions lists the legal status changes for discipline cases
var DisciplineTransitions = map[Status][]Status{
	DisciplineOpen:          {DisciplineInvestigating, DisciplineClosed},
	DisciplineInvestigating: {DisciplineClosed},
}

// DisciplineRecord defines a record in the 'discipline_records' table
type DisciplineRecord struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Severity    string    `json:"severity" db:"severity" example:"major"`
	Status      Status    `json:"status" db:"status" example:"open"`
	Description string    `json:"description" db:"description"`
	ReportedOn  time.Time `json:"reportedOn" db:"reported_on"`
	ActionTaken string    `json:"actionTaken,omitempty" db:"action_taken"`
}

// Blocks reports whether this case blocks hall-ticket issuance: a major or
// critical case that has not been closed.
func (d *DisciplineRecord) Blocks() bool {
	return (d.Severity == SeverityMajor || d.Severity == SeverityCritical) && d.Status != DisciplineClosed
}

// Faculty designations are free text; the employment state is a status.
const (
	FacultyActive   Status = "active"
	FacultyOnLeave  Status = "on_leave"
	FacultyResigned Status = "resigned"
)

// Faculty defines a record in the 'faculty_members' table
type Faculty struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	EmployeeCode string    `json:"employeeCode" db:"employee_code" example:"FAC-00017"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	Designation  string    `json:"designation" db:"designation" example:"Assistant Professor"`
	JoiningDate  time.Time `json:"joiningDate" db:"joining_date"`
	Status       Status    `json:"status" db:"status" example:"active"`

	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}

// Name forwards to the embedded user account
func (f *Faculty) Name() string {
	if f.User == nil {
		return ""
	}
	return f.User.FullName()
}
