package dto

import "time"

// CreateFacultyRequest hires a new faculty member. The employee code is
// assigned by the server.
type CreateFacultyRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=8"`
	FirstName    string     `json:"firstName" binding:"required"`
	LastName     string     `json:"lastName"`
	DepartmentID int64      `json:"departmentId" binding:"required"`
	Designation  string     `json:"designation" binding:"required" example:"Assistant Professor"`
	JoiningDate  *time.Time `json:"joiningDate,omitempty"`
}

// UpdateFacultyRequest updates mutable faculty fields
type UpdateFacultyRequest struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	Designation  *string `json:"designation,omitempty"`
}

// FacultyWorkloadResponse summarizes a faculty member's weekly teaching load
type FacultyWorkloadResponse struct {
	FacultyID    int64   `json:"facultyId"`
	Courses      int     `json:"courses"`
	WeeklySlots  int     `json:"weeklySlots"`
	WeeklyHours  float64 `json:"weeklyHours" example:"14.5"`
}
