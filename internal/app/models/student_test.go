package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentNameAndEmail(t *testing.T) {
	student := &Student{User: &User{FirstName: "Asha", LastName: "Rao", Email: "asha.rao@univera.edu"}}
	assert.Equal(t, "Asha Rao", student.Name())
	assert.Equal(t, "asha.rao@univera.edu", student.Email())

	// A student row loaded without its user join degrades to empty strings
	bare := &Student{}
	assert.Equal(t, "", bare.Name())
	assert.Equal(t, "", bare.Email())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Asha Rao", (&User{FirstName: "Asha", LastName: "Rao"}).FullName())
	assert.Equal(t, "Asha", (&User{FirstName: "Asha"}).FullName())
	assert.Equal(t, "Rao", (&User{LastName: "Rao"}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0.0, AttendancePercentage(0, 0))
	assert.Equal(t, 0.0, AttendancePercentage(5, 0))
	assert.Equal(t, 100.0, AttendancePercentage(40, 40))
	assert.Equal(t, 75.0, AttendancePercentage(30, 40))
	assert.Equal(t, 50.0, AttendancePercentage(1, 2))
}

func TestDisciplineRecordBlocks(t *testing.T) {
	assert.True(t, (&DisciplineRecord{Severity: SeverityMajor, Status: DisciplineOpen}).Blocks())
	assert.True(t, (&DisciplineRecord{Severity: SeverityCritical, Status: DisciplineInvestigating}).Blocks())

	// Minor cases never block; closed cases never block
	assert.False(t, (&DisciplineRecord{Severity: SeverityMinor, Status: DisciplineOpen}).Blocks())
	assert.False(t, (&DisciplineRecord{Severity: SeverityMajor, Status: DisciplineClosed}).Blocks())
	assert.False(t, (&DisciplineRecord{Severity: SeverityCritical, Status: DisciplineClosed}).Blocks())
}

func TestStudentTransitions(t *testing.T) {
	assert.True(t, CanTransition(StudentTransitions, StudentEnrolled, StudentSuspended))
	assert.True(t, CanTransition(StudentTransitions, StudentEnrolled, StudentGraduated))
	assert.True(t, CanTransition(StudentTransitions, StudentEnrolled, StudentDropped))
	assert.True(t, CanTransition(StudentTransitions, StudentSuspended, StudentEnrolled))
	assert.True(t, CanTransition(StudentTransitions, StudentSuspended, StudentDropped))

	assert.False(t, CanTransition(StudentTransitions, StudentSuspended, StudentGraduated))
	assert.False(t, CanTransition(StudentTransitions, StudentGraduated, StudentEnrolled))
	assert.False(t, CanTransition(StudentTransitions, StudentDropped, StudentEnrolled))
}

func TestDisciplineTransitions(t *testing.T) {
	assert.True(t, CanTransition(DisciplineTransitions, DisciplineOpen, DisciplineInvestigating))
	assert.True(t, CanTransition(DisciplineTransitions, DisciplineOpen, DisciplineClosed))
	assert.True(t, CanTransition(DisciplineTransitions, DisciplineInvestigating, DisciplineClosed))

	assert.False(t, CanTransition(DisciplineTransitions, DisciplineClosed, DisciplineOpen))
	assert.False(t, CanTransition(DisciplineTransitions, DisciplineInvestigating, DisciplineOpen))
}
