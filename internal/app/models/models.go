// Package models defines the persistent records of the university ERP and the
// pure business rules attached to them (interval conflicts, grading
// arithmetic, eligibility gates, status transitions).
package models

// RoleType is the access role of a user account
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleFaculty RoleType = "FACULTY"
	RoleStudent RoleType = "STUDENT"
)

// Status is a lifecycle label on a record. Each entity declares its own set
// of statuses plus a transition table; mutations validate against the table
// instead of allowing any action from any state.
type Status string

// CanTransition reports whether a transition from one status to another is
// listed in the given transition table.
func CanTransition(table map[Status][]Status, from, to Status) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
