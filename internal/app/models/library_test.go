package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookIssueIsOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	open := &BookIssue{Status: IssueActive, DueDate: due}
	assert.False(t, open.IsOverdue(due))
	assert.False(t, open.IsOverdue(due.Add(-time.Hour)))
	assert.True(t, open.IsOverdue(due.Add(time.Hour)))

	// Returned loans are never overdue, however late the clock
	returned := &BookIssue{Status: IssueReturned, DueDate: due}
	assert.False(t, returned.IsOverdue(due.AddDate(0, 1, 0)))
}

func TestBookIssueAccruedFine(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	issue := &BookIssue{Status: IssueActive, DueDate: due}

	assert.Equal(t, 0.0, issue.AccruedFine(due))
	assert.Equal(t, 0.0, issue.AccruedFine(due.Add(-48*time.Hour)))

	// Part of a day counts only once it completes
	assert.Equal(t, 0.0, issue.AccruedFine(due.Add(12*time.Hour)))
	assert.Equal(t, 1*FinePerDay, issue.AccruedFine(due.Add(25*time.Hour)))
	assert.Equal(t, 3*FinePerDay, issue.AccruedFine(due.Add(72*time.Hour)))
	assert.Equal(t, 14*FinePerDay, issue.AccruedFine(due.AddDate(0, 0, 14)))
}

func TestBookIssueTransitions(t *testing.T) {
	assert.True(t, CanTransition(BookIssueTransitions, IssueActive, IssueReturned))
	assert.True(t, CanTransition(BookIssueTransitions, IssueActive, IssueLost))

	assert.False(t, CanTransition(BookIssueTransitions, IssueReturned, IssueActive))
	assert.False(t, CanTransition(BookIssueTransitions, IssueLost, IssueReturned))
}

func TestBookReservationTransitions(t *testing.T) {
	assert.True(t, CanTransition(BookReservationTransitions, ReservationPending, ReservationFulfilled))
	assert.True(t, CanTransition(BookReservationTransitions, ReservationPending, ReservationExpired))
	assert.True(t, CanTransition(BookReservationTransitions, ReservationPending, ReservationCancelled))

	assert.False(t, CanTransition(BookReservationTransitions, ReservationFulfilled, ReservationPending))
	assert.False(t, CanTransition(BookReservationTransitions, ReservationExpired, ReservationFulfilled))
}
