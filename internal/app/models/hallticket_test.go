package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEligibility(t *testing.T) {
	clean := CheckEligibility(EligibilityInput{AttendancePercent: 82, FeeDue: 0, OpenDiscipline: false})
	assert.True(t, clean.Eligible)
	assert.Empty(t, clean.Reasons)

	// 75% exactly is enough
	boundary := CheckEligibility(EligibilityInput{AttendancePercent: 75})
	assert.True(t, boundary.Eligible)

	lowAttendance := CheckEligibility(EligibilityInput{AttendancePercent: 74.9})
	assert.False(t, lowAttendance.Eligible)
	assert.Equal(t, []string{ReasonLowAttendance}, lowAttendance.Reasons)

	feeDue := CheckEligibility(EligibilityInput{AttendancePercent: 90, FeeDue: 1500})
	assert.False(t, feeDue.Eligible)
	assert.Equal(t, []string{ReasonFeeDues}, feeDue.Reasons)

	discipline := CheckEligibility(EligibilityInput{AttendancePercent: 90, OpenDiscipline: true})
	assert.False(t, discipline.Eligible)
	assert.Equal(t, []string{ReasonPendingDiscipline}, discipline.Reasons)

	// Every failing gate is reported, not just the first
	all := CheckEligibility(EligibilityInput{AttendancePercent: 50, FeeDue: 1500, OpenDiscipline: true})
	assert.False(t, all.Eligible)
	assert.Equal(t, []string{ReasonLowAttendance, ReasonFeeDues, ReasonPendingDiscipline}, all.Reasons)
}

func TestHallTicketTransitions(t *testing.T) {
	assert.True(t, CanTransition(HallTicketTransitions, TicketDraft, TicketIssued))
	assert.True(t, CanTransition(HallTicketTransitions, TicketDraft, TicketCancelled))
	assert.True(t, CanTransition(HallTicketTransitions, TicketIssued, TicketDownloaded))
	assert.True(t, CanTransition(HallTicketTransitions, TicketIssued, TicketPrinted))
	assert.True(t, CanTransition(HallTicketTransitions, TicketDownloaded, TicketPrinted))
	assert.True(t, CanTransition(HallTicketTransitions, TicketPrinted, TicketCancelled))

	// A draft must be issued before it can be downloaded or printed
	assert.False(t, CanTransition(HallTicketTransitions, TicketDraft, TicketDownloaded))
	assert.False(t, CanTransition(HallTicketTransitions, TicketDraft, TicketPrinted))
	assert.False(t, CanTransition(HallTicketTransitions, TicketCancelled, TicketDraft))
	assert.False(t, CanTransition(HallTicketTransitions, TicketDownloaded, TicketIssued))
	assert.False(t, CanTransition(HallTicketTransitions, TicketPrinted, TicketDownloaded))
}

func TestIDCardTransitions(t *testing.T) {
	assert.True(t, CanTransition(IDCardTransitions, CardActive, CardExpired))
	assert.True(t, CanTransition(IDCardTransitions, CardActive, CardRevoked))

	assert.False(t, CanTransition(IDCardTransitions, CardExpired, CardActive))
	assert.False(t, CanTransition(IDCardTransitions, CardRevoked, CardActive))
}

func TestSeatLabels(t *testing.T) {
	assert.Equal(t, "R001", RoomLabel(1))
	assert.Equal(t, "R012", RoomLabel(12))
	assert.Equal(t, "S017", SeatLabel(17))
	assert.Equal(t, "S100", SeatLabel(100))
}

func TestGenerateSeating(t *testing.T) {
	// 65 students fill two rooms of 30 and start a third
	studentIDs := make([]int64, 65)
	for i := range studentIDs {
		studentIDs[i] = int64(i + 100)
	}

	allocations := GenerateSeating(7, studentIDs)
	require.Len(t, allocations, 65)

	first := allocations[0]
	assert.Equal(t, int64(7), first.ExaminationID)
	assert.Equal(t, int64(100), first.StudentID)
	assert.Equal(t, "R001", first.RoomLabel)
	assert.Equal(t, "S001", first.SeatLabel)

	lastOfFirstRoom := allocations[SeatsPerRoom-1]
	assert.Equal(t, "R001", lastOfFirstRoom.RoomLabel)
	assert.Equal(t, "S030", lastOfFirstRoom.SeatLabel)

	// Seat numbering restarts in the next room
	firstOfSecondRoom := allocations[SeatsPerRoom]
	assert.Equal(t, "R002", firstOfSecondRoom.RoomLabel)
	assert.Equal(t, "S001", firstOfSecondRoom.SeatLabel)

	last := allocations[64]
	assert.Equal(t, "R003", last.RoomLabel)
	assert.Equal(t, "S005", last.SeatLabel)

	// No student appears twice and no seat is double-booked
	seenStudents := make(map[int64]bool)
	seenSeats := make(map[string]bool)
	for _, a := range allocations {
		assert.False(t, seenStudents[a.StudentID])
		seenStudents[a.StudentID] = true

		key := a.RoomLabel + "/" + a.SeatLabel
		assert.False(t, seenSeats[key])
		seenSeats[key] = true
	}

	assert.Empty(t, GenerateSeating(7, nil))
}
