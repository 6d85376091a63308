package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYearValidate(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	valid := &AcademicYear{Name: "2024-2025", Code: "AY2425", StartDate: start, EndDate: end}
	assert.NoError(t, valid.Validate())

	noName := &AcademicYear{Code: "AY2425", StartDate: start, EndDate: end}
	assert.Error(t, noName.Validate())

	noCode := &AcademicYear{Name: "2024-2025", StartDate: start, EndDate: end}
	assert.Error(t, noCode.Validate())

	reversed := &AcademicYear{Name: "2024-2025", Code: "AY2425", StartDate: end, EndDate: start}
	assert.Error(t, reversed.Validate())

	sameDay := &AcademicYear{Name: "2024-2025", Code: "AY2425", StartDate: start, EndDate: start}
	assert.Error(t, sameDay.Validate())
}

func TestAcademicYearTransitions(t *testing.T) {
	assert.True(t, CanTransition(AcademicYearTransitions, YearDraft, YearActive))
	assert.True(t, CanTransition(AcademicYearTransitions, YearActive, YearClosed))

	assert.False(t, CanTransition(AcademicYearTransitions, YearDraft, YearClosed))
	assert.False(t, CanTransition(AcademicYearTransitions, YearClosed, YearActive))
}

func TestBatchTransitions(t *testing.T) {
	assert.True(t, CanTransition(BatchTransitions, BatchPlanned, BatchActive))
	assert.True(t, CanTransition(BatchTransitions, BatchActive, BatchGraduated))

	assert.False(t, CanTransition(BatchTransitions, BatchPlanned, BatchGraduated))
	assert.False(t, CanTransition(BatchTransitions, BatchGraduated, BatchActive))
}

func TestHostelRoomHasVacancy(t *testing.T) {
	assert.True(t, (&HostelRoom{Capacity: 3, Occupied: 0}).HasVacancy())
	assert.True(t, (&HostelRoom{Capacity: 3, Occupied: 2}).HasVacancy())
	assert.False(t, (&HostelRoom{Capacity: 3, Occupied: 3}).HasVacancy())
	assert.False(t, (&HostelRoom{Capacity: 0, Occupied: 0}).HasVacancy())
}
