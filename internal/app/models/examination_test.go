package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univera/univera/internal/pkg/apperrors"
)

func testGradeBands() []GradeBand {
	return []GradeBand{
		{Grade: "O", MinPercent: 90, MaxPercent: 100, GradePoint: 10},
		{Grade: "A+", MinPercent: 80, MaxPercent: 89.99, GradePoint: 9},
		{Grade: "A", MinPercent: 70, MaxPercent: 79.99, GradePoint: 8},
		{Grade: "B+", MinPercent: 60, MaxPercent: 69.99, GradePoint: 7},
		{Grade: "B", MinPercent: 50, MaxPercent: 59.99, GradePoint: 6},
		{Grade: "C", MinPercent: 40, MaxPercent: 49.99, GradePoint: 5},
		{Grade: "F", MinPercent: 0, MaxPercent: 39.99, GradePoint: 0},
	}
}

func testCourse() *Course {
	return &Course{
		ID:           1,
		Name:         "Data Structures",
		Code:         "CS201",
		MaxMarks:     100,
		PassingMarks: 40,
		InternalMax:  30,
		ExternalMax:  70,
	}
}

func TestExaminationValidate(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	exam := &Examination{Name: "Semester 3 Finals", Code: "S3F", StartDate: start, EndDate: start.AddDate(0, 0, 10)}
	assert.NoError(t, exam.Validate())

	missing := &Examination{Code: "S3F", StartDate: start, EndDate: start.AddDate(0, 0, 10)}
	assert.Error(t, missing.Validate())

	reversed := &Examination{Name: "Finals", Code: "S3F", StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	assert.Error(t, reversed.Validate())

	// Single-day examinations are allowed
	oneDay := &Examination{Name: "Retest", Code: "RT1", StartDate: start, EndDate: start}
	assert.NoError(t, oneDay.Validate())
}

func TestExaminationContainsDate(t *testing.T) {
	exam := &Examination{
		StartDate: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC),
	}

	// Window boundaries are inclusive by calendar day, whatever the clock
	assert.True(t, exam.ContainsDate(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, exam.ContainsDate(time.Date(2025, 5, 10, 23, 0, 0, 0, time.UTC)))
	assert.True(t, exam.ContainsDate(time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)))

	assert.False(t, exam.ContainsDate(time.Date(2025, 4, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, exam.ContainsDate(time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)))
}

func TestGradeBandCovers(t *testing.T) {
	band := GradeBand{Grade: "A+", MinPercent: 80, MaxPercent: 89.99, GradePoint: 9}

	assert.True(t, band.Covers(80))
	assert.True(t, band.Covers(89.99))
	assert.True(t, band.Covers(85.5))
	assert.False(t, band.Covers(79.99))
	assert.False(t, band.Covers(90))
}

func TestGradeFor(t *testing.T) {
	bands := testGradeBands()

	band, err := GradeFor(bands, 92)
	require.NoError(t, err)
	assert.Equal(t, "O", band.Grade)
	assert.Equal(t, 10.0, band.GradePoint)

	band, err = GradeFor(bands, 0)
	require.NoError(t, err)
	assert.Equal(t, "F", band.Grade)

	// No band covers a percentage in the gap between two bands
	_, err = GradeFor(bands, 89.995)
	assert.ErrorIs(t, err, apperrors.ErrGradeBandNotFound)

	_, err = GradeFor(nil, 50)
	assert.ErrorIs(t, err, apperrors.ErrGradeBandNotFound)
}

func TestExamResultCompute(t *testing.T) {
	course := testCourse()
	bands := testGradeBands()

	result := &ExamResult{InternalMarks: 24, ExternalMarks: 51}
	require.NoError(t, result.Compute(course, bands))

	assert.Equal(t, 75.0, result.TotalMarks)
	assert.Equal(t, 75.0, result.Percentage)
	assert.Equal(t, "A", result.Grade)
	assert.Equal(t, 8.0, result.GradePoint)
	assert.True(t, result.Passed)
}

func TestExamResultComputeAbsent(t *testing.T) {
	// Marks entered for an absent student are discarded
	result := &ExamResult{InternalMarks: 24, ExternalMarks: 51, Absent: true}
	require.NoError(t, result.Compute(testCourse(), testGradeBands()))

	assert.Equal(t, 0.0, result.InternalMarks)
	assert.Equal(t, 0.0, result.ExternalMarks)
	assert.Equal(t, 0.0, result.TotalMarks)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, "AB", result.Grade)
	assert.Equal(t, 0.0, result.GradePoint)
	assert.False(t, result.Passed)
}

func TestExamResultComputeMarksOutOfRange(t *testing.T) {
	course := testCourse()
	bands := testGradeBands()

	cases := []struct {
		name     string
		internal float64
		external float64
	}{
		{"negative internal", -1, 50},
		{"negative external", 20, -1},
		{"internal above max", 31, 50},
		{"external above max", 20, 71},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := &ExamResult{InternalMarks: tc.internal, ExternalMarks: tc.external}
			assert.ErrorIs(t, result.Compute(course, bands), apperrors.ErrMarksOutOfRange)
		})
	}
}

func TestExamResultComputeComponentFailure(t *testing.T) {
	// Total 55 clears the passing mark of 40, but the internal component
	// sits below 40% of its maximum of 30.
	result := &ExamResult{InternalMarks: 10, ExternalMarks: 45}
	require.NoError(t, result.Compute(testCourse(), testGradeBands()))

	assert.Equal(t, 55.0, result.TotalMarks)
	assert.Equal(t, "B", result.Grade)
	assert.False(t, result.Passed)

	// Exactly 40% of each component passes
	boundary := &ExamResult{InternalMarks: 12, ExternalMarks: 28}
	require.NoError(t, boundary.Compute(testCourse(), testGradeBands()))
	assert.Equal(t, 40.0, boundary.TotalMarks)
	assert.True(t, boundary.Passed)
}

func TestExamResultComputeZeroMaxMarks(t *testing.T) {
	course := testCourse()
	course.MaxMarks = 0

	result := &ExamResult{InternalMarks: 0, ExternalMarks: 0}
	require.NoError(t, result.Compute(course, testGradeBands()))
	assert.Equal(t, 0.0, result.Percentage)
}

func TestMeanGradePoint(t *testing.T) {
	assert.Equal(t, 0.0, MeanGradePoint(nil))
	assert.Equal(t, 0.0, MeanGradePoint([]ExamResult{}))

	results := []ExamResult{
		{GradePoint: 10},
		{GradePoint: 8},
		{GradePoint: 7},
	}
	// 25/3 = 8.3333..., rounded to two decimals
	assert.Equal(t, 8.33, MeanGradePoint(results))

	assert.Equal(t, 9.0, MeanGradePoint([]ExamResult{{GradePoint: 9}}))
}

func TestMeanGradePointSkipsAbsent(t *testing.T) {
	// An absent row carries grade point 0 but must not deflate the mean
	results := []ExamResult{
		{GradePoint: 8},
		{GradePoint: 0, Absent: true},
	}
	assert.Equal(t, 8.0, MeanGradePoint(results))

	mixed := []ExamResult{
		{GradePoint: 10},
		{GradePoint: 0, Absent: true},
		{GradePoint: 7},
		{GradePoint: 0, Absent: true},
	}
	assert.Equal(t, 8.5, MeanGradePoint(mixed))

	// A semester where the student missed every paper has no SGPA
	allAbsent := []ExamResult{
		{GradePoint: 0, Absent: true},
		{GradePoint: 0, Absent: true},
	}
	assert.Equal(t, 0.0, MeanGradePoint(allAbsent))
}

func TestExaminationTransitions(t *testing.T) {
	assert.True(t, CanTransition(ExaminationTransitions, ExamDraft, ExamScheduled))
	assert.True(t, CanTransition(ExaminationTransitions, ExamDraft, ExamCancelled))
	assert.True(t, CanTransition(ExaminationTransitions, ExamScheduled, ExamOngoing))
	assert.True(t, CanTransition(ExaminationTransitions, ExamOngoing, ExamCompleted))

	assert.False(t, CanTransition(ExaminationTransitions, ExamDraft, ExamCompleted))
	assert.False(t, CanTransition(ExaminationTransitions, ExamOngoing, ExamCancelled))
	assert.False(t, CanTransition(ExaminationTransitions, ExamCompleted, ExamDraft))
	assert.False(t, CanTransition(ExaminationTransitions, ExamCancelled, ExamScheduled))
}

func TestExamResultTransitions(t *testing.T) {
	assert.True(t, CanTransition(ExamResultTransitions, ResultDraft, ResultSubmitted))
	assert.True(t, CanTransition(ExamResultTransitions, ResultSubmitted, ResultVerified))
	assert.True(t, CanTransition(ExamResultTransitions, ResultVerified, ResultPublished))

	// A submitted result can be bounced back for correction; a verified one cannot
	assert.True(t, CanTransition(ExamResultTransitions, ResultSubmitted, ResultDraft))
	assert.False(t, CanTransition(ExamResultTransitions, ResultVerified, ResultDraft))
	assert.False(t, CanTransition(ExamResultTransitions, ResultPublished, ResultDraft))
	assert.False(t, CanTransition(ExamResultTransitions, ResultDraft, ResultPublished))
}
