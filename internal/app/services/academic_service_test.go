package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// yearStore is an in-memory AcademicYearStore. SetCurrent keeps the same
// contract as the SQL implementation: exactly one year holds the flag
// afterwards.
type yearStore struct {
	years map[int64]*models.AcademicYear
}

func newYearStore(years ...*models.AcademicYear) *yearStore {
	s := &yearStore{years: make(map[int64]*models.AcademicYear)}
	for _, y := range years {
		s.years[y.ID] = y
	}
	return s
}

func (s *yearStore) Create(_ context.Context, year *models.AcademicYear) error {
	year.ID = int64(len(s.years) + 1)
	s.years[year.ID] = year
	return nil
}

func (s *yearStore) GetByID(_ context.Context, id int64) (*models.AcademicYear, error) {
	year, ok := s.years[id]
	if !ok {
		return nil, apperrors.ErrAcademicYearNotFound
	}
	y := *year
	return &y, nil
}

func (s *yearStore) GetCurrent(_ context.Context) (*models.AcademicYear, error) {
	for _, year := range s.years {
		if year.IsCurrent {
			y := *year
			return &y, nil
		}
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

func (s *yearStore) GetAll(_ context.Context) ([]*models.AcademicYear, error) {
	var years []*models.AcademicYear
	for _, year := range s.years {
		y := *year
		years = append(years, &y)
	}
	return years, nil
}

func (s *yearStore) CodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, year := range s.years {
		if year.Code == code && year.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *yearStore) Update(_ context.Context, year *models.AcademicYear) error {
	stored, ok := s.years[year.ID]
	if !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	*stored = *year
	return nil
}

func (s *yearStore) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	year, ok := s.years[id]
	if !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	year.Status = status
	return nil
}

func (s *yearStore) SetCurrent(_ context.Context, id int64) error {
	if _, ok := s.years[id]; !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	for _, year := range s.years {
		year.IsCurrent = false
	}
	s.years[id].IsCurrent = true
	return nil
}

func (s *yearStore) CreateSemester(_ context.Context, semester *models.Semester) error {
	semester.ID = 1
	return nil
}

func (s *yearStore) GetSemestersByYear(_ context.Context, _ int64) ([]*models.Semester, error) {
	return nil, nil
}

func TestChangeYearStatusActivationMovesCurrentFlag(t *testing.T) {
	older := &models.AcademicYear{ID: 1, Name: "2023-2024", Code: "AY2324", Status: models.YearActive, IsCurrent: true, Active: true}
	newer := &models.AcademicYear{ID: 2, Name: "2024-2025", Code: "AY2425", Status: models.YearDraft, Active: true}
	store := newYearStore(older, newer)
	svc := &AcademicService{yearRepo: store}

	year, err := svc.ChangeYearStatus(context.Background(), 2, models.YearActive)
	require.NoError(t, err)
	assert.Equal(t, models.YearActive, year.Status)
	assert.True(t, year.IsCurrent)

	// Exactly one year carries the flag afterwards
	current, err := store.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.ID)
	assert.False(t, store.years[1].IsCurrent)
}

func TestChangeYearStatusClosingKeepsCurrentFlag(t *testing.T) {
	active := &models.AcademicYear{ID: 1, Name: "2024-2025", Code: "AY2425", Status: models.YearActive, IsCurrent: true, Active: true}
	store := newYearStore(active)
	svc := &AcademicService{yearRepo: store}

	year, err := svc.ChangeYearStatus(context.Background(), 1, models.YearClosed)
	require.NoError(t, err)
	assert.Equal(t, models.YearClosed, year.Status)

	// Closing a year is not an activation; the flag stays where it was
	assert.True(t, store.years[1].IsCurrent)
}

func TestChangeYearStatusRejectsIllegalMoves(t *testing.T) {
	draft := &models.AcademicYear{ID: 1, Name: "2024-2025", Code: "AY2425", Status: models.YearDraft, Active: true}
	svc := &AcademicService{yearRepo: newYearStore(draft)}

	_, err := svc.ChangeYearStatus(context.Background(), 1, models.YearClosed)
	assert.ErrorIs(t, err, apperrors.ErrIllegalStateChange)

	_, err = svc.ChangeYearStatus(context.Background(), 99, models.YearActive)
	assert.ErrorIs(t, err, apperrors.ErrAcademicYearNotFound)
}
