package services

import (
	"context"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/logger"
)

// TimetableService handles weekly slot scheduling with double-booking
// protection for faculty and classrooms
type TimetableService struct {
	timetableRepo *repositories.TimetableRepository
	courseRepo    *repositories.CourseRepository
	facultyRepo   *repositories.FacultyRepository
	catalogRepo   *repositories.CatalogRepository
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(
	timetableRepo *repositories.TimetableRepository,
	courseRepo *repositories.CourseRepository,
	facultyRepo *repositories.FacultyRepository,
	catalogRepo *repositories.CatalogRepository,
) *TimetableService {
	return &TimetableService{
		timetableRepo: timetableRepo,
		courseRepo:    courseRepo,
		facultyRepo:   facultyRepo,
		catalogRepo:   catalogRepo,
	}
}

// checkConflicts rejects an entry whose slot overlaps an existing slot of
// the same faculty member or the same classroom on that day. The entry's
// own ID is excluded so updates do not collide with themselves.
func (s *TimetableService) checkConflicts(ctx context.Context, entry *models.TimetableEntry) error {
	facultySlots, err := s.timetableRepo.GetByFacultyDay(ctx, entry.FacultyID, entry.Day, entry.ID)
	if err != nil {
		return err
	}
	for _, other := range facultySlots {
		if entry.OverlapsWith(other) {
			return apperrors.NewCustomError(apperrors.ErrFacultyConflict, "faculty already teaches "+other.Label())
		}
	}

	roomSlots, err := s.timetableRepo.GetByClassroomDay(ctx, entry.ClassroomID, entry.Day, entry.ID)
	if err != nil {
		return err
	}
	for _, other := range roomSlots {
		if entry.OverlapsWith(other) {
			return apperrors.NewCustomError(apperrors.ErrClassroomConflict, "classroom already booked "+other.Label())
		}
	}

	return nil
}

// CreateEntry adds a weekly slot after validating and conflict-checking it
func (s *TimetableService) CreateEntry(ctx context.Context, req dto.CreateTimetableEntryRequest) (*models.TimetableEntry, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.facultyRepo.GetByID(ctx, req.FacultyID); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.GetClassroomByID(ctx, req.ClassroomID); err != nil {
		return nil, err
	}

	entry := &models.TimetableEntry{
		CourseID:    req.CourseID,
		FacultyID:   req.FacultyID,
		ClassroomID: req.ClassroomID,
		BatchID:     req.BatchID,
		SemesterID:  req.SemesterID,
		Day:         req.Day,
		StartHour:   req.StartHour,
		EndHour:     req.EndHour,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.timetableRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info().Int64("entryId", entry.ID).Str("slot", entry.Label()).Msg("Timetable entry created")
	return entry, nil
}

// UpdateEntry moves an existing slot, re-running the conflict checks
func (s *TimetableService) UpdateEntry(ctx context.Context, id int64, req dto.UpdateTimetableEntryRequest) (*models.TimetableEntry, error) {
	entry, err := s.timetableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FacultyID != nil {
		if _, err := s.facultyRepo.GetByID(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
		entry.FacultyID = *req.FacultyID
	}
	if req.ClassroomID != nil {
		if _, err := s.catalogRepo.GetClassroomByID(ctx, *req.ClassroomID); err != nil {
			return nil, err
		}
		entry.ClassroomID = *req.ClassroomID
	}
	if req.Day != nil {
		entry.Day = *req.Day
	}
	if req.StartHour != nil {
		entry.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		entry.EndHour = *req.EndHour
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.timetableRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries lists entries matching the filter
func (s *TimetableService) ListEntries(ctx context.Context, filter dto.TimetableFilter) ([]*models.TimetableEntry, error) {
	return s.timetableRepo.List(ctx, filter)
}

// DeleteEntry removes a slot from the timetable
func (s *TimetableService) DeleteEntry(ctx context.Context, id int64) error {
	return s.timetableRepo.Delete(ctx, id)
}
