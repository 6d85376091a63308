package services

import (
	"context"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/logger"
)

// ExaminationService handles exam events, schedules, grade bands and the
// result workflow (draft, submitted, verified, published)
type ExaminationService struct {
	examRepo    *repositories.ExaminationRepository
	courseRepo  *repositories.CourseRepository
	studentRepo *repositories.StudentRepository
	yearRepo    *repositories.AcademicYearRepository
}

// NewExaminationService creates a new examination service instance
func NewExaminationService(
	examRepo *repositories.ExaminationRepository,
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	yearRepo *repositories.AcademicYearRepository,
) *ExaminationService {
	return &ExaminationService{
		examRepo:    examRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		yearRepo:    yearRepo,
	}
}

// CreateExamination creates a new exam event in draft state
func (s *ExaminationService) CreateExamination(ctx context.Context, req dto.CreateExaminationRequest) (*models.Examination, error) {
	if _, err := s.yearRepo.GetByID(ctx, req.AcademicYearID); err != nil {
		return nil, err
	}

	exam := &models.Examination{
		Name:           req.Name,
		Code:           req.Code,
		ExamType:       req.ExamType,
		AcademicYearID: req.AcademicYearID,
		SemesterID:     req.SemesterID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         models.ExamDraft,
	}
	if err := exam.Validate(); err != nil {
		return nil, err
	}

	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}

	logger.Info().Int64("examId", exam.ID).Str("code", exam.Code).Msg("Examination created")
	return exam, nil
}

// GetExamination retrieves one examination
func (s *ExaminationService) GetExamination(ctx context.Context, id int64) (*models.Examination, error) {
	return s.examRepo.GetByID(ctx, id)
}

// ListExaminations lists all examinations
func (s *ExaminationService) ListExaminations(ctx context.Context) ([]*models.Examination, error) {
	return s.examRepo.GetAll(ctx)
}

// ChangeExamStatus moves an examination through its lifecycle
func (s *ExaminationService) ChangeExamStatus(ctx context.Context, id int64, status models.Status) error {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.ExaminationTransitions, exam.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.examRepo.UpdateStatus(ctx, id, status)
}

// AddSchedule adds one paper to a draft or scheduled examination
func (s *ExaminationService) AddSchedule(ctx context.Context, examinationID int64, req dto.CreateExamScheduleRequest) (*models.ExamSchedule, error) {
	exam, err := s.examRepo.GetByID(ctx, examinationID)
	if err != nil {
		return nil, err
	}
	if exam.Status != models.ExamDraft && exam.Status != models.ExamScheduled {
		return nil, apperrors.NewConflictError("papers can only be added before the examination starts")
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if req.EndHour <= req.StartHour {
		return nil, apperrors.ErrInvalidTimeRange
	}
	if !exam.ContainsDate(req.ExamDate) {
		return nil, apperrors.NewBadRequestError("exam date must fall within the examination window")
	}

	schedule := &models.ExamSchedule{
		ExaminationID: examinationID,
		CourseID:      req.CourseID,
		ExamDate:      req.ExamDate,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
		ClassroomID:   req.ClassroomID,
	}
	if err := s.examRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListSchedules lists the papers of an examination
func (s *ExaminationService) ListSchedules(ctx context.Context, examinationID int64) ([]*models.ExamSchedule, error) {
	return s.examRepo.GetSchedules(ctx, examinationID)
}

// CreateGradeBand defines a percentage-to-grade mapping
func (s *ExaminationService) CreateGradeBand(ctx context.Context, req dto.CreateGradeBandRequest) (*models.GradeBand, error) {
	if req.MinPercent < 0 || req.MaxPercent > 100 || req.MaxPercent < req.MinPercent {
		return nil, apperrors.NewBadRequestError("grade band range must lie within 0-100 with min <= max")
	}

	band := &models.GradeBand{
		Grade:      req.Grade,
		MinPercent: req.MinPercent,
		MaxPercent: req.MaxPercent,
		GradePoint: req.GradePoint,
	}
	if err := s.examRepo.CreateGradeBand(ctx, band); err != nil {
		return nil, err
	}
	return band, nil
}

// ListGradeBands lists the active grade bands
func (s *ExaminationService) ListGradeBands(ctx context.Context) ([]models.GradeBand, error) {
	return s.examRepo.GetGradeBands(ctx)
}

// EnterResult records one student's marks for a course within an
// examination. Total, percentage, grade and pass flag are derived from the
// course maxima and the grade bands; the row starts in draft.
func (s *ExaminationService) EnterResult(ctx context.Context, examinationID int64, req dto.EnterResultRequest) (*models.ExamResult, error) {
	if _, err := s.examRepo.GetByID(ctx, examinationID); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.examRepo.ResultExists(ctx, examinationID, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrResultExists
	}

	bands, err := s.examRepo.GetGradeBands(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.ExamResult{
		ExaminationID: examinationID,
		StudentID:     req.StudentID,
		CourseID:      req.CourseID,
		InternalMarks: req.InternalMarks,
		ExternalMarks: req.ExternalMarks,
		Absent:        req.Absent,
		Status:        models.ResultDraft,
	}
	if err := result.Compute(course, bands); err != nil {
		return nil, err
	}

	if err := s.examRepo.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CorrectResult rewrites the marks on a draft result
func (s *ExaminationService) CorrectResult(ctx context.Context, resultID int64, req dto.EnterResultRequest) (*models.ExamResult, error) {
	result, err := s.examRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result.Status != models.ResultDraft {
		return nil, apperrors.NewConflictError("only draft results can be corrected")
	}

	course, err := s.courseRepo.GetByID(ctx, result.CourseID)
	if err != nil {
		return nil, err
	}
	bands, err := s.examRepo.GetGradeBands(ctx)
	if err != nil {
		return nil, err
	}

	result.InternalMarks = req.InternalMarks
	result.ExternalMarks = req.ExternalMarks
	result.Absent = req.Absent
	if err := result.Compute(course, bands); err != nil {
		return nil, err
	}

	if err := s.examRepo.UpdateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeResultStatus moves a result through the workflow
func (s *ExaminationService) ChangeResultStatus(ctx context.Context, resultID int64, status models.Status) error {
	result, err := s.examRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.ExamResultTransitions, result.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.examRepo.UpdateResultStatus(ctx, resultID, status)
}

// ListResults lists the results of an examination matching the filter
func (s *ExaminationService) ListResults(ctx context.Context, examinationID int64, filter dto.ResultFilter) ([]*models.ExamResult, error) {
	return s.examRepo.ListResults(ctx, examinationID, filter)
}
