package services

import (
	"context"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/logger"
)

// AcademicYearStore is the persistence surface the academic service needs
// for years and semesters. AcademicYearRepository implements it; tests
// substitute an in-memory store.
type AcademicYearStore interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	GetCurrent(ctx context.Context) (*models.AcademicYear, error)
	GetAll(ctx context.Context) ([]*models.AcademicYear, error)
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	SetCurrent(ctx context.Context, id int64) error
	CreateSemester(ctx context.Context, semester *models.Semester) error
	GetSemestersByYear(ctx context.Context, yearID int64) ([]*models.Semester, error)
}

// AcademicService handles academic years, semesters and the reference
// catalog (departments, programs, batches, classrooms, subjects, courses)
type AcademicService struct {
	yearRepo    AcademicYearStore
	catalogRepo *repositories.CatalogRepository
	courseRepo  *repositories.CourseRepository
	facultyRepo *repositories.FacultyRepository
}

// NewAcademicService creates a new academic service instance
func NewAcademicService(
	yearRepo AcademicYearStore,
	catalogRepo *repositories.CatalogRepository,
	courseRepo *repositories.CourseRepository,
	facultyRepo *repositories.FacultyRepository,
) *AcademicService {
	return &AcademicService{
		yearRepo:    yearRepo,
		catalogRepo: catalogRepo,
		courseRepo:  courseRepo,
		facultyRepo: facultyRepo,
	}
}

// CreateAcademicYear creates a new academic year in draft state
func (s *AcademicService) CreateAcademicYear(ctx context.Context, req dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	year := &models.AcademicYear{
		Name:        req.Name,
		Code:        req.Code,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.YearDraft,
		Description: req.Description,
	}

	if err := year.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.yearRepo.CodeExists(ctx, year.Code, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCodeAlreadyExists
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}

	logger.Info().Int64("yearId", year.ID).Str("code", year.Code).Msg("Academic year created")
	return year, nil
}

// GetAcademicYear retrieves one academic year
func (s *AcademicService) GetAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.yearRepo.GetByID(ctx, id)
}

// ListAcademicYears lists all academic years
func (s *AcademicService) ListAcademicYears(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.yearRepo.GetAll(ctx)
}

// UpdateAcademicYear updates the mutable fields of a draft or active year
func (s *AcademicService) UpdateAcademicYear(ctx context.Context, id int64, req dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if year.Status == models.YearClosed {
		return nil, apperrors.NewConflictError("closed academic years cannot be edited")
	}

	if req.Name != nil {
		year.Name = *req.Name
	}
	if req.StartDate != nil {
		year.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		year.EndDate = *req.EndDate
	}
	if req.Description != nil {
		year.Description = *req.Description
	}

	if err := year.Validate(); err != nil {
		return nil, err
	}

	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// ChangeYearStatus moves an academic year through its lifecycle. Activating
// a year also makes it the current one.
func (s *AcademicService) ChangeYearStatus(ctx context.Context, id int64, status models.Status) (*models.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(models.AcademicYearTransitions, year.Status, status) {
		return nil, apperrors.ErrIllegalStateChange
	}

	if err := s.yearRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	year.Status = status

	if status == models.YearActive {
		if err := s.yearRepo.SetCurrent(ctx, id); err != nil {
			return nil, err
		}
		year.IsCurrent = true
	}

	logger.Info().Int64("yearId", id).Str("status", string(status)).Msg("Academic year status changed")
	return year, nil
}

// GetCurrentYear retrieves the current academic year
func (s *AcademicService) GetCurrentYear(ctx context.Context) (*models.AcademicYear, error) {
	return s.yearRepo.GetCurrent(ctx)
}

// CreateSemester adds a semester to an academic year
func (s *AcademicService) CreateSemester(ctx context.Context, req dto.CreateSemesterRequest) (*models.Semester, error) {
	if _, err := s.yearRepo.GetByID(ctx, req.AcademicYearID); err != nil {
		return nil, err
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, apperrors.ErrAcademicYearDates
	}

	semester := &models.Semester{
		AcademicYearID: req.AcademicYearID,
		Number:         req.Number,
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if err := s.yearRepo.CreateSemester(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// ListSemesters lists the semesters of an academic year
func (s *AcademicService) ListSemesters(ctx context.Context, yearID int64) ([]*models.Semester, error) {
	return s.yearRepo.GetSemestersByYear(ctx, yearID)
}

// CreateDepartment creates a department
func (s *AcademicService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	exists, err := s.catalogRepo.DepartmentCodeExists(ctx, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCodeAlreadyExists
	}

	dept := &models.Department{Name: req.Name, Code: req.Code}
	if err := s.catalogRepo.CreateDepartment(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// ListDepartments lists all departments
func (s *AcademicService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.catalogRepo.GetAllDepartments(ctx)
}

// CreateProgram creates a degree program under a department
func (s *AcademicService) CreateProgram(ctx context.Context, req dto.CreateProgramRequest) (*models.Program, error) {
	if _, err := s.catalogRepo.GetDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	program := &models.Program{
		Name:           req.Name,
		Code:           req.Code,
		DepartmentID:   req.DepartmentID,
		DurationYears:  req.DurationYears,
		TotalSemesters: req.TotalSemesters,
	}
	if err := s.catalogRepo.CreateProgram(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// ListPrograms lists the programs of a department
func (s *AcademicService) ListPrograms(ctx context.Context, departmentID int64) ([]*models.Program, error) {
	return s.catalogRepo.GetProgramsByDepartment(ctx, departmentID)
}

// CreateBatch creates an intake cohort under a program
func (s *AcademicService) CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*models.Batch, error) {
	if _, err := s.catalogRepo.GetProgramByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}
	if req.EndYear < req.StartYear {
		return nil, apperrors.NewBadRequestError("batch end year must not precede start year")
	}

	batch := &models.Batch{
		Name:      req.Name,
		Code:      req.Code,
		ProgramID: req.ProgramID,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Status:    models.BatchActive,
	}
	if err := s.catalogRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ChangeBatchStatus moves a batch through its lifecycle
func (s *AcademicService) ChangeBatchStatus(ctx context.Context, id int64, status models.Status) error {
	batch, err := s.catalogRepo.GetBatchByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.BatchTransitions, batch.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.catalogRepo.UpdateBatchStatus(ctx, id, status)
}

// CreateClassroom creates a physical room
func (s *AcademicService) CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest) (*models.Classroom, error) {
	room := &models.Classroom{
		Name:     req.Name,
		Code:     req.Code,
		Building: req.Building,
		Floor:    req.Floor,
		Capacity: req.Capacity,
	}
	if err := s.catalogRepo.CreateClassroom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ListClassrooms lists all classrooms
func (s *AcademicService) ListClassrooms(ctx context.Context) ([]*models.Classroom, error) {
	return s.catalogRepo.GetAllClassrooms(ctx)
}

// CreateSubject creates a subject
func (s *AcademicService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{Name: req.Name, Code: req.Code, Credits: req.Credits}
	if err := s.catalogRepo.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// CreateCourse binds a subject to a batch semester with a teaching faculty
// member. Mark maxima default to the 100/40 and 30/70 split when omitted.
func (s *AcademicService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.catalogRepo.GetSubjectByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.GetBatchByID(ctx, req.BatchID); err != nil {
		return nil, err
	}
	if _, err := s.facultyRepo.GetByID(ctx, req.FacultyID); err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.CodeExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCodeAlreadyExists
	}

	course := &models.Course{
		Name:           req.Name,
		Code:           req.Code,
		SubjectID:      req.SubjectID,
		ProgramID:      req.ProgramID,
		DepartmentID:   req.DepartmentID,
		BatchID:        req.BatchID,
		SemesterID:     req.SemesterID,
		AcademicYearID: req.AcademicYearID,
		FacultyID:      req.FacultyID,
		MaxMarks:       req.MaxMarks,
		PassingMarks:   req.PassingMarks,
		InternalMax:    req.InternalMax,
		ExternalMax:    req.ExternalMax,
	}
	if course.MaxMarks <= 0 {
		course.MaxMarks = 100
	}
	if course.PassingMarks <= 0 {
		course.PassingMarks = 40
	}
	if course.InternalMax <= 0 {
		course.InternalMax = 30
	}
	if course.ExternalMax <= 0 {
		course.ExternalMax = course.MaxMarks - course.InternalMax
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses lists the courses of a batch semester
func (s *AcademicService) ListCourses(ctx context.Context, batchID, semesterID int64) ([]*models.Course, error) {
	return s.courseRepo.GetByBatchSemester(ctx, batchID, semesterID)
}
