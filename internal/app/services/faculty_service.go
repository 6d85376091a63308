package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/db"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/auth"
	"github.com/univera/univera/internal/pkg/logger"
)

// FacultyService handles faculty hiring, updates and workload reporting
type FacultyService struct {
	db            *db.PostgresDB
	facultyRepo   *repositories.FacultyRepository
	userRepo      *repositories.UserRepository
	catalogRepo   *repositories.CatalogRepository
	sequenceRepo  *repositories.SequenceRepository
	courseRepo    *repositories.CourseRepository
	timetableRepo *repositories.TimetableRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(
	database *db.PostgresDB,
	facultyRepo *repositories.FacultyRepository,
	userRepo *repositories.UserRepository,
	catalogRepo *repositories.CatalogRepository,
	sequenceRepo *repositories.SequenceRepository,
	courseRepo *repositories.CourseRepository,
	timetableRepo *repositories.TimetableRepository,
) *FacultyService {
	return &FacultyService{
		db:            database,
		facultyRepo:   facultyRepo,
		userRepo:      userRepo,
		catalogRepo:   catalogRepo,
		sequenceRepo:  sequenceRepo,
		courseRepo:    courseRepo,
		timetableRepo: timetableRepo,
	}
}

// HireFaculty creates the user account and the faculty record together. The
// employee code comes from the shared sequence.
func (s *FacultyService) HireFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*models.Faculty, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if _, err := s.catalogRepo.GetDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	joining := time.Now()
	if req.JoiningDate != nil {
		joining = *req.JoiningDate
	}

	code, err := s.sequenceRepo.NextEmployeeCode(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleFaculty,
		IsActive:  true,
	}

	faculty := &models.Faculty{
		EmployeeCode: code,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
		JoiningDate:  joining,
		Status:       models.FacultyActive,
	}

	err = s.db.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(txCtx, tx, user); err != nil {
			return err
		}
		faculty.UserID = user.ID
		return s.facultyRepo.CreateTx(txCtx, tx, faculty)
	})
	if err != nil {
		return nil, err
	}

	faculty.User = user
	logger.Info().Int64("facultyId", faculty.ID).Str("employeeCode", code).Msg("Faculty member hired")
	return faculty, nil
}

// GetFaculty retrieves one faculty member
func (s *FacultyService) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	return s.facultyRepo.GetByID(ctx, id)
}

// ListByDepartment lists the faculty of a department
func (s *FacultyService) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Faculty, error) {
	return s.facultyRepo.GetByDepartment(ctx, departmentID)
}

// UpdateFaculty updates mutable faculty fields
func (s *FacultyService) UpdateFaculty(ctx context.Context, id int64, req dto.UpdateFacultyRequest) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := faculty.User.FirstName
		lastName := faculty.User.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := s.userRepo.UpdateName(ctx, faculty.UserID, firstName, lastName); err != nil {
			return nil, err
		}
		faculty.User.FirstName = firstName
		faculty.User.LastName = lastName
	}

	if req.DepartmentID != nil {
		if _, err := s.catalogRepo.GetDepartmentByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		faculty.DepartmentID = *req.DepartmentID
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// ChangeFacultyStatus moves a faculty member to a new employment status
func (s *FacultyService) ChangeFacultyStatus(ctx context.Context, id int64, status models.Status) error {
	if _, err := s.facultyRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.facultyRepo.UpdateStatus(ctx, id, status)
}

// Workload summarizes a faculty member's assigned courses and weekly hours
func (s *FacultyService) Workload(ctx context.Context, id int64) (*dto.FacultyWorkloadResponse, error) {
	if _, err := s.facultyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.GetByFaculty(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, hours, err := s.timetableRepo.WeeklyLoad(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.FacultyWorkloadResponse{
		FacultyID:   id,
		Courses:     len(courses),
		WeeklySlots: slots,
		WeeklyHours: hours,
	}, nil
}
