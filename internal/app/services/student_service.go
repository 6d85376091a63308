package services

import (
	"context"
	"sort"
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

// StudentService handles admissions, attendance, discipline and academic
// performance
type StudentService struct {
	db           *db.PostgresDB
	studentRepo  *repositories.StudentRepository
	userRepo     *repositories.UserRepository
	catalogRepo  *repositories.CatalogRepository
	sequenceRepo *repositories.SequenceRepository
	examRepo     *repositories.ExaminationRepository
	yearRepo     *repositories.AcademicYearRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	database *db.PostgresDB,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	catalogRepo *repositories.CatalogRepository,
	sequenceRepo *repositories.SequenceRepository,
	examRepo *repositories.ExaminationRepository,
	yearRepo *repositories.AcademicYearRepository,
) *StudentService {
	return &StudentService{
		db:           database,
		studentRepo:  studentRepo,
		userRepo:     userRepo,
		catalogRepo:  catalogRepo,
		sequenceRepo: sequenceRepo,
		examRepo:     examRepo,
		yearRepo:     yearRepo,
	}
}

// AdmitStudent creates the user account and the student record together.
// The registration number comes from the per-year sequence.
func (s *StudentService) AdmitStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if _, err := s.catalogRepo.GetProgramByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.GetBatchByID(ctx, req.BatchID); err != nil {
		return nil, err
	}

	admission := time.Now()
	if req.AdmissionDate != nil {
		admission = *req.AdmissionDate
	}

	regNumber, err := s.sequenceRepo.NextRegistrationNumber(ctx, admission.Year())
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
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	student := &models.Student{
		RegistrationNumber: regNumber,
		ProgramID:          req.ProgramID,
		DepartmentID:       req.DepartmentID,
		BatchID:            req.BatchID,
		CurrentSemester:    1,
		AdmissionDate:      admission,
		DateOfBirth:        req.DateOfBirth,
		Gender:             req.Gender,
		Mobile:             req.Mobile,
		GuardianName:       req.GuardianName,
		GuardianMobile:     req.GuardianMobile,
		Status:             models.StudentEnrolled,
		Active:             true,
	}

	err = s.db.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(txCtx, tx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return s.studentRepo.CreateTx(txCtx, tx, student)
	})
	if err != nil {
		return nil, err
	}

	student.User = user
	logger.Info().Int64("studentId", student.ID).Str("registration", regNumber).Msg("Student admitted")
	return student, nil
}

// GetStudent retrieves one student
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents lists students matching the filter, paginated
func (s *StudentService) ListStudents(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.studentRepo.List(ctx, filter, offset, limit)
}

// UpdateStudent updates mutable student fields
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := student.User.FirstName
		lastName := student.User.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := s.userRepo.UpdateName(ctx, student.UserID, firstName, lastName); err != nil {
			return nil, err
		}
		student.User.FirstName = firstName
		student.User.LastName = lastName
	}

	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Mobile != nil {
		student.Mobile = *req.Mobile
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.GuardianMobile != nil {
		student.GuardianMobile = *req.GuardianMobile
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ChangeStudentStatus moves a student through the enrollment lifecycle
func (s *StudentService) ChangeStudentStatus(ctx context.Context, id int64, status models.Status) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.StudentTransitions, student.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.studentRepo.UpdateStatus(ctx, id, status)
}

// MarkAttendance records one day's attendance for a course
func (s *StudentService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest) error {
	if len(req.Entries) == 0 {
		return apperrors.NewBadRequestError("attendance entries are required")
	}
	return s.studentRepo.MarkAttendance(ctx, req.CourseID, req.Date, req.Entries)
}

// AttendanceSummary reports a student's overall attendance ratio
func (s *StudentService) AttendanceSummary(ctx context.Context, studentID int64) (*dto.AttendanceSummaryResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	present, total, err := s.studentRepo.AttendanceSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceSummaryResponse{
		StudentID:  studentID,
		Present:    present,
		Total:      total,
		Percentage: models.AttendancePercentage(present, total),
	}, nil
}

// ReportDiscipline opens a discipline case against a student
func (s *StudentService) ReportDiscipline(ctx context.Context, req dto.CreateDisciplineRequest) (*models.DisciplineRecord, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	record := &models.DisciplineRecord{
		StudentID:   req.StudentID,
		Severity:    req.Severity,
		Status:      models.DisciplineOpen,
		Description: req.Description,
		ReportedOn:  time.Now(),
	}
	if err := s.studentRepo.CreateDiscipline(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ResolveDiscipline moves a discipline case to a new status
func (s *StudentService) ResolveDiscipline(ctx context.Context, id int64, status models.Status, action string) error {
	record, err := s.studentRepo.GetDisciplineByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.DisciplineTransitions, record.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.studentRepo.UpdateDisciplineStatus(ctx, id, status, action)
}

// Performance aggregates a student's published results into per-semester
// SGPA and an overall CGPA
func (s *StudentService) Performance(ctx context.Context, studentID int64) (*dto.PerformanceResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results, semesterOf, err := s.examRepo.GetPublishedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	bySemester := make(map[int64][]models.ExamResult)
	for _, res := range results {
		semID := semesterOf[res.ID]
		bySemester[semID] = append(bySemester[semID], *res)
	}

	semesterIDs := make([]int64, 0, len(bySemester))
	for id := range bySemester {
		semesterIDs = append(semesterIDs, id)
	}
	sort.Slice(semesterIDs, func(i, j int) bool { return semesterIDs[i] < semesterIDs[j] })

	var all []models.ExamResult
	semesters := make([]dto.SemesterPerformance, 0, len(semesterIDs))
	for _, semID := range semesterIDs {
		chunk := bySemester[semID]
		all = append(all, chunk...)

		name := ""
		if semester, err := s.yearRepo.GetSemesterByID(ctx, semID); err == nil {
			name = semester.Name
		}
		semesters = append(semesters, dto.SemesterPerformance{
			SemesterID:   semID,
			SemesterName: name,
			Courses:      len(chunk),
			SGPA:         models.MeanGradePoint(chunk),
		})
	}

	return &dto.PerformanceResponse{
		StudentID:          studentID,
		RegistrationNumber: student.RegistrationNumber,
		Semesters:          semesters,
		CGPA:               models.MeanGradePoint(all),
	}, nil
}
