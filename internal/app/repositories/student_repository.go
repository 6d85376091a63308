package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// StudentRepository handles database operations for students, attendance and
// discipline records
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentColumns = `s.id, s.user_id, s.registration_number, s.program_id, s.department_id, s.batch_id,
	s.current_semester, s.admission_date, s.date_of_birth, s.gender, s.mobile,
	s.guardian_name, s.guardian_mobile, s.status, s.active,
	u.id, u.email, u.first_name, u.last_name, u.role_type, u.is_active`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var u models.User
	err := row.Scan(&s.ID, &s.UserID, &s.RegistrationNumber, &s.ProgramID, &s.DepartmentID, &s.BatchID,
		&s.CurrentSemester, &s.AdmissionDate, &s.DateOfBirth, &s.Gender, &s.Mobile,
		&s.GuardianName, &s.GuardianMobile, &s.Status, &s.Active,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive)
	if err != nil {
		return nil, err
	}
	s.User = &u
	return &s, nil
}

// CreateTx inserts a student row inside an existing transaction. The user
// account must already exist.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, s *models.Student) error {
	query := `
		INSERT INTO students (user_id, registration_number, program_id, department_id, batch_id,
			current_semester, admission_date, date_of_birth, gender, mobile,
			guardian_name, guardian_mobile, status, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		s.UserID, s.RegistrationNumber, s.ProgramID, s.DepartmentID, s.BatchID,
		s.CurrentSemester, s.AdmissionDate, s.DateOfBirth, s.Gender, s.Mobile,
		s.GuardianName, s.GuardianMobile, s.Status,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student with the account row joined in
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students s JOIN users u ON u.id = s.user_id WHERE s.id = $1`, id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByRegistrationNumber retrieves a student by registration number
func (r *StudentRepository) GetByRegistrationNumber(ctx context.Context, reg string) (*models.Student, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students s JOIN users u ON u.id = s.user_id WHERE s.registration_number = $1`, reg)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByUserID retrieves the student record owned by a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students s JOIN users u ON u.id = s.user_id WHERE s.user_id = $1`, userID)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// List retrieves students matching the filter, paginated
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	where := squirrel.And{squirrel.Eq{"s.active": true}}
	if filter.ProgramID > 0 {
		where = append(where, squirrel.Eq{"s.program_id": filter.ProgramID})
	}
	if filter.DepartmentID > 0 {
		where = append(where, squirrel.Eq{"s.department_id": filter.DepartmentID})
	}
	if filter.BatchID > 0 {
		where = append(where, squirrel.Eq{"s.batch_id": filter.BatchID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"s.status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
			squirrel.ILike{"s.registration_number": pattern},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building student count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	querySQL, queryArgs, err := r.sb.Select(studentColumns).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(where).
		OrderBy("s.registration_number").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}

// GetIDsByBatch lists the enrolled student IDs of a batch, ordered by
// registration number. Seating and bulk wizards rely on the ordering.
func (r *StudentRepository) GetIDsByBatch(ctx context.Context, batchID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM students
		WHERE batch_id = $1 AND status = $2 AND active = TRUE
		ORDER BY registration_number`, batchID, models.StudentEnrolled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update updates mutable student fields
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET date_of_birth = $1, gender = $2, mobile = $3, guardian_name = $4, guardian_mobile = $5
		WHERE id = $6`,
		s.DateOfBirth, s.Gender, s.Mobile, s.GuardianName, s.GuardianMobile, s.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStatus moves a student to a new lifecycle status
func (r *StudentRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating student status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateSemester sets a student's current semester
func (r *StudentRepository) UpdateSemester(ctx context.Context, id int64, semester int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET current_semester = $1 WHERE id = $2`, semester, id)
	if err != nil {
		return fmt.Errorf("error updating student semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// RegistrationExists checks whether a registration number is taken
func (r *StudentRepository) RegistrationExists(ctx context.Context, reg string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE registration_number = $1)`, reg).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking registration number: %w", err)
	}
	return exists, nil
}

// MarkAttendance upserts one day's attendance rows for a course
func (r *StudentRepository) MarkAttendance(ctx context.Context, courseID int64, date time.Time, entries []dto.AttendanceEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attendance_records (student_id, course_id, date, present, remarks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, course_id, date)
		DO UPDATE SET present = EXCLUDED.present, remarks = EXCLUDED.remarks
	`

	for _, e := range entries {
		if _, err := tx.Exec(ctx, query, e.StudentID, courseID, date, e.Present, e.Remarks); err != nil {
			return fmt.Errorf("error recording attendance: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// AttendanceSummary counts present/total days for a student across all
// courses of their current term
func (r *StudentRepository) AttendanceSummary(ctx context.Context, studentID int64) (present, total int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE present), COUNT(*)
		FROM attendance_records WHERE student_id = $1`, studentID).
		Scan(&present, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("error summarizing attendance: %w", err)
	}
	return present, total, nil
}

// CreateDiscipline opens a discipline case
func (r *StudentRepository) CreateDiscipline(ctx context.Context, d *models.DisciplineRecord) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO discipline_records (student_id, severity, status, description, reported_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		d.StudentID, d.Severity, d.Status, d.Description, d.ReportedOn).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("error creating discipline record: %w", err)
	}
	return nil
}

// GetDisciplineByID retrieves a discipline case by ID
func (r *StudentRepository) GetDisciplineByID(ctx context.Context, id int64) (*models.DisciplineRecord, error) {
	var d models.DisciplineRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, severity, status, description, reported_on, action_taken
		FROM discipline_records WHERE id = $1`, id).
		Scan(&d.ID, &d.StudentID, &d.Severity, &d.Status, &d.Description, &d.ReportedOn, &d.ActionTaken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("discipline record not found")
		}
		return nil, fmt.Errorf("error retrieving discipline record: %w", err)
	}
	return &d, nil
}

// UpdateDisciplineStatus moves a discipline case to a new status
func (r *StudentRepository) UpdateDisciplineStatus(ctx context.Context, id int64, status models.Status, action string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE discipline_records SET status = $1, action_taken = $2 WHERE id = $3`,
		status, action, id)
	if err != nil {
		return fmt.Errorf("error updating discipline record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("discipline record not found")
	}
	return nil
}

// HasBlockingDiscipline reports whether a student has an open major or
// critical case
func (r *StudentRepository) HasBlockingDiscipline(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM discipline_records
			WHERE student_id = $1 AND severity IN ($2, $3) AND status != $4)`,
		studentID, models.SeverityMajor, models.SeverityCritical, models.DisciplineClosed).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking discipline records: %w", err)
	}
	return exists, nil
}
