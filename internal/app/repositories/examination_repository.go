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

// ExaminationRepository handles database operations for examinations,
// schedules, grade bands and results
type ExaminationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExaminationRepository creates a new examination repository
func NewExaminationRepository(db *pgxpool.Pool) *ExaminationRepository {
	return &ExaminationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const examColumns = `id, name, code, exam_type, academic_year_id, semester_id, start_date, end_date, status, active`

func scanExamination(row pgx.Row) (*models.Examination, error) {
	var e models.Examination
	err := row.Scan(&e.ID, &e.Name, &e.Code, &e.ExamType, &e.AcademicYearID, &e.SemesterID,
		&e.StartDate, &e.EndDate, &e.Status, &e.Active)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new examination
func (r *ExaminationRepository) Create(ctx context.Context, e *models.Examination) error {
	query := `
		INSERT INTO examinations (name, code, exam_type, academic_year_id, semester_id, start_date, end_date, status, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		e.Name, e.Code, e.ExamType, e.AcademicYearID, e.SemesterID, e.StartDate, e.EndDate, e.Status,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("error creating examination: %w", err)
	}
	return nil
}

// GetByID retrieves an examination by ID
func (r *ExaminationRepository) GetByID(ctx context.Context, id int64) (*models.Examination, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+examColumns+` FROM examinations WHERE id = $1`, id)

	exam, err := scanExamination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExaminationNotFound
		}
		return nil, fmt.Errorf("error retrieving examination: %w", err)
	}
	return exam, nil
}

// GetAll lists all active examinations, newest first
func (r *ExaminationRepository) GetAll(ctx context.Context) ([]*models.Examination, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+examColumns+` FROM examinations WHERE active = TRUE ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []*models.Examination
	for rows.Next() {
		exam, err := scanExamination(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

// UpdateStatus moves an examination to a new lifecycle status
func (r *ExaminationRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE examinations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating examination status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExaminationNotFound
	}
	return nil
}

// CreateSchedule adds one paper to an examination
func (r *ExaminationRepository) CreateSchedule(ctx context.Context, s *models.ExamSchedule) error {
	query := `
		INSERT INTO exam_schedules (examination_id, course_id, exam_date, start_hour, end_hour, classroom_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		s.ExaminationID, s.CourseID, s.ExamDate, s.StartHour, s.EndHour, s.ClassroomID,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating exam schedule: %w", err)
	}
	return nil
}

// GetSchedules lists the papers of an examination in date order
func (r *ExaminationRepository) GetSchedules(ctx context.Context, examinationID int64) ([]*models.ExamSchedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, examination_id, course_id, exam_date, start_hour, end_hour, classroom_id
		FROM exam_schedules WHERE examination_id = $1 ORDER BY exam_date, start_hour`, examinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.ExamSchedule
	for rows.Next() {
		var s models.ExamSchedule
		if err := rows.Scan(&s.ID, &s.ExaminationID, &s.CourseID, &s.ExamDate, &s.StartHour, &s.EndHour, &s.ClassroomID); err != nil {
			return nil, err
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

// GetGradeBands lists the active grade bands, highest first
func (r *ExaminationRepository) GetGradeBands(ctx context.Context) ([]models.GradeBand, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, grade, min_percent, max_percent, grade_point, active
		FROM grade_bands WHERE active = TRUE ORDER BY min_percent DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bands []models.GradeBand
	for rows.Next() {
		var b models.GradeBand
		if err := rows.Scan(&b.ID, &b.Grade, &b.MinPercent, &b.MaxPercent, &b.GradePoint, &b.Active); err != nil {
			return nil, err
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

// CreateGradeBand inserts a new grade band
func (r *ExaminationRepository) CreateGradeBand(ctx context.Context, b *models.GradeBand) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO grade_bands (grade, min_percent, max_percent, grade_point, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id`,
		b.Grade, b.MinPercent, b.MaxPercent, b.GradePoint).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("error creating grade band: %w", err)
	}
	return nil
}

const resultColumns = `id, examination_id, student_id, course_id, internal_marks, external_marks,
	absent, total_marks, percentage, grade, grade_point, passed, status`

func scanResult(row pgx.Row) (*models.ExamResult, error) {
	var res models.ExamResult
	err := row.Scan(&res.ID, &res.ExaminationID, &res.StudentID, &res.CourseID,
		&res.InternalMarks, &res.ExternalMarks, &res.Absent, &res.TotalMarks,
		&res.Percentage, &res.Grade, &res.GradePoint, &res.Passed, &res.Status)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateResult inserts a new result row
func (r *ExaminationRepository) CreateResult(ctx context.Context, res *models.ExamResult) error {
	query := `
		INSERT INTO exam_results (examination_id, student_id, course_id, internal_marks, external_marks,
			absent, total_marks, percentage, grade, grade_point, passed, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		res.ExaminationID, res.StudentID, res.CourseID, res.InternalMarks, res.ExternalMarks,
		res.Absent, res.TotalMarks, res.Percentage, res.Grade, res.GradePoint, res.Passed, res.Status,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("error creating exam result: %w", err)
	}
	return nil
}

// GetResultByID retrieves a result by ID
func (r *ExaminationRepository) GetResultByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM exam_results WHERE id = $1`, id)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, fmt.Errorf("error retrieving exam result: %w", err)
	}
	return result, nil
}

// ResultExists checks whether a result already exists for the student and
// course within an examination
func (r *ExaminationRepository) ResultExists(ctx context.Context, examinationID, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM exam_results
			WHERE examination_id = $1 AND student_id = $2 AND course_id = $3)`,
		examinationID, studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking result existence: %w", err)
	}
	return exists, nil
}

// ListResults retrieves the results of an examination matching the filter
func (r *ExaminationRepository) ListResults(ctx context.Context, examinationID int64, filter dto.ResultFilter) ([]*models.ExamResult, error) {
	where := squirrel.And{squirrel.Eq{"examination_id": examinationID}}
	if filter.StudentID > 0 {
		where = append(where, squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.CourseID > 0 {
		where = append(where, squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"status": filter.Status})
	}

	querySQL, args, err := r.sb.Select(resultColumns).
		From("exam_results").
		Where(where).
		OrderBy("student_id, course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building result list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectResults(rows)
}

// GetPublishedByStudent lists a student's published results joined with the
// course's semester, for performance aggregation
func (r *ExaminationRepository) GetPublishedByStudent(ctx context.Context, studentID int64) ([]*models.ExamResult, map[int64]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+qualifiedResultColumns+`, c.semester_id
		FROM exam_results er
		JOIN courses c ON c.id = er.course_id
		WHERE er.student_id = $1 AND er.status = $2
		ORDER BY c.semester_id, er.course_id`,
		studentID, models.ResultPublished)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var results []*models.ExamResult
	semesterOf := make(map[int64]int64)
	for rows.Next() {
		var res models.ExamResult
		var semesterID int64
		err := rows.Scan(&res.ID, &res.ExaminationID, &res.StudentID, &res.CourseID,
			&res.InternalMarks, &res.ExternalMarks, &res.Absent, &res.TotalMarks,
			&res.Percentage, &res.Grade, &res.GradePoint, &res.Passed, &res.Status, &semesterID)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, &res)
		semesterOf[res.ID] = semesterID
	}
	return results, semesterOf, rows.Err()
}

const qualifiedResultColumns = `er.id, er.examination_id, er.student_id, er.course_id, er.internal_marks, er.external_marks,
	er.absent, er.total_marks, er.percentage, er.grade, er.grade_point, er.passed, er.status`

func collectResults(rows pgx.Rows) ([]*models.ExamResult, error) {
	var results []*models.ExamResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// UpdateResult rewrites the marks and derived fields of a result
func (r *ExaminationRepository) UpdateResult(ctx context.Context, res *models.ExamResult) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE exam_results
		SET internal_marks = $1, external_marks = $2, absent = $3, total_marks = $4,
			percentage = $5, grade = $6, grade_point = $7, passed = $8, status = $9
		WHERE id = $10`,
		res.InternalMarks, res.ExternalMarks, res.Absent, res.TotalMarks,
		res.Percentage, res.Grade, res.GradePoint, res.Passed, res.Status, res.ID)
	if err != nil {
		return fmt.Errorf("error updating exam result: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// UpdateResultStatus moves a result to a new workflow status
func (r *ExaminationRepository) UpdateResultStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE exam_results SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating result status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// PublishVerified publishes every verified result of an examination and
// returns how many rows moved
func (r *ExaminationRepository) PublishVerified(ctx context.Context, examinationID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE exam_results SET status = $1 WHERE examination_id = $2 AND status = $3`,
		models.ResultPublished, examinationID, models.ResultVerified)
	if err != nil {
		return 0, fmt.Errorf("error publishing results: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// FailedCourseCount counts a student's published failed courses in one
// semester. Promotion uses this as the backlog count.
func (r *ExaminationRepository) FailedCourseCount(ctx context.Context, studentID, semesterID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM exam_results er
		JOIN courses c ON c.id = er.course_id
		WHERE er.student_id = $1 AND c.semester_id = $2 AND er.status = $3 AND er.passed = FALSE`,
		studentID, semesterID, models.ResultPublished).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting failed courses: %w", err)
	}
	return count, nil
}

// UpcomingExamCount counts active examinations starting after the given time
func (r *ExaminationRepository) UpcomingExamCount(ctx context.Context, after time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM examinations
		WHERE active = TRUE AND start_date > $1 AND status IN ($2, $3)`,
		after, models.ExamDraft, models.ExamScheduled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting upcoming examinations: %w", err)
	}
	return count, nil
}
