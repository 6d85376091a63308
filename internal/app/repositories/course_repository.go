package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, name, code, subject_id, program_id, department_id, batch_id, semester_id,
	academic_year_id, faculty_id, max_marks, passing_marks, internal_max, external_max, active`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.SubjectID, &c.ProgramID, &c.DepartmentID,
		&c.BatchID, &c.SemesterID, &c.AcademicYearID, &c.FacultyID,
		&c.MaxMarks, &c.PassingMarks, &c.InternalMax, &c.ExternalMax, &c.Active)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	query := `
		INSERT INTO courses (name, code, subject_id, program_id, department_id, batch_id,
			semester_id, academic_year_id, faculty_id, max_marks, passing_marks, internal_max, external_max, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		c.Name, c.Code, c.SubjectID, c.ProgramID, c.DepartmentID, c.BatchID,
		c.SemesterID, c.AcademicYearID, c.FacultyID,
		c.MaxMarks, c.PassingMarks, c.InternalMax, c.ExternalMax,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetByBatchSemester lists the active courses of a batch in one semester
func (r *CourseRepository) GetByBatchSemester(ctx context.Context, batchID, semesterID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE batch_id = $1 AND semester_id = $2 AND active = TRUE ORDER BY code`,
		batchID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

// GetByFaculty lists the active courses taught by a faculty member
func (r *CourseRepository) GetByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE faculty_id = $1 AND active = TRUE ORDER BY code`,
		facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// CodeExists checks course code uniqueness
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course code: %w", err)
	}
	return exists, nil
}
