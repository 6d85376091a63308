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

// CatalogRepository handles database operations for the reference entities:
// departments, programs, batches, classrooms and subjects
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateDepartment inserts a new department
func (r *CatalogRepository) CreateDepartment(ctx context.Context, d *models.Department) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (name, code, active) VALUES ($1, $2, TRUE) RETURNING id`,
		d.Name, d.Code).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID
func (r *CatalogRepository) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	var d models.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, active FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Code, &d.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return &d, nil
}

// GetAllDepartments lists all active departments
func (r *CatalogRepository) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, code, active FROM departments WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Active); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// DepartmentCodeExists checks department name/code uniqueness
func (r *CatalogRepository) DepartmentCodeExists(ctx context.Context, name, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1 OR code = $2)`,
		name, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// CreateProgram inserts a new degree program
func (r *CatalogRepository) CreateProgram(ctx context.Context, p *models.Program) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO programs (name, code, department_id, duration_years, total_semesters, active)
		VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id`,
		p.Name, p.Code, p.DepartmentID, p.DurationYears, p.TotalSemesters).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}
	return nil
}

// GetProgramByID retrieves a program by ID
func (r *CatalogRepository) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	var p models.Program
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, department_id, duration_years, total_semesters, active
		FROM programs WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Code, &p.DepartmentID, &p.DurationYears, &p.TotalSemesters, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return &p, nil
}

// GetProgramsByDepartment lists the active programs of a department
func (r *CatalogRepository) GetProgramsByDepartment(ctx context.Context, departmentID int64) ([]*models.Program, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, department_id, duration_years, total_semesters, active
		FROM programs WHERE department_id = $1 AND active = TRUE ORDER BY name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.DepartmentID, &p.DurationYears, &p.TotalSemesters, &p.Active); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

// CreateBatch inserts a new intake cohort
func (r *CatalogRepository) CreateBatch(ctx context.Context, b *models.Batch) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO batches (name, code, program_id, start_year, end_year, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		b.Name, b.Code, b.ProgramID, b.StartYear, b.EndYear, b.Status).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("error creating batch: %w", err)
	}
	return nil
}

// GetBatchByID retrieves a batch by ID
func (r *CatalogRepository) GetBatchByID(ctx context.Context, id int64) (*models.Batch, error) {
	var b models.Batch
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, program_id, start_year, end_year, status
		FROM batches WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Code, &b.ProgramID, &b.StartYear, &b.EndYear, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}
	return &b, nil
}

// UpdateBatchStatus moves a batch to a new lifecycle status
func (r *CatalogRepository) UpdateBatchStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE batches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating batch status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// CreateClassroom inserts a new classroom
func (r *CatalogRepository) CreateClassroom(ctx context.Context, c *models.Classroom) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO classrooms (name, code, building, floor, capacity, active)
		VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id`,
		c.Name, c.Code, c.Building, c.Floor, c.Capacity).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("error creating classroom: %w", err)
	}
	return nil
}

// GetClassroomByID retrieves a classroom by ID
func (r *CatalogRepository) GetClassroomByID(ctx context.Context, id int64) (*models.Classroom, error) {
	var c models.Classroom
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, building, floor, capacity, active
		FROM classrooms WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.Building, &c.Floor, &c.Capacity, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("error retrieving classroom: %w", err)
	}
	return &c, nil
}

// GetAllClassrooms lists all active classrooms
func (r *CatalogRepository) GetAllClassrooms(ctx context.Context) ([]*models.Classroom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, building, floor, capacity, active
		FROM classrooms WHERE active = TRUE ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classrooms []*models.Classroom
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Building, &c.Floor, &c.Capacity, &c.Active); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, &c)
	}
	return classrooms, rows.Err()
}

// CreateSubject inserts a new subject
func (r *CatalogRepository) CreateSubject(ctx context.Context, s *models.Subject) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO subjects (name, code, credits, active)
		VALUES ($1, $2, $3, TRUE) RETURNING id`,
		s.Name, s.Code, s.Credits).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetSubjectByID retrieves a subject by ID
func (r *CatalogRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	var s models.Subject
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, credits, active FROM subjects WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Code, &s.Credits, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("subject not found")
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &s, nil
}
