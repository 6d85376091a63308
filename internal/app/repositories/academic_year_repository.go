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

// AcademicYearRepository handles database operations for academic years and
// their semesters
type AcademicYearRepository struct {
	db *pgxpool.Pool
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Create inserts a new academic year
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (name, code, start_date, end_date, is_current, status, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		year.Name, year.Code, year.StartDate, year.EndDate, year.IsCurrent, year.Status, year.Description,
	).Scan(&year.ID)
	if err != nil {
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

const academicYearColumns = `id, name, code, start_date, end_date, is_current, status, description, active`

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var y models.AcademicYear
	err := row.Scan(&y.ID, &y.Name, &y.Code, &y.StartDate, &y.EndDate,
		&y.IsCurrent, &y.Status, &y.Description, &y.Active)
	if err != nil {
		return nil, err
	}
	return &y, nil
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE id = $1`, id)

	year, err := scanAcademicYear(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

// GetCurrent retrieves the academic year flagged as current
func (r *AcademicYearRepository) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE is_current = TRUE AND active = TRUE`)

	year, err := scanAcademicYear(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving current academic year: %w", err)
	}
	return year, nil
}

// GetAll retrieves all academic years, newest first
func (r *AcademicYearRepository) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE active = TRUE ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// CodeExists checks whether a year code is already used by another record
func (r *AcademicYearRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM academic_years WHERE code = $1 AND id != $2)`,
		code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking year code: %w", err)
	}
	return exists, nil
}

// Update updates the mutable fields of an academic year
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE academic_years
		SET name = $1, start_date = $2, end_date = $3, description = $4
		WHERE id = $5`,
		year.Name, year.StartDate, year.EndDate, year.Description, year.ID)
	if err != nil {
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// UpdateStatus moves a year to a new lifecycle status
func (r *AcademicYearRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE academic_years SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating academic year status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// SetCurrent flags one year as current and clears the flag everywhere else,
// in a single transaction. Keeps the single-current invariant.
func (r *AcademicYearRepository) SetCurrent(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE academic_years SET is_current = FALSE WHERE is_current = TRUE`); err != nil {
		return fmt.Errorf("error clearing current year flag: %w", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE academic_years SET is_current = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error setting current year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return tx.Commit(ctx)
}

// CreateSemester adds a semester to an academic year
func (r *AcademicYearRepository) CreateSemester(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (academic_year_id, number, name, start_date, end_date, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		semester.AcademicYearID, semester.Number, semester.Name, semester.StartDate, semester.EndDate,
	).Scan(&semester.ID)
	if err != nil {
		return fmt.Errorf("error creating semester: %w", err)
	}
	return nil
}

// GetSemesterByID retrieves a semester by ID
func (r *AcademicYearRepository) GetSemesterByID(ctx context.Context, id int64) (*models.Semester, error) {
	var s models.Semester
	err := r.db.QueryRow(ctx, `
		SELECT id, academic_year_id, number, name, start_date, end_date, active
		FROM semesters WHERE id = $1`, id).
		Scan(&s.ID, &s.AcademicYearID, &s.Number, &s.Name, &s.StartDate, &s.EndDate, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("semester not found")
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}
	return &s, nil
}

// GetSemestersByYear lists the semesters of an academic year in order
func (r *AcademicYearRepository) GetSemestersByYear(ctx context.Context, yearID int64) ([]*models.Semester, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, academic_year_id, number, name, start_date, end_date, active
		FROM semesters WHERE academic_year_id = $1 ORDER BY number`, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var s models.Semester
		if err := rows.Scan(&s.ID, &s.AcademicYearID, &s.Number, &s.Name, &s.StartDate, &s.EndDate, &s.Active); err != nil {
			return nil, err
		}
		semesters = append(semesters, &s)
	}
	return semesters, rows.Err()
}
