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

// FacultyRepository handles database operations for faculty members
type FacultyRepository struct {
	db *pgxpool.Pool
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = `f.id, f.user_id, f.employee_code, f.department_id, f.designation, f.joining_date, f.status,
	u.id, u.email, u.first_name, u.last_name, u.role_type, u.is_active`

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var f models.Faculty
	var u models.User
	err := row.Scan(&f.ID, &f.UserID, &f.EmployeeCode, &f.DepartmentID, &f.Designation, &f.JoiningDate, &f.Status,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive)
	if err != nil {
		return nil, err
	}
	f.User = &u
	return &f, nil
}

// CreateTx inserts a faculty row inside an existing transaction. The user
// account must already exist.
func (r *FacultyRepository) CreateTx(ctx context.Context, tx pgx.Tx, f *models.Faculty) error {
	query := `
		INSERT INTO faculty_members (user_id, employee_code, department_id, designation, joining_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		f.UserID, f.EmployeeCode, f.DepartmentID, f.Designation, f.JoiningDate, f.Status,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("error creating faculty member: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty member with the account row joined in
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty_members f JOIN users u ON u.id = f.user_id WHERE f.id = $1`, id)

	faculty, err := scanFaculty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty member: %w", err)
	}
	return faculty, nil
}

// GetByUserID retrieves the faculty record owned by a user account
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Faculty, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty_members f JOIN users u ON u.id = f.user_id WHERE f.user_id = $1`, userID)

	faculty, err := scanFaculty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty member: %w", err)
	}
	return faculty, nil
}

// GetByDepartment lists the faculty of a department
func (r *FacultyRepository) GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Faculty, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+facultyColumns+` FROM faculty_members f JOIN users u ON u.id = f.user_id
		 WHERE f.department_id = $1 ORDER BY f.employee_code`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Faculty
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, faculty)
	}
	return members, rows.Err()
}

// Update updates mutable faculty fields
func (r *FacultyRepository) Update(ctx context.Context, f *models.Faculty) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE faculty_members SET department_id = $1, designation = $2 WHERE id = $3`,
		f.DepartmentID, f.Designation, f.ID)
	if err != nil {
		return fmt.Errorf("error updating faculty member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// UpdateStatus moves a faculty member to a new employment status
func (r *FacultyRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE faculty_members SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating faculty status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}
