package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// TimetableRepository handles database operations for timetable entries
type TimetableRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTimetableRepository creates a new timetable repository
func NewTimetableRepository(db *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const timetableColumns = `id, course_id, faculty_id, classroom_id, batch_id, semester_id,
	day, start_hour, end_hour, active`

func scanTimetableEntry(row pgx.Row) (*models.TimetableEntry, error) {
	var t models.TimetableEntry
	err := row.Scan(&t.ID, &t.CourseID, &t.FacultyID, &t.ClassroomID, &t.BatchID, &t.SemesterID,
		&t.Day, &t.StartHour, &t.EndHour, &t.Active)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new timetable entry
func (r *TimetableRepository) Create(ctx context.Context, t *models.TimetableEntry) error {
	query := `
		INSERT INTO timetable_entries (course_id, faculty_id, classroom_id, batch_id, semester_id,
			day, start_hour, end_hour, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		t.CourseID, t.FacultyID, t.ClassroomID, t.BatchID, t.SemesterID,
		t.Day, t.StartHour, t.EndHour,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("error creating timetable entry: %w", err)
	}
	return nil
}

// GetByID retrieves a timetable entry by ID
func (r *TimetableRepository) GetByID(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+timetableColumns+` FROM timetable_entries WHERE id = $1`, id)

	entry, err := scanTimetableEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTimetableNotFound
		}
		return nil, fmt.Errorf("error retrieving timetable entry: %w", err)
	}
	return entry, nil
}

// List retrieves active entries matching the filter, ordered by day and time
func (r *TimetableRepository) List(ctx context.Context, filter dto.TimetableFilter) ([]*models.TimetableEntry, error) {
	where := squirrel.And{squirrel.Eq{"active": true}}
	if filter.BatchID > 0 {
		where = append(where, squirrel.Eq{"batch_id": filter.BatchID})
	}
	if filter.FacultyID > 0 {
		where = append(where, squirrel.Eq{"faculty_id": filter.FacultyID})
	}
	if filter.ClassroomID > 0 {
		where = append(where, squirrel.Eq{"classroom_id": filter.ClassroomID})
	}
	if filter.SemesterID > 0 {
		where = append(where, squirrel.Eq{"semester_id": filter.SemesterID})
	}
	if filter.Day != nil {
		where = append(where, squirrel.Eq{"day": *filter.Day})
	}

	querySQL, args, err := r.sb.Select(timetableColumns).
		From("timetable_entries").
		Where(where).
		OrderBy("day, start_hour").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building timetable list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimetableEntries(rows)
}

// GetByFacultyDay lists a faculty member's active slots on one day,
// excluding one entry. Conflict checks pass the entry being moved so it does
// not collide with itself.
func (r *TimetableRepository) GetByFacultyDay(ctx context.Context, facultyID int64, day int, excludeID int64) ([]*models.TimetableEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timetableColumns+` FROM timetable_entries
		 WHERE faculty_id = $1 AND day = $2 AND id != $3 AND active = TRUE`,
		facultyID, day, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimetableEntries(rows)
}

// GetByClassroomDay lists a classroom's active slots on one day, excluding
// one entry
func (r *TimetableRepository) GetByClassroomDay(ctx context.Context, classroomID int64, day int, excludeID int64) ([]*models.TimetableEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timetableColumns+` FROM timetable_entries
		 WHERE classroom_id = $1 AND day = $2 AND id != $3 AND active = TRUE`,
		classroomID, day, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimetableEntries(rows)
}

func collectTimetableEntries(rows pgx.Rows) ([]*models.TimetableEntry, error) {
	var entries []*models.TimetableEntry
	for rows.Next() {
		entry, err := scanTimetableEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Update moves an existing entry
func (r *TimetableRepository) Update(ctx context.Context, t *models.TimetableEntry) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE timetable_entries
		SET faculty_id = $1, classroom_id = $2, day = $3, start_hour = $4, end_hour = $5
		WHERE id = $6`,
		t.FacultyID, t.ClassroomID, t.Day, t.StartHour, t.EndHour, t.ID)
	if err != nil {
		return fmt.Errorf("error updating timetable entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableNotFound
	}
	return nil
}

// Delete deactivates a timetable entry
func (r *TimetableRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE timetable_entries SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting timetable entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableNotFound
	}
	return nil
}

// WeeklyLoad sums a faculty member's active slot count and hours
func (r *TimetableRepository) WeeklyLoad(ctx context.Context, facultyID int64) (slots int, hours float64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(end_hour - start_hour), 0)
		FROM timetable_entries WHERE faculty_id = $1 AND active = TRUE`, facultyID).
		Scan(&slots, &hours)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing weekly load: %w", err)
	}
	return slots, hours, nil
}
