package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
)

// DashboardRepository runs the aggregate queries behind the admin dashboard
type DashboardRepository struct {
	db *pgxpool.Pool
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Collect gathers all dashboard counters in one pass
func (r *DashboardRepository) Collect(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	var d dto.DashboardResponse

	query := `
		SELECT
			(SELECT COUNT(*) FROM students WHERE status = $1 AND active = TRUE),
			(SELECT COUNT(*) FROM faculty_members WHERE status = $2),
			(SELECT COUNT(*) FROM departments WHERE active = TRUE),
			(SELECT COUNT(*) FROM programs WHERE active = TRUE),
			(SELECT COUNT(*) FROM courses WHERE active = TRUE),
			(SELECT COUNT(*) FROM exam_results WHERE status IN ($3, $4)),
			(SELECT COALESCE(SUM(total_amount), 0) FROM fee_payments WHERE status = $5),
			(SELECT COUNT(*) FROM book_issues WHERE status = $6),
			(SELECT COUNT(*) FROM book_issues WHERE status = $6 AND due_date < $7),
			(SELECT COUNT(*) FROM discipline_records WHERE status != $8)
	`

	err := r.db.QueryRow(ctx, query,
		models.StudentEnrolled, models.FacultyActive,
		models.ResultSubmitted, models.ResultVerified,
		models.PaymentConfirmed,
		models.IssueActive, now,
		models.DisciplineClosed,
	).Scan(
		&d.Students, &d.Faculty, &d.Departments, &d.Programs, &d.ActiveCourses,
		&d.PendingResults, &d.FeeCollected, &d.BooksIssued, &d.OverdueBooks, &d.OpenDiscipline,
	)
	if err != nil {
		return nil, fmt.Errorf("error collecting dashboard counters: %w", err)
	}

	return &d, nil
}

// OutstandingFees sums (structure total - confirmed payments - discounts)
// across enrolled students mapped to active structures, floored at zero per
// student
func (r *DashboardRepository) OutstandingFees(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(GREATEST(due, 0)), 0) FROM (
			SELECT fs.total_amount
				- COALESCE((SELECT SUM(fp.total_amount) FROM fee_payments fp
					WHERE fp.student_id = s.id AND fp.fee_structure_id = fs.id AND fp.status = $1), 0)
				- COALESCE((SELECT SUM(da.applicable_amount) FROM discount_applications da
					WHERE da.student_id = s.id AND da.fee_structure_id = fs.id), 0) AS due
			FROM students s
			JOIN fee_structures fs ON fs.batch_id = s.batch_id AND fs.active = TRUE
			WHERE s.status = $2 AND s.active = TRUE
		) dues
	`

	var total float64
	err := r.db.QueryRow(ctx, query, models.PaymentConfirmed, models.StudentEnrolled).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error computing outstanding fees: %w", err)
	}
	return total, nil
}
