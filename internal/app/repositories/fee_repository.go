package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// FeeRepository handles database operations for fee structures, payments,
// discounts and reminders
type FeeRepository struct {
	db *pgxpool.Pool
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{db: db}
}

// CreateStructure inserts a fee structure with its lines in one transaction
func (r *FeeRepository) CreateStructure(ctx context.Context, s *models.FeeStructure) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO fee_structures (name, code, program_id, batch_id, semester_id, academic_year_id,
			total_amount, due_date, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		s.Name, s.Code, s.ProgramID, s.BatchID, s.SemesterID, s.AcademicYearID,
		s.TotalAmount, s.DueDate,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating fee structure: %w", err)
	}

	for i := range s.Lines {
		s.Lines[i].FeeStructureID = s.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO fee_lines (fee_structure_id, head, amount)
			VALUES ($1, $2, $3) RETURNING id`,
			s.ID, s.Lines[i].Head, s.Lines[i].Amount).Scan(&s.Lines[i].ID)
		if err != nil {
			return fmt.Errorf("error creating fee line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetStructureByID retrieves a fee structure with its lines
func (r *FeeRepository) GetStructureByID(ctx context.Context, id int64) (*models.FeeStructure, error) {
	var s models.FeeStructure
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, program_id, batch_id, semester_id, academic_year_id, total_amount, due_date, active
		FROM fee_structures WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Code, &s.ProgramID, &s.BatchID, &s.SemesterID, &s.AcademicYearID,
			&s.TotalAmount, &s.DueDate, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeeStructureNotFound
		}
		return nil, fmt.Errorf("error retrieving fee structure: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, fee_structure_id, head, amount FROM fee_lines WHERE fee_structure_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.FeeLine
		if err := rows.Scan(&l.ID, &l.FeeStructureID, &l.Head, &l.Amount); err != nil {
			return nil, err
		}
		s.Lines = append(s.Lines, l)
	}
	return &s, rows.Err()
}

// GetStructuresByBatch lists the active structures of a batch
func (r *FeeRepository) GetStructuresByBatch(ctx context.Context, batchID int64) ([]*models.FeeStructure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, program_id, batch_id, semester_id, academic_year_id, total_amount, due_date, active
		FROM fee_structures WHERE batch_id = $1 AND active = TRUE ORDER BY semester_id`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		var s models.FeeStructure
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.ProgramID, &s.BatchID, &s.SemesterID,
			&s.AcademicYearID, &s.TotalAmount, &s.DueDate, &s.Active); err != nil {
			return nil, err
		}
		structures = append(structures, &s)
	}
	return structures, rows.Err()
}

// CreatePayment inserts a fee payment
func (r *FeeRepository) CreatePayment(ctx context.Context, p *models.FeePayment) error {
	query := `
		INSERT INTO fee_payments (receipt_number, student_id, fee_structure_id, amount, late_fee,
			discount_amount, total_amount, payment_date, payment_mode, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		p.ReceiptNumber, p.StudentID, p.FeeStructureID, p.Amount, p.LateFee,
		p.DiscountAmount, p.TotalAmount, p.PaymentDate, p.PaymentMode, p.Reference, p.Status,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("error creating fee payment: %w", err)
	}
	return nil
}

// GetPaymentByID retrieves a payment by ID
func (r *FeeRepository) GetPaymentByID(ctx context.Context, id int64) (*models.FeePayment, error) {
	var p models.FeePayment
	err := r.db.QueryRow(ctx, `
		SELECT id, receipt_number, student_id, fee_structure_id, amount, late_fee,
			discount_amount, total_amount, payment_date, payment_mode, reference, status
		FROM fee_payments WHERE id = $1`, id).
		Scan(&p.ID, &p.ReceiptNumber, &p.StudentID, &p.FeeStructureID, &p.Amount, &p.LateFee,
			&p.DiscountAmount, &p.TotalAmount, &p.PaymentDate, &p.PaymentMode, &p.Reference, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving fee payment: %w", err)
	}
	return &p, nil
}

// GetPaymentsByStudent lists a student's payments, newest first
func (r *FeeRepository) GetPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, receipt_number, student_id, fee_structure_id, amount, late_fee,
			discount_amount, total_amount, payment_date, payment_mode, reference, status
		FROM fee_payments WHERE student_id = $1 ORDER BY payment_date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		var p models.FeePayment
		if err := rows.Scan(&p.ID, &p.ReceiptNumber, &p.StudentID, &p.FeeStructureID, &p.Amount, &p.LateFee,
			&p.DiscountAmount, &p.TotalAmount, &p.PaymentDate, &p.PaymentMode, &p.Reference, &p.Status); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// UpdatePaymentStatus moves a payment to a new status
func (r *FeeRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE fee_payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// ConfirmedPaid sums a student's confirmed payment totals against a structure
func (r *FeeRepository) ConfirmedPaid(ctx context.Context, studentID, structureID int64) (float64, error) {
	var paid float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM fee_payments
		WHERE student_id = $1 AND fee_structure_id = $2 AND status = $3`,
		studentID, structureID, models.PaymentConfirmed).Scan(&paid)
	if err != nil {
		return 0, fmt.Errorf("error summing payments: %w", err)
	}
	return paid, nil
}

// DiscountedTotal sums the discounts granted to a student for a structure
func (r *FeeRepository) DiscountedTotal(ctx context.Context, studentID, structureID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(applicable_amount), 0) FROM discount_applications
		WHERE student_id = $1 AND fee_structure_id = $2`,
		studentID, structureID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing discounts: %w", err)
	}
	return total, nil
}

// CreateDiscount inserts a new discount scheme
func (r *FeeRepository) CreateDiscount(ctx context.Context, d *models.FeeDiscount) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO fee_discounts (name, code, method, percentage, amount, active)
		VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id`,
		d.Name, d.Code, d.Method, d.Percentage, d.Amount).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("error creating fee discount: %w", err)
	}
	return nil
}

// GetDiscountByID retrieves a discount scheme by ID
func (r *FeeRepository) GetDiscountByID(ctx context.Context, id int64) (*models.FeeDiscount, error) {
	var d models.FeeDiscount
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, method, percentage, amount, active FROM fee_discounts WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Code, &d.Method, &d.Percentage, &d.Amount, &d.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("error retrieving fee discount: %w", err)
	}
	return &d, nil
}

// CreateDiscountApplication grants a discount to a student
func (r *FeeRepository) CreateDiscountApplication(ctx context.Context, a *models.DiscountApplication) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO discount_applications (student_id, fee_discount_id, fee_structure_id, applicable_amount, granted_on)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.StudentID, a.FeeDiscountID, a.FeeStructureID, a.ApplicableAmount, a.GrantedOn).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error creating discount application: %w", err)
	}
	return nil
}

// CreateReminder records a sent fee reminder
func (r *FeeRepository) CreateReminder(ctx context.Context, rem *models.FeeReminder) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO fee_reminders (student_id, fee_structure_id, due_amount, sent_at, channel)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rem.StudentID, rem.FeeStructureID, rem.DueAmount, rem.SentAt, rem.Channel).Scan(&rem.ID)
	if err != nil {
		return fmt.Errorf("error creating fee reminder: %w", err)
	}
	return nil
}

// RemindedRecently checks whether a reminder for this student and structure
// went out within the window. The sweep uses it to avoid spamming.
func (r *FeeRepository) RemindedRecently(ctx context.Context, studentID, structureID int64, since time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM fee_reminders
			WHERE student_id = $1 AND fee_structure_id = $2 AND sent_at > $3)`,
		studentID, structureID, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking recent reminders: %w", err)
	}
	return exists, nil
}

// StructuresPastDue lists active structures whose due date has passed
func (r *FeeRepository) StructuresPastDue(ctx context.Context, asOf time.Time) ([]*models.FeeStructure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, program_id, batch_id, semester_id, academic_year_id, total_amount, due_date, active
		FROM fee_structures WHERE active = TRUE AND due_date IS NOT NULL AND due_date < $1`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		var s models.FeeStructure
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.ProgramID, &s.BatchID, &s.SemesterID,
			&s.AcademicYearID, &s.TotalAmount, &s.DueDate, &s.Active); err != nil {
			return nil, err
		}
		structures = append(structures, &s)
	}
	return structures, rows.Err()
}
