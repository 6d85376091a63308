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

// HallTicketRepository handles database operations for hall tickets, ID
// cards and seat allocations
type HallTicketRepository struct {
	db *pgxpool.Pool
}

// NewHallTicketRepository creates a new hall ticket repository
func NewHallTicketRepository(db *pgxpool.Pool) *HallTicketRepository {
	return &HallTicketRepository{db: db}
}

// Create inserts a new hall ticket
func (r *HallTicketRepository) Create(ctx context.Context, t *models.HallTicket) error {
	query := `
		INSERT INTO hall_tickets (ticket_number, examination_id, student_id, status, generated_at, qr_payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		t.TicketNumber, t.ExaminationID, t.StudentID, t.Status, t.GeneratedAt, t.QRPayload,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("error creating hall ticket: %w", err)
	}
	return nil
}

const hallTicketColumns = `id, ticket_number, examination_id, student_id, status, generated_at, download_count, qr_payload`

func scanHallTicket(row pgx.Row) (*models.HallTicket, error) {
	var t models.HallTicket
	err := row.Scan(&t.ID, &t.TicketNumber, &t.ExaminationID, &t.StudentID, &t.Status, &t.GeneratedAt, &t.DownloadCount, &t.QRPayload)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a hall ticket by ID
func (r *HallTicketRepository) GetByID(ctx context.Context, id int64) (*models.HallTicket, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+hallTicketColumns+` FROM hall_tickets WHERE id = $1`, id)

	ticket, err := scanHallTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHallTicketNotFound
		}
		return nil, fmt.Errorf("error retrieving hall ticket: %w", err)
	}
	return ticket, nil
}

// GetByNumber retrieves a hall ticket by ticket number
func (r *HallTicketRepository) GetByNumber(ctx context.Context, number string) (*models.HallTicket, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+hallTicketColumns+` FROM hall_tickets WHERE ticket_number = $1`, number)

	ticket, err := scanHallTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHallTicketNotFound
		}
		return nil, fmt.Errorf("error retrieving hall ticket: %w", err)
	}
	return ticket, nil
}

// Exists checks whether a live ticket already exists for the student and
// examination
func (r *HallTicketRepository) Exists(ctx context.Context, examinationID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM hall_tickets
			WHERE examination_id = $1 AND student_id = $2 AND status != $3)`,
		examinationID, studentID, models.TicketCancelled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking hall ticket existence: %w", err)
	}
	return exists, nil
}

// GetByExamination lists the tickets of an examination
func (r *HallTicketRepository) GetByExamination(ctx context.Context, examinationID int64) ([]*models.HallTicket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+hallTicketColumns+` FROM hall_tickets WHERE examination_id = $1 ORDER BY ticket_number`,
		examinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.HallTicket
	for rows.Next() {
		ticket, err := scanHallTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// UpdateStatus moves a hall ticket to a new status
func (r *HallTicketRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE hall_tickets SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating hall ticket status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHallTicketNotFound
	}
	return nil
}

// RecordDownload bumps the download counter and moves the ticket to the
// given status in one statement
func (r *HallTicketRepository) RecordDownload(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE hall_tickets SET download_count = download_count + 1, status = $1 WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error recording hall ticket download: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHallTicketNotFound
	}
	return nil
}

// CreateIDCard inserts a new student ID card
func (r *HallTicketRepository) CreateIDCard(ctx context.Context, c *models.StudentIDCard) error {
	query := `
		INSERT INTO student_id_cards (card_number, student_id, issued_on, valid_until, status, qr_payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		c.CardNumber, c.StudentID, c.IssuedOn, c.ValidUntil, c.Status, c.QRPayload,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("error creating ID card: %w", err)
	}
	return nil
}

// GetIDCardByNumber retrieves an ID card by card number
func (r *HallTicketRepository) GetIDCardByNumber(ctx context.Context, number string) (*models.StudentIDCard, error) {
	var c models.StudentIDCard
	err := r.db.QueryRow(ctx, `
		SELECT id, card_number, student_id, issued_on, valid_until, status, qr_payload
		FROM student_id_cards WHERE card_number = $1`, number).
		Scan(&c.ID, &c.CardNumber, &c.StudentID, &c.IssuedOn, &c.ValidUntil, &c.Status, &c.QRPayload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("ID card not found")
		}
		return nil, fmt.Errorf("error retrieving ID card: %w", err)
	}
	return &c, nil
}

// HasActiveIDCard checks whether a student holds an active card
func (r *HallTicketRepository) HasActiveIDCard(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM student_id_cards WHERE student_id = $1 AND status = $2)`,
		studentID, models.CardActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking ID card existence: %w", err)
	}
	return exists, nil
}

// UpdateIDCardStatus moves an ID card to a new status
func (r *HallTicketRepository) UpdateIDCardStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE student_id_cards SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating ID card status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("ID card not found")
	}
	return nil
}

// ReplaceSeating rewrites the seat allocations of an examination in one
// transaction. Regeneration is idempotent.
func (r *HallTicketRepository) ReplaceSeating(ctx context.Context, examinationID int64, allocations []models.SeatAllocation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM seat_allocations WHERE examination_id = $1`, examinationID); err != nil {
		return fmt.Errorf("error clearing seat allocations: %w", err)
	}

	query := `
		INSERT INTO seat_allocations (examination_id, student_id, room_label, seat_label)
		VALUES ($1, $2, $3, $4)
	`
	for _, a := range allocations {
		if _, err := tx.Exec(ctx, query, a.ExaminationID, a.StudentID, a.RoomLabel, a.SeatLabel); err != nil {
			return fmt.Errorf("error inserting seat allocation: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetSeating lists the seat allocations of an examination in room and seat
// order
func (r *HallTicketRepository) GetSeating(ctx context.Context, examinationID int64) ([]*models.SeatAllocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, examination_id, student_id, room_label, seat_label
		FROM seat_allocations WHERE examination_id = $1 ORDER BY room_label, seat_label`, examinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.SeatAllocation
	for rows.Next() {
		var a models.SeatAllocation
		if err := rows.Scan(&a.ID, &a.ExaminationID, &a.StudentID, &a.RoomLabel, &a.SeatLabel); err != nil {
			return nil, err
		}
		allocations = append(allocations, &a)
	}
	return allocations, rows.Err()
}
