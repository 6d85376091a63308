package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sequence names for human-readable identifiers
const (
	SeqRegistration = "registration"
	SeqEmployee     = "employee"
	SeqHallTicket   = "hall_ticket"
	SeqReceipt      = "receipt"
	SeqIDCard       = "id_card"
)

// SequenceRepository hands out monotonically increasing numbers per named
// counter, backed by the 'sequences' table. The upsert makes first use and
// subsequent use the same statement.
type SequenceRepository struct {
	db *pgxpool.Pool
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next returns the next value of a named counter, starting at 1
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("error advancing sequence %s: %w", name, err)
	}
	return value, nil
}

// NextRegistrationNumber formats the next student registration number for
// the given admission year, e.g. "REG-2024-00042"
func (r *SequenceRepository) NextRegistrationNumber(ctx context.Context, year int) (string, error) {
	value, err := r.Next(ctx, fmt.Sprintf("%s_%d", SeqRegistration, year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REG-%d-%05d", year, value), nil
}

// NextEmployeeCode formats the next faculty employee code, e.g. "FAC-00017"
func (r *SequenceRepository) NextEmployeeCode(ctx context.Context) (string, error) {
	value, err := r.Next(ctx, SeqEmployee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("FAC-%05d", value), nil
}

// NextHallTicketNumber formats the next hall ticket number, e.g. "HT-00231"
func (r *SequenceRepository) NextHallTicketNumber(ctx context.Context) (string, error) {
	value, err := r.Next(ctx, SeqHallTicket)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HT-%05d", value), nil
}

// NextReceiptNumber formats the next payment receipt number, e.g. "RCPT-00412"
func (r *SequenceRepository) NextReceiptNumber(ctx context.Context) (string, error) {
	value, err := r.Next(ctx, SeqReceipt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RCPT-%05d", value), nil
}

// NextCardNumber formats the next ID card number, e.g. "CARD-00098"
func (r *SequenceRepository) NextCardNumber(ctx context.Context) (string, error) {
	value, err := r.Next(ctx, SeqIDCard)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CARD-%05d", value), nil
}
