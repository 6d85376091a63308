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

// HostelRepository handles database operations for hostels, rooms and
// allocations
type HostelRepository struct {
	db *pgxpool.Pool
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{db: db}
}

// CreateHostel inserts a residence building
func (r *HostelRepository) CreateHostel(ctx context.Context, h *models.Hostel) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO hostels (name, code, warden, capacity, active)
		VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
		h.Name, h.Code, h.Warden, h.Capacity).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("error creating hostel: %w", err)
	}
	return nil
}

// GetHostelByID retrieves a hostel by ID
func (r *HostelRepository) GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error) {
	var h models.Hostel
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, warden, capacity, active FROM hostels WHERE id = $1`, id).
		Scan(&h.ID, &h.Name, &h.Code, &h.Warden, &h.Capacity, &h.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("hostel not found")
		}
		return nil, fmt.Errorf("error retrieving hostel: %w", err)
	}
	return &h, nil
}

// CreateRoom adds a room to a hostel
func (r *HostelRepository) CreateRoom(ctx context.Context, room *models.HostelRoom) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO hostel_rooms (hostel_id, number, floor, capacity, occupied, active)
		VALUES ($1, $2, $3, $4, 0, TRUE) RETURNING id`,
		room.HostelID, room.Number, room.Floor, room.Capacity).Scan(&room.ID)
	if err != nil {
		return fmt.Errorf("error creating hostel room: %w", err)
	}
	return nil
}

// GetRoomByID retrieves a room by ID
func (r *HostelRepository) GetRoomByID(ctx context.Context, id int64) (*models.HostelRoom, error) {
	var room models.HostelRoom
	err := r.db.QueryRow(ctx, `
		SELECT id, hostel_id, number, floor, capacity, occupied, active
		FROM hostel_rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.HostelID, &room.Number, &room.Floor, &room.Capacity, &room.Occupied, &room.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHostelRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving hostel room: %w", err)
	}
	return &room, nil
}

// GetRoomsByHostel lists the rooms of a hostel
func (r *HostelRepository) GetRoomsByHostel(ctx context.Context, hostelID int64) ([]*models.HostelRoom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, hostel_id, number, floor, capacity, occupied, active
		FROM hostel_rooms WHERE hostel_id = $1 AND active = TRUE ORDER BY number`, hostelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.HostelRoom
	for rows.Next() {
		var room models.HostelRoom
		if err := rows.Scan(&room.ID, &room.HostelID, &room.Number, &room.Floor,
			&room.Capacity, &room.Occupied, &room.Active); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

// HasActiveAllocation checks whether a student already lives in a room
func (r *HostelRepository) HasActiveAllocation(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM hostel_allocations WHERE student_id = $1 AND status = $2)`,
		studentID, models.AllocationActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking hostel allocation: %w", err)
	}
	return exists, nil
}

// Allocate assigns a student to a room: bumps occupancy and inserts the
// allocation in one transaction. The conditional update enforces capacity.
func (r *HostelRepository) Allocate(ctx context.Context, a *models.HostelAllocation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE hostel_rooms SET occupied = occupied + 1
		WHERE id = $1 AND occupied < capacity AND active = TRUE`, a.RoomID)
	if err != nil {
		return fmt.Errorf("error reserving room place: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomFull
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO hostel_allocations (room_id, student_id, allocated_on, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		a.RoomID, a.StudentID, a.AllocatedOn, a.Status).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error creating hostel allocation: %w", err)
	}

	return tx.Commit(ctx)
}

// GetAllocationByID retrieves an allocation by ID
func (r *HostelRepository) GetAllocationByID(ctx context.Context, id int64) (*models.HostelAllocation, error) {
	var a models.HostelAllocation
	err := r.db.QueryRow(ctx, `
		SELECT id, room_id, student_id, allocated_on, vacated_on, status
		FROM hostel_allocations WHERE id = $1`, id).
		Scan(&a.ID, &a.RoomID, &a.StudentID, &a.AllocatedOn, &a.VacatedOn, &a.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("hostel allocation not found")
		}
		return nil, fmt.Errorf("error retrieving hostel allocation: %w", err)
	}
	return &a, nil
}

// Vacate closes an allocation and frees the room place in one transaction
func (r *HostelRepository) Vacate(ctx context.Context, allocationID int64, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var roomID int64
	err = tx.QueryRow(ctx, `
		UPDATE hostel_allocations SET status = $1, vacated_on = $2
		WHERE id = $3 AND status = $4
		RETURNING room_id`,
		models.AllocationVacated, at, allocationID, models.AllocationActive).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("hostel allocation not found")
		}
		return fmt.Errorf("error vacating allocation: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE hostel_rooms SET occupied = GREATEST(occupied - 1, 0) WHERE id = $1`, roomID); err != nil {
		return fmt.Errorf("error releasing room place: %w", err)
	}

	return tx.Commit(ctx)
}

// Occupancy reports total capacity and occupied places across active rooms
func (r *HostelRepository) Occupancy(ctx context.Context) (capacity, occupied int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(capacity), 0), COALESCE(SUM(occupied), 0)
		FROM hostel_rooms WHERE active = TRUE`).Scan(&capacity, &occupied)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing hostel occupancy: %w", err)
	}
	return capacity, occupied, nil
}
