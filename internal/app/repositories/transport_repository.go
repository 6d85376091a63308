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

// TransportRepository handles database operations for routes, stops and
// subscriptions
type TransportRepository struct {
	db *pgxpool.Pool
}

// NewTransportRepository creates a new transport repository
func NewTransportRepository(db *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{db: db}
}

// CreateRoute inserts a route with its stops in one transaction
func (r *TransportRepository) CreateRoute(ctx context.Context, route *models.TransportRoute) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO transport_routes (name, code, vehicle_number, driver_name, capacity, monthly_fee, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE) RETURNING id`,
		route.Name, route.Code, route.VehicleNumber, route.DriverName, route.Capacity, route.MonthlyFee).
		Scan(&route.ID)
	if err != nil {
		return fmt.Errorf("error creating transport route: %w", err)
	}

	for i := range route.Stops {
		route.Stops[i].RouteID = route.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO transport_stops (route_id, name, sequence, pickup_at)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			route.ID, route.Stops[i].Name, route.Stops[i].Sequence, route.Stops[i].PickupAt).
			Scan(&route.Stops[i].ID)
		if err != nil {
			return fmt.Errorf("error creating transport stop: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetRouteByID retrieves a route with its stops
func (r *TransportRepository) GetRouteByID(ctx context.Context, id int64) (*models.TransportRoute, error) {
	var route models.TransportRoute
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, vehicle_number, driver_name, capacity, monthly_fee, active
		FROM transport_routes WHERE id = $1`, id).
		Scan(&route.ID, &route.Name, &route.Code, &route.VehicleNumber, &route.DriverName,
			&route.Capacity, &route.MonthlyFee, &route.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("transport route not found")
		}
		return nil, fmt.Errorf("error retrieving transport route: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, route_id, name, sequence, pickup_at
		FROM transport_stops WHERE route_id = $1 ORDER BY sequence`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stop models.TransportStop
		if err := rows.Scan(&stop.ID, &stop.RouteID, &stop.Name, &stop.Sequence, &stop.PickupAt); err != nil {
			return nil, err
		}
		route.Stops = append(route.Stops, stop)
	}
	return &route, rows.Err()
}

// GetAllRoutes lists all active routes
func (r *TransportRepository) GetAllRoutes(ctx context.Context) ([]*models.TransportRoute, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, vehicle_number, driver_name, capacity, monthly_fee, active
		FROM transport_routes WHERE active = TRUE ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*models.TransportRoute
	for rows.Next() {
		var route models.TransportRoute
		if err := rows.Scan(&route.ID, &route.Name, &route.Code, &route.VehicleNumber, &route.DriverName,
			&route.Capacity, &route.MonthlyFee, &route.Active); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}
	return routes, rows.Err()
}

// ActiveSubscriberCount counts a route's live subscriptions
func (r *TransportRepository) ActiveSubscriberCount(ctx context.Context, routeID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transport_subscriptions WHERE route_id = $1 AND status = $2`,
		routeID, models.SubscriptionActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subscribers: %w", err)
	}
	return count, nil
}

// HasActiveSubscription checks whether a student already rides a route
func (r *TransportRepository) HasActiveSubscription(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM transport_subscriptions WHERE student_id = $1 AND status = $2)`,
		studentID, models.SubscriptionActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subscription: %w", err)
	}
	return exists, nil
}

// CreateSubscription enrols a student on a route
func (r *TransportRepository) CreateSubscription(ctx context.Context, s *models.TransportSubscription) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transport_subscriptions (route_id, stop_id, student_id, start_date, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.RouteID, s.StopID, s.StudentID, s.StartDate, s.Status).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating transport subscription: %w", err)
	}
	return nil
}

// GetSubscriptionByID retrieves a subscription by ID
func (r *TransportRepository) GetSubscriptionByID(ctx context.Context, id int64) (*models.TransportSubscription, error) {
	var s models.TransportSubscription
	err := r.db.QueryRow(ctx, `
		SELECT id, route_id, stop_id, student_id, start_date, end_date, status
		FROM transport_subscriptions WHERE id = $1`, id).
		Scan(&s.ID, &s.RouteID, &s.StopID, &s.StudentID, &s.StartDate, &s.EndDate, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("transport subscription not found")
		}
		return nil, fmt.Errorf("error retrieving transport subscription: %w", err)
	}
	return &s, nil
}

// UpdateSubscriptionStatus moves a subscription to a new status
func (r *TransportRepository) UpdateSubscriptionStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE transport_subscriptions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating subscription status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("transport subscription not found")
	}
	return nil
}
