package services

import (
	"context"
	"time"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/logger"
)

// TransportService handles bus routes, stops and student subscriptions
type TransportService struct {
	transportRepo *repositories.TransportRepository
	studentRepo   *repositories.StudentRepository
}

// NewTransportService creates a new transport service instance
func NewTransportService(transportRepo *repositories.TransportRepository, studentRepo *repositories.StudentRepository) *TransportService {
	return &TransportService{
		transportRepo: transportRepo,
		studentRepo:   studentRepo,
	}
}

// CreateRoute registers a bus route with its stops
func (s *TransportService) CreateRoute(ctx context.Context, req dto.CreateTransportRouteRequest) (*models.TransportRoute, error) {
	if req.Capacity <= 0 {
		return nil, apperrors.NewBadRequestError("route capacity must be positive")
	}

	route := &models.TransportRoute{
		Name:          req.Name,
		Code:          req.Code,
		VehicleNumber: req.VehicleNumber,
		DriverName:    req.DriverName,
		Capacity:      req.Capacity,
		MonthlyFee:    req.MonthlyFee,
		Active:        true,
	}
	for i, stop := range req.Stops {
		sequence := stop.Sequence
		if sequence <= 0 {
			sequence = i + 1
		}
		route.Stops = append(route.Stops, models.TransportStop{
			Name:     stop.Name,
			Sequence: sequence,
			PickupAt: stop.PickupAt,
		})
	}

	if err := s.transportRepo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}

	logger.Info().Int64("routeId", route.ID).Str("code", route.Code).Msg("Transport route created")
	return route, nil
}

// GetRoute retrieves a route with its stops
func (s *TransportService) GetRoute(ctx context.Context, id int64) (*models.TransportRoute, error) {
	return s.transportRepo.GetRouteByID(ctx, id)
}

// ListRoutes lists all routes
func (s *TransportService) ListRoutes(ctx context.Context) ([]*models.TransportRoute, error) {
	return s.transportRepo.GetAllRoutes(ctx)
}

// Subscribe enrolls a student on a route from a given stop. The route must
// have seats left and the student must not hold another active subscription.
func (s *TransportService) Subscribe(ctx context.Context, req dto.SubscribeTransportRequest) (*models.TransportSubscription, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	route, err := s.transportRepo.GetRouteByID(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}
	if !route.Active {
		return nil, apperrors.NewConflictError("route is not active")
	}

	subscribed, err := s.transportRepo.HasActiveSubscription(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		return nil, apperrors.NewConflictError("student already holds an active transport subscription")
	}

	count, err := s.transportRepo.ActiveSubscriberCount(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}
	if count >= route.Capacity {
		return nil, apperrors.NewConflictError("route is at capacity")
	}

	subscription := &models.TransportSubscription{
		RouteID:   req.RouteID,
		StopID:    req.StopID,
		StudentID: req.StudentID,
		StartDate: time.Now(),
		Status:    models.SubscriptionActive,
	}
	if err := s.transportRepo.CreateSubscription(ctx, subscription); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", req.StudentID).Int64("routeId", req.RouteID).Msg("Transport subscription created")
	return subscription, nil
}

// ChangeSubscriptionStatus moves a subscription through its lifecycle
func (s *TransportService) ChangeSubscriptionStatus(ctx context.Context, id int64, status models.Status) error {
	subscription, err := s.transportRepo.GetSubscriptionByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.TransportSubscriptionTransitions, subscription.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.transportRepo.UpdateSubscriptionStatus(ctx, id, status)
}
