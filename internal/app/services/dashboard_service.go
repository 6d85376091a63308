package services

import (
	"context"
	"math"
	"time"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/cache"
	"github.com/univera/univera/internal/pkg/logger"
)

// DashboardService assembles the administrator landing-page counters,
// serving them from Redis with a short TTL
type DashboardService struct {
	dashboardRepo *repositories.DashboardRepository
	examRepo      *repositories.ExaminationRepository
	hostelRepo    *repositories.HostelRepository
	cache         *cache.Cache
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	dashboardRepo *repositories.DashboardRepository,
	examRepo *repositories.ExaminationRepository,
	hostelRepo *repositories.HostelRepository,
	c *cache.Cache,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		examRepo:      examRepo,
		hostelRepo:    hostelRepo,
		cache:         c,
	}
}

// Summary returns the dashboard counters, cached for a couple of minutes
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	key := cache.DashboardKey("summary")

	var cached dto.DashboardResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	now := time.Now()
	summary, err := s.dashboardRepo.Collect(ctx, now)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.examRepo.UpcomingExamCount(ctx, now)
	if err != nil {
		return nil, err
	}
	summary.UpcomingExams = upcoming

	outstanding, err := s.dashboardRepo.OutstandingFees(ctx)
	if err != nil {
		return nil, err
	}
	summary.FeeOutstanding = outstanding

	capacity, occupied, err := s.hostelRepo.Occupancy(ctx)
	if err != nil {
		return nil, err
	}
	if capacity > 0 {
		summary.HostelOccupancy = math.Round(float64(occupied)/float64(capacity)*10000) / 100
	}

	if err := s.cache.Set(ctx, key, summary, cache.TTLDashboard); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache dashboard summary")
	}
	return summary, nil
}

// Invalidate drops the cached summary so the next read recomputes it
func (s *DashboardService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, cache.DashboardKey("summary"))
}
