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

// HostelService handles hostels, rooms and bed allocations
type HostelService struct {
	hostelRepo  *repositories.HostelRepository
	studentRepo *repositories.StudentRepository
}

// NewHostelService creates a new hostel service instance
func NewHostelService(hostelRepo *repositories.HostelRepository, studentRepo *repositories.StudentRepository) *HostelService {
	return &HostelService{
		hostelRepo:  hostelRepo,
		studentRepo: studentRepo,
	}
}

// CreateHostel registers a hostel building
func (s *HostelService) CreateHostel(ctx context.Context, req dto.CreateHostelRequest) (*models.Hostel, error) {
	hostel := &models.Hostel{
		Name:     req.Name,
		Code:     req.Code,
		Warden:   req.Warden,
		Capacity: req.Capacity,
		Active:   true,
	}
	if err := s.hostelRepo.CreateHostel(ctx, hostel); err != nil {
		return nil, err
	}
	return hostel, nil
}

// AddRoom adds a room to a hostel
func (s *HostelService) AddRoom(ctx context.Context, req dto.CreateHostelRoomRequest) (*models.HostelRoom, error) {
	if _, err := s.hostelRepo.GetHostelByID(ctx, req.HostelID); err != nil {
		return nil, err
	}
	if req.Capacity <= 0 {
		return nil, apperrors.NewBadRequestError("room capacity must be positive")
	}

	room := &models.HostelRoom{
		HostelID: req.HostelID,
		Number:   req.Number,
		Floor:    req.Floor,
		Capacity: req.Capacity,
		Active:   true,
	}
	if err := s.hostelRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms lists the rooms of a hostel
func (s *HostelService) ListRooms(ctx context.Context, hostelID int64) ([]*models.HostelRoom, error) {
	return s.hostelRepo.GetRoomsByHostel(ctx, hostelID)
}

// AllocateRoom places a student in a room. A student holds at most one
// active allocation; the room must have a vacant bed.
func (s *HostelService) AllocateRoom(ctx context.Context, req dto.AllocateRoomRequest) (*models.HostelAllocation, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	room, err := s.hostelRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	allocated, err := s.hostelRepo.HasActiveAllocation(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if allocated {
		return nil, apperrors.ErrAlreadyAllocated
	}
	if !room.HasVacancy() {
		return nil, apperrors.ErrRoomFull
	}

	allocation := &models.HostelAllocation{
		StudentID:   req.StudentID,
		RoomID:      req.RoomID,
		AllocatedOn: time.Now(),
		Status:      models.AllocationActive,
	}
	if err := s.hostelRepo.Allocate(ctx, allocation); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", req.StudentID).Int64("roomId", req.RoomID).Msg("Hostel room allocated")
	return allocation, nil
}

// VacateRoom ends an active allocation and frees the bed
func (s *HostelService) VacateRoom(ctx context.Context, allocationID int64) error {
	allocation, err := s.hostelRepo.GetAllocationByID(ctx, allocationID)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.HostelAllocationTransitions, allocation.Status, models.AllocationVacated) {
		return apperrors.ErrIllegalStateChange
	}
	return s.hostelRepo.Vacate(ctx, allocationID, time.Now())
}
