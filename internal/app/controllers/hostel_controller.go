package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// HostelController handles hostels, rooms and allocations
type HostelController struct {
	hostelService *services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService *services.HostelService) *HostelController {
	return &HostelController{hostelService: hostelService}
}

// CreateHostel registers a hostel building
// @Summary Create a hostel
// @Tags hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHostelRequest true "Hostel"
// @Success 201 {object} dto.APIResponse{data=models.Hostel} "Created"
// @Router /hostels [post]
func (c *HostelController) CreateHostel(ctx *gin.Context) {
	var req dto.CreateHostelRequest
	if !bindJSON(ctx, &req) {
		return
	}

	hostel, err := c.hostelService.CreateHostel(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(hostel, "Hostel created"))
}

// AddRoom adds a room to a hostel
// @Summary Add a hostel room
// @Tags hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHostelRoomRequest true "Room"
// @Success 201 {object} dto.APIResponse{data=models.HostelRoom} "Created"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Router /hostel-rooms [post]
func (c *HostelController) AddRoom(ctx *gin.Context) {
	var req dto.CreateHostelRoomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	room, err := c.hostelService.AddRoom(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(room, "Room created"))
}

// ListRooms lists the rooms of a hostel
// @Summary List hostel rooms
// @Tags hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} dto.APIResponse{data=[]models.HostelRoom}
// @Router /hostels/{id}/rooms [get]
func (c *HostelController) ListRooms(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rooms, err := c.hostelService.ListRooms(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rooms, ""))
}

// AllocateRoom places a student in a room
// @Summary Allocate a hostel room
// @Description Assigns a bed; rejected when the room is full or the student already holds an allocation
// @Tags hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AllocateRoomRequest true "Allocation"
// @Success 201 {object} dto.APIResponse{data=models.HostelAllocation} "Allocated"
// @Failure 409 {object} dto.ErrorResponse "Room full or student already allocated"
// @Router /hostel-allocations [post]
func (c *HostelController) AllocateRoom(ctx *gin.Context) {
	var req dto.AllocateRoomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	allocation, err := c.hostelService.AllocateRoom(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(allocation, "Room allocated"))
}

// VacateRoom ends an allocation
// @Summary Vacate a hostel room
// @Tags hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Success 200 {object} dto.APIResponse "Vacated"
// @Failure 409 {object} dto.ErrorResponse "Allocation already closed"
// @Router /hostel-allocations/{id}/vacate [post]
func (c *HostelController) VacateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.hostelService.VacateRoom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Room vacated"))
}
