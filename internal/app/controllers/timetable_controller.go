package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// TimetableController handles weekly timetable slots
type TimetableController struct {
	timetableService *services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService *services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

// CreateEntry adds a weekly slot
// @Summary Create a timetable entry
// @Description Adds a weekly slot; overlapping slots of the same faculty member or classroom are rejected
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTimetableEntryRequest true "Timetable entry"
// @Success 201 {object} dto.APIResponse{data=models.TimetableEntry} "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid day or time range"
// @Failure 409 {object} dto.ErrorResponse "Faculty or classroom conflict"
// @Router /timetable [post]
func (c *TimetableController) CreateEntry(ctx *gin.Context) {
	var req dto.CreateTimetableEntryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.timetableService.CreateEntry(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(entry, "Timetable entry created"))
}

// UpdateEntry moves an existing slot
// @Summary Update a timetable entry
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param request body dto.UpdateTimetableEntryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.TimetableEntry}
// @Failure 409 {object} dto.ErrorResponse "Faculty or classroom conflict"
// @Router /timetable/{id} [put]
func (c *TimetableController) UpdateEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateTimetableEntryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.timetableService.UpdateEntry(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entry, "Timetable entry updated"))
}

// ListEntries lists timetable entries matching the filter
// @Summary List timetable entries
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param batchId query int false "Filter by batch"
// @Param facultyId query int false "Filter by faculty"
// @Param classroomId query int false "Filter by classroom"
// @Param day query int false "Filter by day (0=Monday)"
// @Success 200 {object} dto.APIResponse{data=[]models.TimetableEntry}
// @Router /timetable [get]
func (c *TimetableController) ListEntries(ctx *gin.Context) {
	var filter dto.TimetableFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entries, err := c.timetableService.ListEntries(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries, ""))
}

// DeleteEntry removes a slot
// @Summary Delete a timetable entry
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /timetable/{id} [delete]
func (c *TimetableController) DeleteEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.timetableService.DeleteEntry(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Timetable entry deleted"))
}
