package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// FacultyController handles faculty records and workload reports
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

// HireFaculty registers a new faculty member
// @Summary Hire a faculty member
// @Description Creates the account and the faculty record; the employee code is assigned by the server
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty member"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Hired"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /faculty [post]
func (c *FacultyController) HireFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.HireFaculty(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(faculty, "Faculty member hired"))
}

// GetFaculty retrieves a faculty member
// @Summary Get a faculty member
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=models.Faculty}
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFaculty(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty, ""))
}

// ListFaculty lists faculty members of a department
// @Summary List faculty by department
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param departmentId query int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty}
// @Router /faculty [get]
func (c *FacultyController) ListFaculty(ctx *gin.Context) {
	departmentID, _ := strconv.ParseInt(ctx.Query("departmentId"), 10, 64)

	faculty, err := c.facultyService.ListByDepartment(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty, ""))
}

// UpdateFaculty updates mutable faculty fields
// @Summary Update a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Param request body dto.UpdateFacultyRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Faculty}
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateFacultyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty, "Faculty member updated"))
}

// ChangeFacultyStatus changes a faculty member's employment status
// @Summary Change faculty status
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Router /faculty/{id}/status [patch]
func (c *FacultyController) ChangeFacultyStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.facultyService.ChangeFacultyStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// Workload reports a faculty member's teaching load
// @Summary Get faculty workload
// @Description Returns course count plus weekly timetable slots and hours
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=dto.FacultyWorkloadResponse}
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id}/workload [get]
func (c *FacultyController) Workload(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	workload, err := c.facultyService.Workload(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workload, ""))
}
