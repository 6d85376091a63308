package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
	"github.com/univera/univera/internal/pkg/helpers"
)

// StudentController handles admissions, attendance, discipline and
// performance reports
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// AdmitStudent admits a new student
// @Summary Admit a student
// @Description Creates the account and the student record; the registration number is assigned by the server
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Admitted"
// @Failure 404 {object} dto.ErrorResponse "Program or batch not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /students [post]
func (c *StudentController) AdmitStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.AdmitStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student, "Student admitted"))
}

// GetStudent retrieves a student
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, ""))
}

// ListStudents lists students with filters and pagination
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program"
// @Param batchId query int false "Filter by batch"
// @Param status query string false "Filter by status"
// @Param search query string false "Search name or registration number"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := c.studentService.ListStudents(ctx, filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	paged := dto.PagedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(paged, ""))
}

// UpdateStudent updates mutable student fields
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student updated"))
}

// ChangeStudentStatus moves a student through the lifecycle
// @Summary Change student status
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /students/{id}/status [patch]
func (c *StudentController) ChangeStudentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.ChangeStudentStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// MarkAttendance records one day's attendance for a course
// @Summary Mark attendance
// @Description Records presence flags for a set of students; re-marking the same day overwrites
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance sheet"
// @Success 200 {object} dto.APIResponse "Attendance recorded"
// @Router /attendance [post]
func (c *StudentController) MarkAttendance(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.MarkAttendance(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Attendance recorded"))
}

// AttendanceSummary reports a student's attendance ratio
// @Summary Get attendance summary
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSummaryResponse}
// @Router /students/{id}/attendance [get]
func (c *StudentController) AttendanceSummary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.studentService.AttendanceSummary(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary, ""))
}

// ReportDiscipline opens a discipline case
// @Summary Report a discipline issue
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDisciplineRequest true "Discipline case"
// @Success 201 {object} dto.APIResponse{data=models.DisciplineRecord}
// @Router /discipline [post]
func (c *StudentController) ReportDiscipline(ctx *gin.Context) {
	var req dto.CreateDisciplineRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.studentService.ReportDiscipline(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(record, "Discipline case opened"))
}

// ResolveDiscipline moves a discipline case through its lifecycle
// @Summary Resolve a discipline case
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline record ID"
// @Param request body dto.ResolveDisciplineRequest true "Target status and action taken"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /discipline/{id} [patch]
func (c *StudentController) ResolveDiscipline(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ResolveDisciplineRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.ResolveDiscipline(ctx, id, models.Status(req.Status), req.ActionTaken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Discipline case updated"))
}

// Performance reports a student's published results grouped by semester
// @Summary Get academic performance
// @Description Returns published results grouped by semester with SGPA per semester and overall CGPA
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.PerformanceResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/performance [get]
func (c *StudentController) Performance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	performance, err := c.studentService.Performance(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(performance, ""))
}
