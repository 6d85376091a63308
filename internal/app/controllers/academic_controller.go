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

// AcademicController handles the academic structure: years, semesters,
// departments, programs, batches, classrooms, subjects and courses
type AcademicController struct {
	academicService *services.AcademicService
}

// NewAcademicController creates a new AcademicController
func NewAcademicController(academicService *services.AcademicService) *AcademicController {
	return &AcademicController{academicService: academicService}
}

// CreateAcademicYear creates an academic year
// @Summary Create an academic year
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /academic-years [post]
func (c *AcademicController) CreateAcademicYear(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if !bindJSON(ctx, &req) {
		return
	}

	year, err := c.academicService.CreateAcademicYear(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(year, "Academic year created"))
}

// ListAcademicYears lists all academic years
// @Summary List academic years
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear}
// @Router /academic-years [get]
func (c *AcademicController) ListAcademicYears(ctx *gin.Context) {
	years, err := c.academicService.ListAcademicYears(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(years, ""))
}

// GetCurrentYear returns the current academic year
// @Summary Get the current academic year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 404 {object} dto.ErrorResponse "No current year"
// @Router /academic-years/current [get]
func (c *AcademicController) GetCurrentYear(ctx *gin.Context) {
	year, err := c.academicService.GetCurrentYear(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(year, ""))
}

// UpdateAcademicYear updates an academic year
// @Summary Update an academic year
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [put]
func (c *AcademicController) UpdateAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAcademicYearRequest
	if !bindJSON(ctx, &req) {
		return
	}

	year, err := c.academicService.UpdateAcademicYear(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(year, "Academic year updated"))
}

// ChangeYearStatus moves an academic year through its lifecycle
// @Summary Change academic year status
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /academic-years/{id}/status [patch]
func (c *AcademicController) ChangeYearStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	year, err := c.academicService.ChangeYearStatus(ctx, id, models.Status(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(year, "Status changed"))
}

// CreateSemester adds a semester to an academic year
// @Summary Create a semester
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester"
// @Success 201 {object} dto.APIResponse{data=models.Semester}
// @Router /semesters [post]
func (c *AcademicController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	semester, err := c.academicService.CreateSemester(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(semester, "Semester created"))
}

// ListSemesters lists the semesters of an academic year
// @Summary List semesters of a year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Semester}
// @Router /academic-years/{id}/semesters [get]
func (c *AcademicController) ListSemesters(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	semesters, err := c.academicService.ListSemesters(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(semesters, ""))
}

// CreateDepartment creates a department
// @Summary Create a department
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department"
// @Success 201 {object} dto.APIResponse{data=models.Department}
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /departments [post]
func (c *AcademicController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	department, err := c.academicService.CreateDepartment(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(department, "Department created"))
}

// ListDepartments lists all departments
// @Summary List departments
// @Tags academic
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department}
// @Router /departments [get]
func (c *AcademicController) ListDepartments(ctx *gin.Context) {
	departments, err := c.academicService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments, ""))
}

// CreateProgram creates a program under a department
// @Summary Create a program
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program"
// @Success 201 {object} dto.APIResponse{data=models.Program}
// @Router /programs [post]
func (c *AcademicController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if !bindJSON(ctx, &req) {
		return
	}

	program, err := c.academicService.CreateProgram(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(program, "Program created"))
}

// ListPrograms lists programs, optionally filtered by department
// @Summary List programs
// @Tags academic
// @Produce json
// @Param departmentId query int false "Filter by department"
// @Success 200 {object} dto.APIResponse{data=[]models.Program}
// @Router /programs [get]
func (c *AcademicController) ListPrograms(ctx *gin.Context) {
	departmentID, _ := strconv.ParseInt(ctx.Query("departmentId"), 10, 64)

	programs, err := c.academicService.ListPrograms(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programs, ""))
}

// CreateBatch creates an admission batch
// @Summary Create a batch
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch"
// @Success 201 {object} dto.APIResponse{data=models.Batch}
// @Router /batches [post]
func (c *AcademicController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	batch, err := c.academicService.CreateBatch(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(batch, "Batch created"))
}

// ChangeBatchStatus moves a batch through its lifecycle
// @Summary Change batch status
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /batches/{id}/status [patch]
func (c *AcademicController) ChangeBatchStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.academicService.ChangeBatchStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// CreateClassroom registers a classroom
// @Summary Create a classroom
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassroomRequest true "Classroom"
// @Success 201 {object} dto.APIResponse{data=models.Classroom}
// @Router /classrooms [post]
func (c *AcademicController) CreateClassroom(ctx *gin.Context) {
	var req dto.CreateClassroomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	classroom, err := c.academicService.CreateClassroom(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(classroom, "Classroom created"))
}

// ListClassrooms lists all classrooms
// @Summary List classrooms
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Classroom}
// @Router /classrooms [get]
func (c *AcademicController) ListClassrooms(ctx *gin.Context) {
	classrooms, err := c.academicService.ListClassrooms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classrooms, ""))
}

// CreateSubject creates a subject
// @Summary Create a subject
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} dto.APIResponse{data=models.Subject}
// @Router /subjects [post]
func (c *AcademicController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	subject, err := c.academicService.CreateSubject(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject, "Subject created"))
}

// CreateCourse offers a subject to a batch in a semester
// @Summary Create a course offering
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Subject, batch or faculty not found"
// @Router /courses [post]
func (c *AcademicController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.academicService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course, "Course created"))
}

// ListCourses lists courses filtered by batch and semester
// @Summary List courses
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param batchId query int false "Filter by batch"
// @Param semesterId query int false "Filter by semester"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *AcademicController) ListCourses(ctx *gin.Context) {
	batchID, _ := strconv.ParseInt(ctx.Query("batchId"), 10, 64)
	semesterID, _ := strconv.ParseInt(ctx.Query("semesterId"), 10, 64)

	courses, err := c.academicService.ListCourses(ctx, batchID, semesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}
