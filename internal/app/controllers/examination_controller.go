package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// ExaminationController handles exams, schedules, grade bands and results
type ExaminationController struct {
	examService *services.ExaminationService
}

// NewExaminationController creates a new ExaminationController
func NewExaminationController(examService *services.ExaminationService) *ExaminationController {
	return &ExaminationController{examService: examService}
}

// CreateExamination creates an exam event
// @Summary Create an examination
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExaminationRequest true "Examination"
// @Success 201 {object} dto.APIResponse{data=models.Examination} "Created"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /examinations [post]
func (c *ExaminationController) CreateExamination(ctx *gin.Context) {
	var req dto.CreateExaminationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.CreateExamination(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(exam, "Examination created"))
}

// GetExamination retrieves an examination
// @Summary Get an examination
// @Tags examinations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Success 200 {object} dto.APIResponse{data=models.Examination}
// @Failure 404 {object} dto.ErrorResponse "Examination not found"
// @Router /examinations/{id} [get]
func (c *ExaminationController) GetExamination(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.examService.GetExamination(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(exam, ""))
}

// ListExaminations lists all examinations
// @Summary List examinations
// @Tags examinations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Examination}
// @Router /examinations [get]
func (c *ExaminationController) ListExaminations(ctx *gin.Context) {
	exams, err := c.examService.ListExaminations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(exams, ""))
}

// ChangeExamStatus moves an examination through its lifecycle
// @Summary Change examination status
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /examinations/{id}/status [patch]
func (c *ExaminationController) ChangeExamStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.examService.ChangeExamStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// AddSchedule adds a paper to an examination
// @Summary Add an exam paper
// @Description Schedules one course within an examination; only allowed before the examination starts
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param request body dto.CreateExamScheduleRequest true "Paper schedule"
// @Success 201 {object} dto.APIResponse{data=models.ExamSchedule}
// @Failure 409 {object} dto.ErrorResponse "Examination already started"
// @Router /examinations/{id}/schedules [post]
func (c *ExaminationController) AddSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateExamScheduleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	schedule, err := c.examService.AddSchedule(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(schedule, "Paper scheduled"))
}

// ListSchedules lists the papers of an examination
// @Summary List exam papers
// @Tags examinations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ExamSchedule}
// @Router /examinations/{id}/schedules [get]
func (c *ExaminationController) ListSchedules(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	schedules, err := c.examService.ListSchedules(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedules, ""))
}

// CreateGradeBand defines a grade band
// @Summary Create a grade band
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeBandRequest true "Grade band"
// @Success 201 {object} dto.APIResponse{data=models.GradeBand}
// @Failure 400 {object} dto.ErrorResponse "Range outside 0-100"
// @Router /grade-bands [post]
func (c *ExaminationController) CreateGradeBand(ctx *gin.Context) {
	var req dto.CreateGradeBandRequest
	if !bindJSON(ctx, &req) {
		return
	}

	band, err := c.examService.CreateGradeBand(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(band, "Grade band created"))
}

// ListGradeBands lists the active grade bands
// @Summary List grade bands
// @Tags examinations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.GradeBand}
// @Router /grade-bands [get]
func (c *ExaminationController) ListGradeBands(ctx *gin.Context) {
	bands, err := c.examService.ListGradeBands(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(bands, ""))
}

// EnterResult records one student's marks
// @Summary Enter an exam result
// @Description Records marks for one student and course; total, grade and pass flag are derived server side
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param request body dto.EnterResultRequest true "Marks"
// @Success 201 {object} dto.APIResponse{data=models.ExamResult}
// @Failure 400 {object} dto.ErrorResponse "Marks out of range"
// @Failure 409 {object} dto.ErrorResponse "Result already exists"
// @Router /examinations/{id}/results [post]
func (c *ExaminationController) EnterResult(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnterResultRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.examService.EnterResult(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(result, "Result entered"))
}

// CorrectResult rewrites the marks on a draft result
// @Summary Correct a draft result
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resultId path int true "Result ID"
// @Param request body dto.EnterResultRequest true "Corrected marks"
// @Success 200 {object} dto.APIResponse{data=models.ExamResult}
// @Failure 409 {object} dto.ErrorResponse "Result is not in draft"
// @Router /results/{resultId} [put]
func (c *ExaminationController) CorrectResult(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "resultId")
	if !ok {
		return
	}
	var req dto.EnterResultRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.examService.CorrectResult(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Result corrected"))
}

// ChangeResultStatus moves a result through the workflow
// @Summary Change result status
// @Description Moves a result through draft, submitted, verified and published
// @Tags examinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resultId path int true "Result ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /results/{resultId}/status [patch]
func (c *ExaminationController) ChangeResultStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "resultId")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.examService.ChangeResultStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// ListResults lists the results of an examination
// @Summary List exam results
// @Tags examinations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param courseId query int false "Filter by course"
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.ExamResult}
// @Router /examinations/{id}/results [get]
func (c *ExaminationController) ListResults(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var filter dto.ResultFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.examService.ListResults(ctx, id, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results, ""))
}
