package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// WizardController handles the bulk administrative operations
type WizardController struct {
	wizardService *services.WizardService
}

// NewWizardController creates a new WizardController
func NewWizardController(wizardService *services.WizardService) *WizardController {
	return &WizardController{wizardService: wizardService}
}

// ImportStudents bulk-admits students from a CSV or XLSX upload
// @Summary Import students from a file
// @Description Parses an uploaded CSV or XLSX and admits one student per row; failed rows are reported without aborting the run
// @Tags wizards
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV or XLSX file"
// @Param programId formData int true "Program ID"
// @Param departmentId formData int true "Department ID"
// @Param batchId formData int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Import result"
// @Failure 400 {object} dto.ErrorResponse "Unreadable or empty file"
// @Failure 409 {object} dto.ErrorResponse "Import already running"
// @Router /wizards/import-students [post]
func (c *WizardController) ImportStudents(ctx *gin.Context) {
	var req dto.ImportStudentsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file")
		errorDetail = errorDetail.WithDetails("A CSV or XLSX file must be uploaded under the 'file' field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not read uploaded file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	result, err := c.wizardService.ImportStudents(ctx, req, fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Import finished"))
}

// PromoteStudents promotes a batch to the next semester
// @Summary Promote students
// @Description Moves a batch's enrolled students to the next semester; students over the backlog limit are held back
// @Tags wizards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PromoteStudentsRequest true "Promotion parameters"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Promotion result"
// @Failure 409 {object} dto.ErrorResponse "Promotion already running"
// @Router /wizards/promote-students [post]
func (c *WizardController) PromoteStudents(ctx *gin.Context) {
	var req dto.PromoteStudentsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.wizardService.PromoteStudents(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Promotion finished"))
}

// PublishResults publishes all verified results of an examination
// @Summary Publish exam results
// @Tags wizards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PublishResultsRequest true "Examination"
// @Success 200 {object} dto.APIResponse "Publication result"
// @Failure 409 {object} dto.ErrorResponse "Publication already running"
// @Router /wizards/publish-results [post]
func (c *WizardController) PublishResults(ctx *gin.Context) {
	var req dto.PublishResultsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	published, err := c.wizardService.PublishResults(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"published": published}, "Results published"))
}

// BulkHallTickets generates hall tickets for a batch
// @Summary Bulk-generate hall tickets
// @Description Generates a ticket for every eligible student of the batch; ineligible students are reported
// @Tags wizards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkHallTicketsRequest true "Examination and batch"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Generation result"
// @Failure 409 {object} dto.ErrorResponse "Run already in progress"
// @Router /wizards/hall-tickets [post]
func (c *WizardController) BulkHallTickets(ctx *gin.Context) {
	var req dto.BulkHallTicketsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.wizardService.BulkHallTickets(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Hall ticket run finished"))
}

// BulkIDCards issues ID cards for a batch
// @Summary Bulk-issue ID cards
// @Tags wizards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIDCardsRequest true "Batch and validity"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Issue result"
// @Failure 409 {object} dto.ErrorResponse "Run already in progress"
// @Router /wizards/id-cards [post]
func (c *WizardController) BulkIDCards(ctx *gin.Context) {
	var req dto.BulkIDCardsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.wizardService.BulkIDCards(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "ID card run finished"))
}

// SendFeeReminders sends reminders for unpaid dues
// @Summary Send fee reminders
// @Description Records a reminder for every student of the structure's batch still owing against it
// @Tags wizards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFeeRemindersRequest true "Structure and channel"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Reminder result"
// @Failure 409 {object} dto.ErrorResponse "Run already in progress"
// @Router /wizards/fee-reminders [post]
func (c *WizardController) SendFeeReminders(ctx *gin.Context) {
	var req dto.SendFeeRemindersRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.wizardService.SendFeeReminders(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Reminder run finished"))
}
