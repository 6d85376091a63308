package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// HallTicketController handles eligibility checks, hall tickets, ID cards,
// seating plans and public QR verification
type HallTicketController struct {
	ticketService *services.HallTicketService
}

// NewHallTicketController creates a new HallTicketController
func NewHallTicketController(ticketService *services.HallTicketService) *HallTicketController {
	return &HallTicketController{ticketService: ticketService}
}

// CheckEligibility runs the hall-ticket gates for one student
// @Summary Check hall-ticket eligibility
// @Description Applies the attendance, fee-due and discipline gates and reports every failing reason
// @Tags hall-tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityResponse}
// @Failure 404 {object} dto.ErrorResponse "Examination or student not found"
// @Router /examinations/{id}/eligibility/{studentId} [get]
func (c *HallTicketController) CheckEligibility(ctx *gin.Context) {
	examinationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	eligibility, err := c.ticketService.CheckEligibility(ctx, examinationID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(eligibility, ""))
}

// GenerateHallTicket issues a hall ticket
// @Summary Generate a hall ticket
// @Tags hall-tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateHallTicketRequest true "Examination and student"
// @Success 201 {object} dto.APIResponse{data=models.HallTicket} "Generated"
// @Failure 409 {object} dto.ErrorResponse "Ticket already exists"
// @Failure 422 {object} dto.ErrorResponse "Student not eligible"
// @Router /hall-tickets [post]
func (c *HallTicketController) GenerateHallTicket(ctx *gin.Context) {
	var req dto.GenerateHallTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.GenerateHallTicket(ctx, req.ExaminationID, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(ticket, "Hall ticket generated"))
}

// GetHallTicket retrieves a hall ticket
// @Summary Get a hall ticket
// @Tags hall-tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hall ticket ID"
// @Success 200 {object} dto.APIResponse{data=models.HallTicket}
// @Failure 404 {object} dto.ErrorResponse "Hall ticket not found"
// @Router /hall-tickets/{id} [get]
func (c *HallTicketController) GetHallTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ticket, err := c.ticketService.GetHallTicket(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(ticket, ""))
}

// HallTicketQR renders a hall ticket's QR code as PNG
// @Summary Get hall ticket QR code
// @Tags hall-tickets
// @Produce png
// @Security BearerAuth
// @Param id path int true "Hall ticket ID"
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} dto.ErrorResponse "Hall ticket not found"
// @Router /hall-tickets/{id}/qr [get]
func (c *HallTicketController) HallTicketQR(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	png, err := c.ticketService.HallTicketQR(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// ChangeTicketStatus moves a hall ticket through its lifecycle
// @Summary Change hall ticket status
// @Tags hall-tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hall ticket ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /hall-tickets/{id}/status [patch]
func (c *HallTicketController) ChangeTicketStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.ticketService.ChangeTicketStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// IssueIDCard issues a student ID card
// @Summary Issue an ID card
// @Tags id-cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueIDCardRequest true "Student and validity"
// @Success 201 {object} dto.APIResponse{data=models.StudentIDCard} "Issued"
// @Failure 409 {object} dto.ErrorResponse "Student already holds an active card"
// @Router /id-cards [post]
func (c *HallTicketController) IssueIDCard(ctx *gin.Context) {
	var req dto.IssueIDCardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	card, err := c.ticketService.IssueIDCard(ctx, req.StudentID, req.ValidYears)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(card, "ID card issued"))
}

// GenerateSeating builds the seating plan for an examination
// @Summary Generate exam seating
// @Description Assigns a batch's enrolled students to rooms and seats in registration order; regeneration replaces the previous plan
// @Tags hall-tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Param batchId query int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=[]models.SeatAllocation}
// @Failure 400 {object} dto.ErrorResponse "Batch has no enrolled students"
// @Router /examinations/{id}/seating [post]
func (c *HallTicketController) GenerateSeating(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	batchID, err := strconv.ParseInt(ctx.Query("batchId"), 10, 64)
	if err != nil || batchID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid batchId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	seating, err := c.ticketService.GenerateSeating(ctx, id, batchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(seating, "Seating generated"))
}

// GetSeating lists the seating plan of an examination
// @Summary Get exam seating
// @Tags hall-tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Examination ID"
// @Success 200 {object} dto.APIResponse{data=[]models.SeatAllocation}
// @Router /examinations/{id}/seating [get]
func (c *HallTicketController) GetSeating(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	seating, err := c.ticketService.GetSeating(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(seating, ""))
}

// VerifyHallTicket answers a public QR lookup for a hall ticket
// @Summary Verify a hall ticket
// @Description Public endpoint answering QR scans; requires the student's date of birth as a second factor. Unknown or mismatched lookups report invalid rather than an error
// @Tags verification
// @Produce json
// @Param number path string true "Ticket number"
// @Param dob query string true "Student date of birth (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyResponse}
// @Router /verify/hall-ticket/{number} [get]
func (c *HallTicketController) VerifyHallTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	dateOfBirth, err := time.Parse("2006-01-02", ctx.Query("dob"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("dob query parameter is required in YYYY-MM-DD format"))
		return
	}

	verification, err := c.ticketService.VerifyHallTicket(ctx, number, dateOfBirth)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(verification, ""))
}

// VerifyIDCard answers a public QR lookup for an ID card
// @Summary Verify an ID card
// @Description Public endpoint answering QR scans; unknown numbers report invalid rather than an error
// @Tags verification
// @Produce json
// @Param number path string true "Card number"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyResponse}
// @Router /verify/id-card/{number} [get]
func (c *HallTicketController) VerifyIDCard(ctx *gin.Context) {
	number := ctx.Param("number")

	verification, err := c.ticketService.VerifyIDCard(ctx, number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(verification, ""))
}
