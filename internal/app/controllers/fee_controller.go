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

// FeeController handles fee structures, payments, discounts and dues
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// CreateStructure creates a fee structure
// @Summary Create a fee structure
// @Description Creates a structure whose total is the sum of its line items
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeStructureRequest true "Fee structure"
// @Success 201 {object} dto.APIResponse{data=models.FeeStructure} "Created"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /fee-structures [post]
func (c *FeeController) CreateStructure(ctx *gin.Context) {
	var req dto.CreateFeeStructureRequest
	if !bindJSON(ctx, &req) {
		return
	}

	structure, err := c.feeService.CreateStructure(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(structure, "Fee structure created"))
}

// GetStructure retrieves a fee structure with its lines
// @Summary Get a fee structure
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee structure ID"
// @Success 200 {object} dto.APIResponse{data=models.FeeStructure}
// @Failure 404 {object} dto.ErrorResponse "Fee structure not found"
// @Router /fee-structures/{id} [get]
func (c *FeeController) GetStructure(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	structure, err := c.feeService.GetStructure(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(structure, ""))
}

// ListStructures lists the active structures of a batch
// @Summary List fee structures by batch
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param batchId query int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=[]models.FeeStructure}
// @Router /fee-structures [get]
func (c *FeeController) ListStructures(ctx *gin.Context) {
	batchID, _ := strconv.ParseInt(ctx.Query("batchId"), 10, 64)

	structures, err := c.feeService.ListStructuresByBatch(ctx, batchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(structures, ""))
}

// RecordPayment records a payment in draft state
// @Summary Record a fee payment
// @Description Records a draft payment; granted discounts apply automatically and the receipt number is assigned by the server
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=models.FeePayment} "Recorded"
// @Failure 404 {object} dto.ErrorResponse "Student or structure not found"
// @Router /fee-payments [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	payment, err := c.feeService.RecordPayment(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(payment, "Payment recorded"))
}

// ChangePaymentStatus moves a payment through its lifecycle
// @Summary Change payment status
// @Description Moves a payment through draft, confirmed, cancelled and refunded
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /fee-payments/{id}/status [patch]
func (c *FeeController) ChangePaymentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.feeService.ChangePaymentStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}

// ListPayments lists a student's payments
// @Summary List payments by student
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.FeePayment}
// @Router /students/{id}/fee-payments [get]
func (c *FeeController) ListPayments(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payments, err := c.feeService.ListPaymentsByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payments, ""))
}

// CreateDiscount creates a discount scheme
// @Summary Create a fee discount
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeDiscountRequest true "Discount scheme"
// @Success 201 {object} dto.APIResponse{data=models.FeeDiscount}
// @Failure 400 {object} dto.ErrorResponse "Percentage outside 0-100"
// @Router /fee-discounts [post]
func (c *FeeController) CreateDiscount(ctx *gin.Context) {
	var req dto.CreateFeeDiscountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	discount, err := c.feeService.CreateDiscount(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(discount, "Discount created"))
}

// ApplyDiscount grants a discount to a student
// @Summary Apply a discount
// @Description Grants a discount scheme to a student against a fee structure
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyDiscountRequest true "Grant"
// @Success 201 {object} dto.APIResponse{data=models.DiscountApplication}
// @Failure 409 {object} dto.ErrorResponse "Discount scheme is inactive"
// @Router /fee-discounts/apply [post]
func (c *FeeController) ApplyDiscount(ctx *gin.Context) {
	var req dto.ApplyDiscountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.feeService.ApplyDiscount(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application, "Discount applied"))
}

// StudentDue reports a student's balance against a structure
// @Summary Get a student's fee due
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param structureId path int true "Fee structure ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeDueResponse}
// @Failure 404 {object} dto.ErrorResponse "Student or structure not found"
// @Router /students/{id}/fee-due/{structureId} [get]
func (c *FeeController) StudentDue(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	structureID, ok := parseIDParam(ctx, "structureId")
	if !ok {
		return
	}

	due, err := c.feeService.StudentDue(ctx, studentID, structureID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(due, ""))
}
