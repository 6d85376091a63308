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

// FeeService handles fee structures, payments, discounts and dues
type FeeService struct {
	feeRepo      *repositories.FeeRepository
	studentRepo  *repositories.StudentRepository
	catalogRepo  *repositories.CatalogRepository
	sequenceRepo *repositories.SequenceRepository
}

// NewFeeService creates a new fee service instance
func NewFeeService(
	feeRepo *repositories.FeeRepository,
	studentRepo *repositories.StudentRepository,
	catalogRepo *repositories.CatalogRepository,
	sequenceRepo *repositories.SequenceRepository,
) *FeeService {
	return &FeeService{
		feeRepo:      feeRepo,
		studentRepo:  studentRepo,
		catalogRepo:  catalogRepo,
		sequenceRepo: sequenceRepo,
	}
}

// CreateStructure creates a fee structure; the total is the sum of its lines
func (s *FeeService) CreateStructure(ctx context.Context, req dto.CreateFeeStructureRequest) (*models.FeeStructure, error) {
	if _, err := s.catalogRepo.GetBatchByID(ctx, req.BatchID); err != nil {
		return nil, err
	}

	structure := &models.FeeStructure{
		Name:           req.Name,
		Code:           req.Code,
		ProgramID:      req.ProgramID,
		BatchID:        req.BatchID,
		SemesterID:     req.SemesterID,
		AcademicYearID: req.AcademicYearID,
		DueDate:        req.DueDate,
		Active:         true,
	}
	for _, line := range req.Lines {
		structure.Lines = append(structure.Lines, models.FeeLine{Head: line.Head, Amount: line.Amount})
	}
	structure.TotalAmount = structure.SumLines()

	if err := s.feeRepo.CreateStructure(ctx, structure); err != nil {
		return nil, err
	}

	logger.Info().Int64("structureId", structure.ID).Float64("total", structure.TotalAmount).Msg("Fee structure created")
	return structure, nil
}

// GetStructure retrieves a fee structure with its lines
func (s *FeeService) GetStructure(ctx context.Context, id int64) (*models.FeeStructure, error) {
	return s.feeRepo.GetStructureByID(ctx, id)
}

// ListStructuresByBatch lists the active structures of a batch
func (s *FeeService) ListStructuresByBatch(ctx context.Context, batchID int64) ([]*models.FeeStructure, error) {
	return s.feeRepo.GetStructuresByBatch(ctx, batchID)
}

// RecordPayment records a payment in draft state. The discount granted to
// the student against the structure is applied automatically; the receipt
// number comes from the shared sequence.
func (s *FeeService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*models.FeePayment, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.feeRepo.GetStructureByID(ctx, req.FeeStructureID); err != nil {
		return nil, err
	}

	discounted, err := s.feeRepo.DiscountedTotal(ctx, req.StudentID, req.FeeStructureID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.sequenceRepo.NextReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	payment := &models.FeePayment{
		ReceiptNumber:  receipt,
		StudentID:      req.StudentID,
		FeeStructureID: req.FeeStructureID,
		Amount:         req.Amount,
		LateFee:        req.LateFee,
		DiscountAmount: discounted,
		PaymentDate:    time.Now(),
		PaymentMode:    req.PaymentMode,
		Reference:      req.Reference,
		Status:         models.PaymentDraft,
	}
	payment.ComputeTotal()

	if err := s.feeRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info().Str("receipt", receipt).Float64("total", payment.TotalAmount).Msg("Fee payment recorded")
	return payment, nil
}

// ChangePaymentStatus moves a payment through its lifecycle
func (s *FeeService) ChangePaymentStatus(ctx context.Context, id int64, status models.Status) error {
	payment, err := s.feeRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.FeePaymentTransitions, payment.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.feeRepo.UpdatePaymentStatus(ctx, id, status)
}

// ListPaymentsByStudent lists a student's payments
func (s *FeeService) ListPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	return s.feeRepo.GetPaymentsByStudent(ctx, studentID)
}

// CreateDiscount creates a discount scheme
func (s *FeeService) CreateDiscount(ctx context.Context, req dto.CreateFeeDiscountRequest) (*models.FeeDiscount, error) {
	discount := &models.FeeDiscount{
		Name:       req.Name,
		Code:       req.Code,
		Method:     req.Method,
		Percentage: req.Percentage,
		Amount:     req.Amount,
		Active:     true,
	}
	if err := discount.Validate(); err != nil {
		return nil, err
	}
	if err := s.feeRepo.CreateDiscount(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// ApplyDiscount grants a discount to a student against a structure. The
// applicable amount is computed from the structure total; a missing or
// inactive structure yields zero.
func (s *FeeService) ApplyDiscount(ctx context.Context, req dto.ApplyDiscountRequest) (*models.DiscountApplication, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	discount, err := s.feeRepo.GetDiscountByID(ctx, req.FeeDiscountID)
	if err != nil {
		return nil, err
	}
	if !discount.Active {
		return nil, apperrors.NewConflictError("discount scheme is inactive")
	}

	structure, err := s.feeRepo.GetStructureByID(ctx, req.FeeStructureID)
	if err != nil {
		return nil, err
	}

	application := &models.DiscountApplication{
		StudentID:        req.StudentID,
		FeeDiscountID:    req.FeeDiscountID,
		FeeStructureID:   req.FeeStructureID,
		ApplicableAmount: models.ApplicableDiscount(discount, structure),
		GrantedOn:        time.Now(),
	}
	if err := s.feeRepo.CreateDiscountApplication(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// StudentDue reports a student's outstanding balance against one structure
func (s *FeeService) StudentDue(ctx context.Context, studentID, structureID int64) (*dto.FeeDueResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	structure, err := s.feeRepo.GetStructureByID(ctx, structureID)
	if err != nil {
		return nil, err
	}

	paid, err := s.feeRepo.ConfirmedPaid(ctx, studentID, structureID)
	if err != nil {
		return nil, err
	}
	discounted, err := s.feeRepo.DiscountedTotal(ctx, studentID, structureID)
	if err != nil {
		return nil, err
	}

	due := structure.TotalAmount - paid - discounted
	if due < 0 {
		due = 0
	}

	return &dto.FeeDueResponse{
		StudentID:      studentID,
		FeeStructureID: structureID,
		StructureTotal: structure.TotalAmount,
		Paid:           paid,
		Discounted:     discounted,
		Due:            due,
	}, nil
}
