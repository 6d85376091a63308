package services

import (
	"context"
	"strings"
	"time"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/helpers"
	"github.com/univera/univera/internal/pkg/logger"
	"github.com/univera/univera/internal/pkg/qr"
)

// HallTicketService handles eligibility checks, hall-ticket and ID-card
// issuance, seating generation and QR verification
type HallTicketService struct {
	ticketRepo   *repositories.HallTicketRepository
	examRepo     *repositories.ExaminationRepository
	studentRepo  *repositories.StudentRepository
	feeRepo      *repositories.FeeRepository
	catalogRepo  *repositories.CatalogRepository
	sequenceRepo *repositories.SequenceRepository
}

// NewHallTicketService creates a new hall ticket service instance
func NewHallTicketService(
	ticketRepo *repositories.HallTicketRepository,
	examRepo *repositories.ExaminationRepository,
	studentRepo *repositories.StudentRepository,
	feeRepo *repositories.FeeRepository,
	catalogRepo *repositories.CatalogRepository,
	sequenceRepo *repositories.SequenceRepository,
) *HallTicketService {
	return &HallTicketService{
		ticketRepo:   ticketRepo,
		examRepo:     examRepo,
		studentRepo:  studentRepo,
		feeRepo:      feeRepo,
		catalogRepo:  catalogRepo,
		sequenceRepo: sequenceRepo,
	}
}

// totalDue sums the student's outstanding balance across the active fee
// structures of their batch, floored at zero per structure
func (s *HallTicketService) totalDue(ctx context.Context, student *models.Student) (float64, error) {
	structures, err := s.feeRepo.GetStructuresByBatch(ctx, student.BatchID)
	if err != nil {
		return 0, err
	}

	var due float64
	for _, structure := range structures {
		paid, err := s.feeRepo.ConfirmedPaid(ctx, student.ID, structure.ID)
		if err != nil {
			return 0, err
		}
		discounted, err := s.feeRepo.DiscountedTotal(ctx, student.ID, structure.ID)
		if err != nil {
			return 0, err
		}
		if remaining := structure.TotalAmount - paid - discounted; remaining > 0 {
			due += remaining
		}
	}
	return due, nil
}

// CheckEligibility gathers attendance, fee dues and open discipline cases
// and applies the three hall-ticket gates
func (s *HallTicketService) CheckEligibility(ctx context.Context, examinationID, studentID int64) (*dto.EligibilityResponse, error) {
	if _, err := s.examRepo.GetByID(ctx, examinationID); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	present, total, err := s.studentRepo.AttendanceSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	attendance := models.AttendancePercentage(present, total)

	due, err := s.totalDue(ctx, student)
	if err != nil {
		return nil, err
	}

	openDiscipline, err := s.studentRepo.HasBlockingDiscipline(ctx, studentID)
	if err != nil {
		return nil, err
	}

	result := models.CheckEligibility(models.EligibilityInput{
		AttendancePercent: attendance,
		FeeDue:            due,
		OpenDiscipline:    openDiscipline,
	})

	return &dto.EligibilityResponse{
		StudentID:         studentID,
		ExaminationID:     examinationID,
		Eligible:          result.Eligible,
		Reasons:           result.Reasons,
		AttendancePercent: attendance,
		FeeDue:            due,
	}, nil
}

// GenerateHallTicket issues a hall ticket for an eligible student. Repeated
// calls fail while a non-cancelled ticket exists.
func (s *HallTicketService) GenerateHallTicket(ctx context.Context, examinationID, studentID int64) (*models.HallTicket, error) {
	exam, err := s.examRepo.GetByID(ctx, examinationID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.ticketRepo.Exists(ctx, examinationID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrHallTicketExists
	}

	eligibility, err := s.CheckEligibility(ctx, examinationID, studentID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotEligible,
			strings.Join(eligibility.Reasons, "; "))
	}

	number, err := s.sequenceRepo.NextHallTicketNumber(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &models.HallTicket{
		TicketNumber:  number,
		ExaminationID: examinationID,
		StudentID:     studentID,
		Status:        models.TicketDraft,
		GeneratedAt:   time.Now(),
		QRPayload:     qr.HallTicketPayload(number, student.RegistrationNumber, student.Name(), exam.Name),
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", studentID).Str("ticket", number).Msg("Hall ticket generated")
	return ticket, nil
}

// GetHallTicket retrieves a hall ticket
func (s *HallTicketService) GetHallTicket(ctx context.Context, id int64) (*models.HallTicket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

// HallTicketQR renders a ticket's QR payload as PNG. Every render counts as
// a download; an issued ticket moves to downloaded on its first one.
func (s *HallTicketService) HallTicketQR(ctx context.Context, id int64) ([]byte, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := ticket.Status
	if models.CanTransition(models.HallTicketTransitions, status, models.TicketDownloaded) {
		status = models.TicketDownloaded
	}
	if err := s.ticketRepo.RecordDownload(ctx, id, status); err != nil {
		return nil, err
	}

	return qr.EncodePNG(ticket.QRPayload)
}

// ChangeTicketStatus moves a hall ticket through its lifecycle
func (s *HallTicketService) ChangeTicketStatus(ctx context.Context, id int64, status models.Status) error {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.HallTicketTransitions, ticket.Status, status) {
		return apperrors.ErrIllegalStateChange
	}
	return s.ticketRepo.UpdateStatus(ctx, id, status)
}

// IssueIDCard issues an ID card for a student lacking an active one
func (s *HallTicketService) IssueIDCard(ctx context.Context, studentID int64, validYears int) (*models.StudentIDCard, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	hasCard, err := s.ticketRepo.HasActiveIDCard(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if hasCard {
		return nil, apperrors.NewConflictError("student already holds an active ID card")
	}

	if validYears <= 0 {
		validYears = 4
	}

	number, err := s.sequenceRepo.NextCardNumber(ctx)
	if err != nil {
		return nil, err
	}

	programName := ""
	if program, err := s.catalogRepo.GetProgramByID(ctx, student.ProgramID); err == nil {
		programName = program.Name
	}

	issued := time.Now()
	validUntil := issued.AddDate(validYears, 0, 0)

	card := &models.StudentIDCard{
		CardNumber: number,
		StudentID:  studentID,
		IssuedOn:   issued,
		ValidUntil: validUntil,
		Status:     models.CardActive,
		QRPayload: qr.IDCardPayload(number, student.RegistrationNumber, student.Name(),
			programName, validUntil.Format("2006-01-02")),
	}
	if err := s.ticketRepo.CreateIDCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// GenerateSeating assigns seats to a batch's enrolled students for an
// examination, 30 per room in registration order. Regeneration replaces
// the previous plan.
func (s *HallTicketService) GenerateSeating(ctx context.Context, examinationID, batchID int64) ([]*models.SeatAllocation, error) {
	if _, err := s.examRepo.GetByID(ctx, examinationID); err != nil {
		return nil, err
	}

	studentIDs, err := s.studentRepo.GetIDsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return nil, apperrors.NewBadRequestError("batch has no enrolled students")
	}

	allocations := models.GenerateSeating(examinationID, studentIDs)
	if err := s.ticketRepo.ReplaceSeating(ctx, examinationID, allocations); err != nil {
		return nil, err
	}

	return s.ticketRepo.GetSeating(ctx, examinationID)
}

// GetSeating lists the seat allocations of an examination
func (s *HallTicketService) GetSeating(ctx context.Context, examinationID int64) ([]*models.SeatAllocation, error) {
	return s.ticketRepo.GetSeating(ctx, examinationID)
}

// VerifyHallTicket answers a public QR lookup by ticket number plus the
// student's date of birth. The second factor keeps the public endpoint from
// disclosing student details for guessed ticket numbers.
func (s *HallTicketService) VerifyHallTicket(ctx context.Context, number string, dateOfBirth time.Time) (*dto.VerifyResponse, error) {
	ticket, err := s.ticketRepo.GetByNumber(ctx, number)
	if err != nil {
		return &dto.VerifyResponse{Valid: false, Kind: "hall_ticket"}, nil
	}

	student, err := s.studentRepo.GetByID(ctx, ticket.StudentID)
	if err != nil {
		return nil, err
	}

	if student.DateOfBirth == nil || !helpers.SameDate(*student.DateOfBirth, dateOfBirth) {
		return &dto.VerifyResponse{Valid: false, Kind: "hall_ticket"}, nil
	}

	return &dto.VerifyResponse{
		Valid:              ticket.Status != models.TicketCancelled,
		Kind:               "hall_ticket",
		Number:             ticket.TicketNumber,
		StudentName:        student.Name(),
		RegistrationNumber: student.RegistrationNumber,
		Status:             string(ticket.Status),
	}, nil
}

// VerifyIDCard answers a public QR lookup by card number
func (s *HallTicketService) VerifyIDCard(ctx context.Context, number string) (*dto.VerifyResponse, error) {
	card, err := s.ticketRepo.GetIDCardByNumber(ctx, number)
	if err != nil {
		return &dto.VerifyResponse{Valid: false, Kind: "id_card"}, nil
	}

	student, err := s.studentRepo.GetByID(ctx, card.StudentID)
	if err != nil {
		return nil, err
	}

	valid := card.Status == models.CardActive && time.Now().Before(card.ValidUntil)
	return &dto.VerifyResponse{
		Valid:              valid,
		Kind:               "id_card",
		Number:             card.CardNumber,
		StudentName:        student.Name(),
		RegistrationNumber: student.RegistrationNumber,
		Status:             string(card.Status),
	}, nil
}
