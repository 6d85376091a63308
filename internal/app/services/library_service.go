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

// Reservations expire after this long if not fulfilled
const reservationWindow = 48 * time.Hour

// LibraryService handles the catalogue, loans, fines and reservations
type LibraryService struct {
	libraryRepo *repositories.LibraryRepository
	studentRepo *repositories.StudentRepository
}

// NewLibraryService creates a new library service instance
func NewLibraryService(libraryRepo *repositories.LibraryRepository, studentRepo *repositories.StudentRepository) *LibraryService {
	return &LibraryService{
		libraryRepo: libraryRepo,
		studentRepo: studentRepo,
	}
}

// AddBook adds a title to the catalogue
func (s *LibraryService) AddBook(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Publisher:   req.Publisher,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	}
	if err := s.libraryRepo.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// SearchBooks lists titles matching a text query
func (s *LibraryService) SearchBooks(ctx context.Context, search string) ([]*models.Book, error) {
	return s.libraryRepo.SearchBooks(ctx, search)
}

// IssueBook lends a copy to a student for the loan period
func (s *LibraryService) IssueBook(ctx context.Context, req dto.IssueBookRequest) (*models.BookIssue, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.libraryRepo.GetBookByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	loanDays := req.LoanDays
	if loanDays <= 0 {
		loanDays = models.LoanDays
	}

	now := time.Now()
	issue := &models.BookIssue{
		BookID:    req.BookID,
		StudentID: req.StudentID,
		IssuedOn:  now,
		DueDate:   now.AddDate(0, 0, loanDays),
		Status:    models.IssueActive,
	}
	if err := s.libraryRepo.IssueBook(ctx, issue); err != nil {
		return nil, err
	}

	logger.Info().Int64("bookId", req.BookID).Int64("studentId", req.StudentID).Msg("Book issued")
	return issue, nil
}

// ReturnBook closes a loan, computing the fine for late returns
func (s *LibraryService) ReturnBook(ctx context.Context, issueID int64) (*dto.ReturnBookResponse, error) {
	issue, err := s.libraryRepo.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.Status != models.IssueActive {
		return nil, apperrors.NewConflictError("book issue is already closed")
	}

	now := time.Now()
	issue.Fine = issue.AccruedFine(now)
	issue.ReturnedOn = &now

	if err := s.libraryRepo.ReturnBook(ctx, issue); err != nil {
		return nil, err
	}

	return &dto.ReturnBookResponse{
		IssueID: issueID,
		Fine:    issue.Fine,
		Overdue: issue.Fine > 0,
	}, nil
}

// ReserveBook places a hold on a title. Holds only make sense when no copy
// is on the shelf.
func (s *LibraryService) ReserveBook(ctx context.Context, req dto.ReserveBookRequest) (*models.BookReservation, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	book, err := s.libraryRepo.GetBookByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if book.AvailableCopies > 0 {
		return nil, apperrors.NewConflictError("copies are available, issue the book instead")
	}

	now := time.Now()
	reservation := &models.BookReservation{
		BookID:     req.BookID,
		StudentID:  req.StudentID,
		ReservedOn: now,
		ExpiresAt:  now.Add(reservationWindow),
		Status:     models.ReservationPending,
	}
	if err := s.libraryRepo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// CancelReservation cancels a pending hold
func (s *LibraryService) CancelReservation(ctx context.Context, id int64) error {
	reservation, err := s.libraryRepo.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(models.BookReservationTransitions, reservation.Status, models.ReservationCancelled) {
		return apperrors.ErrIllegalStateChange
	}
	return s.libraryRepo.UpdateReservationStatus(ctx, id, models.ReservationCancelled)
}

// SweepOverdues refreshes the accrued fines on open overdue loans. Returns
// how many loans were touched. The scheduler runs this periodically.
func (s *LibraryService) SweepOverdues(ctx context.Context) (int, error) {
	now := time.Now()
	issues, err := s.libraryRepo.GetOverdueIssues(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, issue := range issues {
		fine := issue.AccruedFine(now)
		if fine == issue.Fine {
			continue
		}
		if err := s.libraryRepo.UpdateIssueFine(ctx, issue.ID, fine); err != nil {
			logger.Warn().Err(err).Int64("issueId", issue.ID).Msg("Failed to refresh overdue fine")
		}
	}
	return len(issues), nil
}

// SweepExpiredReservations expires pending holds past their window
func (s *LibraryService) SweepExpiredReservations(ctx context.Context) (int64, error) {
	return s.libraryRepo.ExpirePendingReservations(ctx, time.Now())
}
