package models

import "time"

// Fine accrued per day past the due date
const FinePerDay = 5.0

// Default loan period for book issues
const LoanDays = 14

// Book defines a title in the 'books' table. AvailableCopies is decremented
// on issue and restored on return.
type Book struct {
	ID              int64  `json:"id" db:"id"`
	Title           string `json:"title" db:"title" example:"The Go Programming Language"`
	Author          string `json:"author" db:"author"`
	ISBN            string `json:"isbn" db:"isbn" example:"9780134190440"`
	Publisher       string `json:"publisher,omitempty" db:"publisher"`
	Category        string `json:"category,omitempty" db:"category"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies" example:"5"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies" example:"3"`
	Active          bool   `json:"active" db:"active"`
}

// Book issue statuses
const (
	IssueActive   Status = "issued"
	IssueReturned Status = "returned"
	IssueLost     Status = "lost"
)

// BookIssueTransitions lists the legal status changes for book issues
var BookIssueTransitions = map[Status][]Status{
	IssueActive: {IssueReturned, IssueLost},
}

// BookIssue defines one loan in the 'book_issues' table
type BookIssue struct {
	ID         int64      `json:"id" db:"id"`
	BookID     int64      `json:"bookId" db:"book_id"`
	StudentID  int64      `json:"studentId" db:"student_id"`
	IssuedOn   time.Time  `json:"issuedOn" db:"issued_on"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnedOn *time.Time `json:"returnedOn,omitempty" db:"returned_on"`
	Fine       float64    `json:"fine" db:"fine"`
	Status     Status     `json:"status" db:"status" example:"issued"`

	Book    *Book    `json:"book,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// IsOverdue reports whether an open loan has passed its due date
func (i *BookIssue) IsOverdue(now time.Time) bool {
	return i.Status == IssueActive && now.After(i.DueDate)
}

// AccruedFine computes the fine owed as of a reference time: whole days past
// the due date times the per-day rate. Loans within the period owe nothing.
func (i *BookIssue) AccruedFine(now time.Time) float64 {
	if !now.After(i.DueDate) {
		return 0
	}
	days := int(now.Sub(i.DueDate).Hours() / 24)
	return float64(days) * FinePerDay
}

// Reservation statuses
const (
	ReservationPending   Status = "pending"
	ReservationFulfilled Status = "fulfilled"
	ReservationExpired   Status = "expired"
	ReservationCancelled Status = "cancelled"
)

// BookReservationTransitions lists the legal status changes for reservations
var BookReservationTransitions = map[Status][]Status{
	ReservationPending: {ReservationFulfilled, ReservationExpired, ReservationCancelled},
}

// BookReservation defines a hold on a title in the 'book_reservations' table
type BookReservation struct {
	ID         int64     `json:"id" db:"id"`
	BookID     int64     `json:"bookId" db:"book_id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	ReservedOn time.Time `json:"reservedOn" db:"reserved_on"`
	ExpiresAt  time.Time `json:"expiresAt" db:"expires_at"`
	Status     Status    `json:"status" db:"status" example:"pending"`

	Book *Book `json:"book,omitempty"`
}
