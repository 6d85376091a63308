package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// LibraryRepository handles database operations for books, issues and
// reservations
type LibraryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateBook inserts a title into the catalogue
func (r *LibraryRepository) CreateBook(ctx context.Context, b *models.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, publisher, category, total_copies, available_copies, active)
		VALUES ($1, $2, $3, $4, $5, $6, $6, TRUE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.ISBN, b.Publisher, b.Category, b.TotalCopies,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("error creating book: %w", err)
	}
	b.AvailableCopies = b.TotalCopies
	return nil
}

// GetBookByID retrieves a book by ID
func (r *LibraryRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	err := r.db.QueryRow(ctx, `
		SELECT id, title, author, isbn, publisher, category, total_copies, available_copies, active
		FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Publisher, &b.Category,
			&b.TotalCopies, &b.AvailableCopies, &b.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}
	return &b, nil
}

// SearchBooks lists active titles matching a text query
func (r *LibraryRepository) SearchBooks(ctx context.Context, search string) ([]*models.Book, error) {
	where := squirrel.And{squirrel.Eq{"active": true}}
	if search != "" {
		pattern := "%" + search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"author": pattern},
			squirrel.Eq{"isbn": search},
		})
	}

	querySQL, args, err := r.sb.Select(
		"id", "title", "author", "isbn", "publisher", "category",
		"total_copies", "available_copies", "active").
		From("books").
		Where(where).
		OrderBy("title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building book search query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Publisher, &b.Category,
			&b.TotalCopies, &b.AvailableCopies, &b.Active); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

// IssueBook lends a copy: decrements availability and inserts the issue row
// in one transaction. The conditional update is the availability check.
func (r *LibraryRepository) IssueBook(ctx context.Context, issue *models.BookIssue) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE books SET available_copies = available_copies - 1
		WHERE id = $1 AND available_copies > 0`, issue.BookID)
	if err != nil {
		return fmt.Errorf("error reserving book copy: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoCopiesAvailable
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO book_issues (book_id, student_id, issued_on, due_date, fine, status)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id`,
		issue.BookID, issue.StudentID, issue.IssuedOn, issue.DueDate, issue.Status).Scan(&issue.ID)
	if err != nil {
		return fmt.Errorf("error creating book issue: %w", err)
	}

	return tx.Commit(ctx)
}

// GetIssueByID retrieves a book issue by ID
func (r *LibraryRepository) GetIssueByID(ctx context.Context, id int64) (*models.BookIssue, error) {
	var i models.BookIssue
	err := r.db.QueryRow(ctx, `
		SELECT id, book_id, student_id, issued_on, due_date, returned_on, fine, status
		FROM book_issues WHERE id = $1`, id).
		Scan(&i.ID, &i.BookID, &i.StudentID, &i.IssuedOn, &i.DueDate, &i.ReturnedOn, &i.Fine, &i.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving book issue: %w", err)
	}
	return &i, nil
}

// ReturnBook closes an issue and restores the copy in one transaction
func (r *LibraryRepository) ReturnBook(ctx context.Context, issue *models.BookIssue) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE book_issues SET returned_on = $1, fine = $2, status = $3
		WHERE id = $4 AND status = $5`,
		issue.ReturnedOn, issue.Fine, models.IssueReturned, issue.ID, models.IssueActive)
	if err != nil {
		return fmt.Errorf("error closing book issue: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssueNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE books SET available_copies = available_copies + 1 WHERE id = $1`, issue.BookID); err != nil {
		return fmt.Errorf("error restoring book copy: %w", err)
	}

	return tx.Commit(ctx)
}

// GetOverdueIssues lists open issues past their due date
func (r *LibraryRepository) GetOverdueIssues(ctx context.Context, asOf time.Time) ([]*models.BookIssue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, book_id, student_id, issued_on, due_date, returned_on, fine, status
		FROM book_issues WHERE status = $1 AND due_date < $2`, models.IssueActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []*models.BookIssue
	for rows.Next() {
		var i models.BookIssue
		if err := rows.Scan(&i.ID, &i.BookID, &i.StudentID, &i.IssuedOn, &i.DueDate, &i.ReturnedOn, &i.Fine, &i.Status); err != nil {
			return nil, err
		}
		issues = append(issues, &i)
	}
	return issues, rows.Err()
}

// UpdateIssueFine rewrites the accrued fine on an open issue
func (r *LibraryRepository) UpdateIssueFine(ctx context.Context, id int64, fine float64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE book_issues SET fine = $1 WHERE id = $2`, fine, id)
	if err != nil {
		return fmt.Errorf("error updating issue fine: %w", err)
	}
	return nil
}

// OutstandingFines sums the unpaid fines on a student's open issues
func (r *LibraryRepository) OutstandingFines(ctx context.Context, studentID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(fine), 0) FROM book_issues WHERE student_id = $1 AND status = $2`,
		studentID, models.IssueActive).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing fines: %w", err)
	}
	return total, nil
}

// CreateReservation places a hold on a title
func (r *LibraryRepository) CreateReservation(ctx context.Context, res *models.BookReservation) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO book_reservations (book_id, student_id, reserved_on, expires_at, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		res.BookID, res.StudentID, res.ReservedOn, res.ExpiresAt, res.Status).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("error creating reservation: %w", err)
	}
	return nil
}

// GetReservationByID retrieves a reservation by ID
func (r *LibraryRepository) GetReservationByID(ctx context.Context, id int64) (*models.BookReservation, error) {
	var res models.BookReservation
	err := r.db.QueryRow(ctx, `
		SELECT id, book_id, student_id, reserved_on, expires_at, status
		FROM book_reservations WHERE id = $1`, id).
		Scan(&res.ID, &res.BookID, &res.StudentID, &res.ReservedOn, &res.ExpiresAt, &res.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("error retrieving reservation: %w", err)
	}
	return &res, nil
}

// UpdateReservationStatus moves a reservation to a new status
func (r *LibraryRepository) UpdateReservationStatus(ctx context.Context, id int64, status models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE book_reservations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReservationNotFound
	}
	return nil
}

// ExpirePendingReservations marks pending holds past their expiry as expired
// and returns how many rows moved
func (r *LibraryRepository) ExpirePendingReservations(ctx context.Context, asOf time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE book_reservations SET status = $1
		WHERE status = $2 AND expires_at < $3`,
		models.ReservationExpired, models.ReservationPending, asOf)
	if err != nil {
		return 0, fmt.Errorf("error expiring reservations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
