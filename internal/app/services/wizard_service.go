package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/repositories"
	"github.com/univera/univera/internal/pkg/apperrors"
	"github.com/univera/univera/internal/pkg/cache"
	"github.com/univera/univera/internal/pkg/logger"
)

// Initial password for bulk-imported accounts, to be changed on first login
const importInitialPassword = "ChangeMe123!"

// Reminders for the same student and structure are suppressed within this window
const reminderCooldown = 24 * time.Hour

// Wizard lock names
const (
	lockImportStudents  = "wizard:import_students"
	lockPromoteStudents = "wizard:promote_students"
	lockPublishResults  = "wizard:publish_results"
	lockBulkHallTickets = "wizard:bulk_hall_tickets"
	lockBulkIDCards     = "wizard:bulk_id_cards"
	lockFeeReminders    = "wizard:fee_reminders"
)

// WizardService runs the bulk administrative operations: student import,
// semester promotion, result publication, bulk hall tickets and ID cards,
// and fee reminders. Each wizard holds a Redis lock for the duration of its
// run so concurrent invocations do not interleave.
type WizardService struct {
	cache          *cache.Cache
	studentService *StudentService
	ticketService  *HallTicketService
	studentRepo    *repositories.StudentRepository
	examRepo       *repositories.ExaminationRepository
	feeRepo        *repositories.FeeRepository
	catalogRepo    *repositories.CatalogRepository
}

// NewWizardService creates a new wizard service instance
func NewWizardService(
	c *cache.Cache,
	studentService *StudentService,
	ticketService *HallTicketService,
	studentRepo *repositories.StudentRepository,
	examRepo *repositories.ExaminationRepository,
	feeRepo *repositories.FeeRepository,
	catalogRepo *repositories.CatalogRepository,
) *WizardService {
	return &WizardService{
		cache:          c,
		studentService: studentService,
		ticketService:  ticketService,
		studentRepo:    studentRepo,
		examRepo:       examRepo,
		feeRepo:        feeRepo,
		catalogRepo:    catalogRepo,
	}
}

// withLock runs fn under a named wizard lock. A second caller gets
// ErrWizardRunning until the first run releases the lock or its TTL lapses.
func (s *WizardService) withLock(ctx context.Context, name string, fn func() error) error {
	acquired, err := s.cache.AcquireLock(ctx, name, cache.TTLWizardLock)
	if err != nil {
		return err
	}
	if !acquired {
		return apperrors.ErrWizardRunning
	}
	defer func() {
		if err := s.cache.ReleaseLock(ctx, name); err != nil {
			logger.Warn().Err(err).Str("lock", name).Msg("Failed to release wizard lock")
		}
	}()
	return fn()
}

// importRow is one parsed data row of an import file
type importRow struct {
	row    int
	name   string
	email  string
	mobile string
	gender string
	dob    *time.Time
}

// normalizeHeader folds a column header to its canonical form
func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// mapHeaders resolves column positions from the header row. Unknown columns
// are ignored.
func mapHeaders(header []string) map[string]int {
	columns := make(map[string]int)
	for i, h := range header {
		switch normalizeHeader(h) {
		case "name", "student_name":
			columns["name"] = i
		case "email":
			columns["email"] = i
		case "mobile", "phone":
			columns["mobile"] = i
		case "dob", "date_of_birth":
			columns["dob"] = i
		case "gender":
			columns["gender"] = i
		}
	}
	return columns
}

func cellAt(record []string, idx int, ok bool) string {
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// buildRow converts one raw record into an importRow. rowNum is the row's
// position in the source file, header included.
func buildRow(rowNum int, record []string, columns map[string]int) (importRow, error) {
	nameIdx, nameOK := columns["name"]
	emailIdx, emailOK := columns["email"]
	mobileIdx, mobileOK := columns["mobile"]
	dobIdx, dobOK := columns["dob"]
	genderIdx, genderOK := columns["gender"]

	row := importRow{
		row:    rowNum,
		name:   cellAt(record, nameIdx, nameOK),
		email:  cellAt(record, emailIdx, emailOK),
		mobile: cellAt(record, mobileIdx, mobileOK),
		gender: cellAt(record, genderIdx, genderOK),
	}
	if row.name == "" || row.email == "" {
		return row, fmt.Errorf("name and email are required")
	}

	if raw := cellAt(record, dobIdx, dobOK); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return row, fmt.Errorf("invalid date of birth %q, expected YYYY-MM-DD", raw)
		}
		row.dob = &parsed
	}
	return row, nil
}

// parseImportFile reads all records from a CSV or XLSX upload. The first
// record is the header; the rest are data rows.
func parseImportFile(filename string, file io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return nil, apperrors.NewBadRequestError("could not parse CSV file: " + err.Error())
		}
		return records, nil
	case ".xlsx":
		book, err := excelize.OpenReader(file)
		if err != nil {
			return nil, apperrors.NewBadRequestError("could not parse XLSX file: " + err.Error())
		}
		defer book.Close()
		rows, err := book.GetRows(book.GetSheetName(0))
		if err != nil {
			return nil, apperrors.NewBadRequestError("could not read XLSX sheet: " + err.Error())
		}
		return rows, nil
	default:
		return nil, apperrors.NewBadRequestError("unsupported file type, expected .csv or .xlsx")
	}
}

// admitRows walks the data rows of a parsed import file, feeding each valid
// row to admit. A row that fails to parse or admit becomes a row error; the
// remaining rows still proceed.
func admitRows(records [][]string, columns map[string]int, result *dto.BulkResult, admit func(row importRow, firstName, lastName string) error) {
	for i, record := range records[1:] {
		rowNum := i + 2
		row, err := buildRow(rowNum, record, columns)
		if err != nil {
			result.AddRowError(rowNum, err.Error())
			continue
		}

		parts := strings.Fields(row.name)
		firstName := parts[0]
		lastName := strings.Join(parts[1:], " ")

		if err := admit(row, firstName, lastName); err != nil {
			result.AddRowError(rowNum, err.Error())
			continue
		}
		result.Created++
	}
}

// ImportStudents bulk-admits students from an uploaded CSV or XLSX file.
// Rows that fail validation or admission are collected as row errors while
// the rest proceed.
func (s *WizardService) ImportStudents(ctx context.Context, req dto.ImportStudentsRequest, filename string, file io.Reader) (*dto.BulkResult, error) {
	result := &dto.BulkResult{}

	err := s.withLock(ctx, lockImportStudents, func() error {
		records, err := parseImportFile(filename, file)
		if err != nil {
			return err
		}
		if len(records) < 2 {
			return apperrors.ErrEmptyImportFile
		}

		columns := mapHeaders(records[0])
		if _, ok := columns["name"]; !ok {
			return apperrors.NewBadRequestError("file is missing a name column")
		}
		if _, ok := columns["email"]; !ok {
			return apperrors.NewBadRequestError("file is missing an email column")
		}

		admitRows(records, columns, result, func(row importRow, firstName, lastName string) error {
			_, err := s.studentService.AdmitStudent(ctx, dto.CreateStudentRequest{
				Email:        row.email,
				Password:     importInitialPassword,
				FirstName:    firstName,
				LastName:     lastName,
				ProgramID:    req.ProgramID,
				DepartmentID: req.DepartmentID,
				BatchID:      req.BatchID,
				DateOfBirth:  row.dob,
				Gender:       row.gender,
				Mobile:       row.mobile,
			})
			return err
		})

		logger.Info().Int("created", result.Created).Int("skipped", result.Skipped).
			Str("file", filename).Msg("Student import finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PromoteStudents moves a batch's enrolled students to the next semester.
// Students failing more published courses than MaxBacklogs allows are held
// back and reported as row errors.
func (s *WizardService) PromoteStudents(ctx context.Context, req dto.PromoteStudentsRequest) (*dto.BulkResult, error) {
	result := &dto.BulkResult{}

	err := s.withLock(ctx, lockPromoteStudents, func() error {
		if _, err := s.catalogRepo.GetBatchByID(ctx, req.BatchID); err != nil {
			return err
		}

		studentIDs, err := s.studentRepo.GetIDsByBatch(ctx, req.BatchID)
		if err != nil {
			return err
		}

		for i, studentID := range studentIDs {
			ordinal := i + 1
			student, err := s.studentRepo.GetByID(ctx, studentID)
			if err != nil {
				result.AddRowError(ordinal, err.Error())
				continue
			}

			backlogs, err := s.examRepo.FailedCourseCount(ctx, studentID, req.SemesterID)
			if err != nil {
				result.AddRowError(ordinal, err.Error())
				continue
			}
			if backlogs > req.MaxBacklogs {
				result.AddRowError(ordinal, fmt.Sprintf("%s held back with %d backlogs", student.RegistrationNumber, backlogs))
				continue
			}

			if err := s.studentRepo.UpdateSemester(ctx, studentID, student.CurrentSemester+1); err != nil {
				result.AddRowError(ordinal, err.Error())
				continue
			}
			result.Created++
		}

		logger.Info().Int64("batchId", req.BatchID).Int("promoted", result.Created).
			Int("heldBack", result.Skipped).Msg("Promotion finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PublishResults publishes every verified result of an examination in one
// step and returns the number published
func (s *WizardService) PublishResults(ctx context.Context, req dto.PublishResultsRequest) (int64, error) {
	var published int64

	err := s.withLock(ctx, lockPublishResults, func() error {
		if _, err := s.examRepo.GetByID(ctx, req.ExaminationID); err != nil {
			return err
		}

		count, err := s.examRepo.PublishVerified(ctx, req.ExaminationID)
		if err != nil {
			return err
		}
		published = count

		logger.Info().Int64("examId", req.ExaminationID).Int64("published", count).Msg("Results published")
		return nil
	})
	return published, err
}

// BulkHallTickets generates hall tickets for every eligible student of a
// batch. Ineligible students and students already holding a ticket are
// reported as row errors.
func (s *WizardService) BulkHallTickets(ctx context.Context, req dto.BulkHallTicketsRequest) (*dto.BulkResult, error) {
	result := &dto.BulkResult{}

	err := s.withLock(ctx, lockBulkHallTickets, func() error {
		studentIDs, err := s.studentRepo.GetIDsByBatch(ctx, req.BatchID)
		if err != nil {
			return err
		}

		for i, studentID := range studentIDs {
			if _, err := s.ticketService.GenerateHallTicket(ctx, req.ExaminationID, studentID); err != nil {
				result.AddRowError(i+1, err.Error())
				continue
			}
			result.Created++
		}

		logger.Info().Int64("examId", req.ExaminationID).Int("generated", result.Created).
			Int("skipped", result.Skipped).Msg("Bulk hall ticket run finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkIDCards issues ID cards to every student of a batch lacking an active
// card
func (s *WizardService) BulkIDCards(ctx context.Context, req dto.BulkIDCardsRequest) (*dto.BulkResult, error) {
	result := &dto.BulkResult{}

	err := s.withLock(ctx, lockBulkIDCards, func() error {
		studentIDs, err := s.studentRepo.GetIDsByBatch(ctx, req.BatchID)
		if err != nil {
			return err
		}

		for i, studentID := range studentIDs {
			if _, err := s.ticketService.IssueIDCard(ctx, studentID, req.ValidYears); err != nil {
				result.AddRowError(i+1, err.Error())
				continue
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// remindStructure records a reminder for every student of the structure's
// batch still owing against it. Students reminded within the cooldown are
// skipped.
func (s *WizardService) remindStructure(ctx context.Context, structure *models.FeeStructure, channel string, result *dto.BulkResult) error {
	studentIDs, err := s.studentRepo.GetIDsByBatch(ctx, structure.BatchID)
	if err != nil {
		return err
	}

	now := time.Now()
	for i, studentID := range studentIDs {
		paid, err := s.feeRepo.ConfirmedPaid(ctx, studentID, structure.ID)
		if err != nil {
			result.AddRowError(i+1, err.Error())
			continue
		}
		discounted, err := s.feeRepo.DiscountedTotal(ctx, studentID, structure.ID)
		if err != nil {
			result.AddRowError(i+1, err.Error())
			continue
		}

		due := structure.TotalAmount - paid - discounted
		if due <= 0 {
			continue
		}

		reminded, err := s.feeRepo.RemindedRecently(ctx, studentID, structure.ID, now.Add(-reminderCooldown))
		if err != nil {
			result.AddRowError(i+1, err.Error())
			continue
		}
		if reminded {
			result.Skipped++
			continue
		}

		reminder := &models.FeeReminder{
			StudentID:      studentID,
			FeeStructureID: structure.ID,
			DueAmount:      due,
			SentAt:         now,
			Channel:        channel,
		}
		if err := s.feeRepo.CreateReminder(ctx, reminder); err != nil {
			result.AddRowError(i+1, err.Error())
			continue
		}
		result.Created++
	}
	return nil
}

// SendFeeReminders sends reminders for unpaid dues against one structure
func (s *WizardService) SendFeeReminders(ctx context.Context, req dto.SendFeeRemindersRequest) (*dto.BulkResult, error) {
	result := &dto.BulkResult{}

	channel := req.Channel
	if channel == "" {
		channel = "email"
	}

	err := s.withLock(ctx, lockFeeReminders, func() error {
		structure, err := s.feeRepo.GetStructureByID(ctx, req.FeeStructureID)
		if err != nil {
			return err
		}
		if err := s.remindStructure(ctx, structure, channel, result); err != nil {
			return err
		}

		logger.Info().Int64("structureId", req.FeeStructureID).Int("sent", result.Created).
			Int("skipped", result.Skipped).Msg("Fee reminder run finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SweepDueReminders sends reminders for every active structure past its due
// date. The scheduler runs this periodically; runs that lose the lock race
// report zero work.
func (s *WizardService) SweepDueReminders(ctx context.Context) (int, error) {
	result := &dto.BulkResult{}

	err := s.withLock(ctx, lockFeeReminders, func() error {
		structures, err := s.feeRepo.StructuresPastDue(ctx, time.Now())
		if err != nil {
			return err
		}
		for _, structure := range structures {
			if err := s.remindStructure(ctx, structure, "email", result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrWizardRunning) {
			return 0, nil
		}
		return 0, err
	}
	return result.Created, nil
}
