package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Academic structure errors
var (
	ErrAcademicYearNotFound  = errors.New("academic year not found")
	ErrAcademicYearDates     = errors.New("end date must be after start date")
	ErrCurrentYearExists     = errors.New("only one academic year can be current")
	ErrProgramNotFound       = errors.New("program not found")
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrBatchNotFound         = errors.New("batch not found")
	ErrCourseNotFound        = errors.New("course not found")
	ErrClassroomNotFound     = errors.New("classroom not found")
	ErrCodeAlreadyExists     = errors.New("code already exists")
	ErrIllegalStateChange    = errors.New("illegal state change")
)

// Student and faculty errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrFacultyNotFound        = errors.New("faculty member not found")
	ErrRegistrationExists     = errors.New("registration number already exists")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrStudentAlreadyPromoted = errors.New("student already promoted for this term")
)

// Timetable errors
var (
	ErrTimetableNotFound = errors.New("timetable entry not found")
	ErrFacultyConflict   = errors.New("faculty already has a class at this time")
	ErrClassroomConflict = errors.New("classroom already occupied at this time")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrTimeOutOfBounds   = errors.New("time must be between 0 and 24")
)

// Examination errors
var (
	ErrExaminationNotFound  = errors.New("examination not found")
	ErrExamScheduleNotFound = errors.New("exam schedule not found")
	ErrResultNotFound       = errors.New("exam result not found")
	ErrResultExists         = errors.New("result already exists for this student and course")
	ErrMarksOutOfRange      = errors.New("marks cannot exceed their maximum")
	ErrHallTicketNotFound   = errors.New("hall ticket not found")
	ErrHallTicketExists     = errors.New("hall ticket already generated for this student and examination")
	ErrStudentNotEligible   = errors.New("student is not eligible for this examination")
	ErrSeatTaken            = errors.New("seat already allocated for this exam")
	ErrStudentAlreadySeated = errors.New("student already has a seat for this exam")
	ErrGradeBandNotFound    = errors.New("no grade band covers this percentage")
)

// Fee errors
var (
	ErrFeeStructureNotFound = errors.New("fee structure not found")
	ErrPaymentNotFound      = errors.New("fee payment not found")
	ErrDiscountNotFound     = errors.New("fee discount not found")
	ErrDiscountPercentage   = errors.New("discount percentage must be between 0 and 100")
)

// Library and hostel errors
var (
	ErrBookNotFound        = errors.New("book not found")
	ErrNoCopiesAvailable   = errors.New("no copies available")
	ErrIssueNotFound       = errors.New("book issue not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrHostelRoomNotFound  = errors.New("hostel room not found")
	ErrRoomFull            = errors.New("room is already at capacity")
	ErrAlreadyAllocated    = errors.New("student already has an active hostel allocation")
)

// Wizard errors
var (
	ErrWizardRunning   = errors.New("another run of this wizard is already in progress")
	ErrEmptyImportFile = errors.New("no valid records found in the file")
)

// CustomError carries an underlying sentinel plus human-readable context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewResourceNotFoundError creates a not found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
