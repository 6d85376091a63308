package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/pkg/apperrors"
)

// errorMapping ties a sentinel error to its HTTP status and response code
type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
}

// Mappings are checked in order; the first errors.Is match wins. Messages
// come from the error itself so CustomError context reaches the client.
var errorMappings = []errorMapping{
	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeUnauthorized},

	// Business rules
	{apperrors.ErrFacultyConflict, http.StatusConflict, dto.ErrorCodeScheduleConflict},
	{apperrors.ErrClassroomConflict, http.StatusConflict, dto.ErrorCodeScheduleConflict},
	{apperrors.ErrStudentNotEligible, http.StatusUnprocessableEntity, dto.ErrorCodeNotEligible},
	{apperrors.ErrWizardRunning, http.StatusConflict, dto.ErrorCodeWizardRunning},
	{apperrors.ErrIllegalStateChange, http.StatusConflict, dto.ErrorCodeIllegalStateChange},

	// Already-exists conflicts
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrRegistrationExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrCodeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrResultExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrHallTicketExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrAlreadyAllocated, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrCurrentYearExists, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrSeatTaken, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrStudentAlreadySeated, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrNoCopiesAvailable, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrRoomFull, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceConflict},

	// Validation
	{apperrors.ErrAcademicYearDates, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrInvalidTimeRange, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrTimeOutOfBounds, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrMarksOutOfRange, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrDiscountPercentage, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrEmptyImportFile, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrGradeBandNotFound, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},

	// Not found (the generic sentinel goes last so specific ones match first)
	{apperrors.ErrAcademicYearNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrDepartmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrProgramNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrBatchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrClassroomNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrFacultyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrTimetableNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrExaminationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrExamScheduleNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResultNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrHallTicketNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrFeeStructureNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrPaymentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrDiscountNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrBookNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrIssueNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrReservationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrHostelRoomNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
}

// HandleAPIError translates application errors into the standard error
// response envelope
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			errorDetail := dto.NewErrorDetail(m.code, err.Error())
			c.JSON(m.status, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
}
