package dto

// RowError reports one failed row of a bulk operation. Rows are numbered as
// in the source file, header included.
type RowError struct {
	Row     int    `json:"row" example:"7"`
	Message string `json:"message" example:"email already exists"`
}

// BulkResult summarizes a bulk operation. Failed rows never abort the run;
// they are collected here while the rest proceed.
type BulkResult struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors,omitempty"`
}

// AddRowError appends a failure for the given source row
func (r *BulkResult) AddRowError(row int, message string) {
	r.Skipped++
	r.Errors = append(r.Errors, RowError{Row: row, Message: message})
}

// ImportStudentsRequest bulk-admits students from an uploaded CSV or XLSX
// file. The file arrives as multipart form data; these fields ride alongside.
type ImportStudentsRequest struct {
	ProgramID    int64 `form:"programId" binding:"required"`
	DepartmentID int64 `form:"departmentId" binding:"required"`
	BatchID      int64 `form:"batchId" binding:"required"`
}

// PromoteStudentsRequest moves a batch's students to the next semester.
// Students failing more than MaxBacklogs published courses are held back.
type PromoteStudentsRequest struct {
	BatchID     int64 `json:"batchId" binding:"required"`
	SemesterID  int64 `json:"semesterId" binding:"required"`
	MaxBacklogs int   `json:"maxBacklogs" example:"2"`
}

// PublishResultsRequest publishes all verified results of an examination
type PublishResultsRequest struct {
	ExaminationID int64 `json:"examinationId" binding:"required"`
}

// BulkHallTicketsRequest generates hall tickets for every eligible student
// of an examination
type BulkHallTicketsRequest struct {
	ExaminationID int64 `json:"examinationId" binding:"required"`
	BatchID       int64 `json:"batchId" binding:"required"`
}

// BulkIDCardsRequest issues ID cards for all students of a batch lacking an
// active card
type BulkIDCardsRequest struct {
	BatchID    int64 `json:"batchId" binding:"required"`
	ValidYears int   `json:"validYears" example:"4"`
}

// SendFeeRemindersRequest sends reminders for unpaid dues of a structure
type SendFeeRemindersRequest struct {
	FeeStructureID int64  `json:"feeStructureId" binding:"required"`
	Channel        string `json:"channel" binding:"oneof=email sms ''" example:"email"`
}
