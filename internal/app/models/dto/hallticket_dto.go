package dto

// EligibilityResponse reports the outcome of a hall-ticket eligibility check
type EligibilityResponse struct {
	StudentID         int64    `json:"studentId"`
	ExaminationID     int64    `json:"examinationId"`
	Eligible          bool     `json:"eligible"`
	Reasons           []string `json:"reasons,omitempty"`
	AttendancePercent float64  `json:"attendancePercent" example:"82.5"`
	FeeDue            float64  `json:"feeDue" example:"0"`
}

// GenerateHallTicketRequest issues a hall ticket for one student
type GenerateHallTicketRequest struct {
	ExaminationID int64 `json:"examinationId" binding:"required"`
	StudentID     int64 `json:"studentId" binding:"required"`
}

// IssueIDCardRequest issues an ID card for one student
type IssueIDCardRequest struct {
	StudentID  int64 `json:"studentId" binding:"required"`
	ValidYears int   `json:"validYears" example:"4"`
}

// VerifyResponse is the public answer to a QR verification lookup
type VerifyResponse struct {
	Valid              bool   `json:"valid"`
	Kind               string `json:"kind" example:"hall_ticket"`
	Number             string `json:"number,omitempty"`
	StudentName        string `json:"studentName,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Status             string `json:"status,omitempty"`
}
