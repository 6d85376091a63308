package models

import "time"

// Eligibility thresholds for hall-ticket issuance
const MinAttendancePercent = 75.0

// Reason strings returned by eligibility checks
const (
	ReasonLowAttendance     = "Attendance below 75%"
	ReasonFeeDues           = "Fee dues pending"
	ReasonPendingDiscipline = "Pending discipline issues"
)

// Hall ticket statuses. A ticket is generated as a draft, issued to the
// student, and tracked through download and print.
const (
	TicketDraft      Status = "draft"
	TicketIssued     Status = "issued"
	TicketDownloaded Status = "downloaded"
	TicketPrinted    Status = "printed"
	TicketCancelled  Status = "cancelled"
)

// HallTicketTransitions lists the legal status changes for hall tickets
var HallTicketTransitions = map[Status][]Status{
	TicketDraft:      {TicketIssued, TicketCancelled},
	TicketIssued:     {TicketDownloaded, TicketPrinted, TicketCancelled},
	TicketDownloaded: {TicketPrinted, TicketCancelled},
	TicketPrinted:    {TicketCancelled},
}

// HallTicket defines a record in the 'hall_tickets' table. DownloadCount
// increments on every QR download, whatever the current status.
type HallTicket struct {
	ID            int64     `json:"id" db:"id"`
	TicketNumber  string    `json:"ticketNumber" db:"ticket_number" example:"HT-00231"`
	ExaminationID int64     `json:"examinationId" db:"examination_id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	Status        Status    `json:"status" db:"status" example:"draft"`
	GeneratedAt   time.Time `json:"generatedAt" db:"generated_at"`
	DownloadCount int       `json:"downloadCount" db:"download_count"`
	QRPayload     string    `json:"qrPayload" db:"qr_payload"`

	Student     *Student     `json:"student,omitempty"`
	Examination *Examination `json:"examination,omitempty"`
}

// EligibilityInput gathers the facts the eligibility gate checks. Callers
// assemble it from attendance, fee and discipline queries.
type EligibilityInput struct {
	AttendancePercent float64
	FeeDue            float64
	OpenDiscipline    bool
}

// EligibilityResult is the outcome of an eligibility check. Reasons lists
// every failing gate, not just the first.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// CheckEligibility applies the three hall-ticket gates: attendance at or
// above 75%, no outstanding fee dues, and no open major or critical
// discipline case.
func CheckEligibility(in EligibilityInput) EligibilityResult {
	var reasons []string
	if in.AttendancePercent < MinAttendancePercent {
		reasons = append(reasons, ReasonLowAttendance)
	}
	if in.FeeDue > 0 {
		reasons = append(reasons, ReasonFeeDues)
	}
	if in.OpenDiscipline {
		reasons = append(reasons, ReasonPendingDiscipline)
	}
	return EligibilityResult{Eligible: len(reasons) == 0, Reasons: reasons}
}

// ID card statuses
const (
	CardActive  Status = "active"
	CardExpired Status = "expired"
	CardRevoked Status = "revoked"
)

// IDCardTransitions lists the legal status changes for ID cards
var IDCardTransitions = map[Status][]Status{
	CardActive: {CardExpired, CardRevoked},
}

// StudentIDCard defines a record in the 'student_id_cards' table
type StudentIDCard struct {
	ID         int64     `json:"id" db:"id"`
	CardNumber string    `json:"cardNumber" db:"card_number"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	IssuedOn   time.Time `json:"issuedOn" db:"issued_on"`
	ValidUntil time.Time `json:"validUntil" db:"valid_until"`
	Status     Status    `json:"status" db:"status" example:"active"`
	QRPayload  string    `json:"qrPayload" db:"qr_payload"`

	Student *Student `json:"student,omitempty"`
}
