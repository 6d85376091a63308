package dto

import "time"

// FeeLineRequest is one charge head inside a structure creation request
type FeeLineRequest struct {
	Head   string  `json:"head" binding:"required" example:"Tuition"`
	Amount float64 `json:"amount" binding:"required,min=0" example:"30000"`
}

// CreateFeeStructureRequest creates a fee structure with its lines
type CreateFeeStructureRequest struct {
	Name           string           `json:"name" binding:"required"`
	Code           string           `json:"code" binding:"required"`
	ProgramID      int64            `json:"programId" binding:"required"`
	BatchID        int64            `json:"batchId" binding:"required"`
	SemesterID     int64            `json:"semesterId" binding:"required"`
	AcademicYearID int64            `json:"academicYearId" binding:"required"`
	DueDate        *time.Time       `json:"dueDate,omitempty"`
	Lines          []FeeLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordPaymentRequest records a fee payment in draft state. The receipt
// number and total are assigned by the server.
type RecordPaymentRequest struct {
	StudentID      int64   `json:"studentId" binding:"required"`
	FeeStructureID int64   `json:"feeStructureId" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,min=0"`
	LateFee        float64 `json:"lateFee" binding:"min=0"`
	PaymentMode    string  `json:"paymentMode" binding:"required,oneof=cash card upi bank_transfer cheque" example:"upi"`
	Reference      string  `json:"reference"`
}

// CreateFeeDiscountRequest creates a discount scheme. Percentage schemes use
// the percentage field; fixed schemes use amount.
type CreateFeeDiscountRequest struct {
	Name       string  `json:"name" binding:"required" example:"Merit Scholarship"`
	Code       string  `json:"code" binding:"required" example:"MERIT10"`
	Method     string  `json:"method" binding:"required,oneof=percentage fixed" example:"percentage"`
	Percentage float64 `json:"percentage" example:"10"`
	Amount     float64 `json:"amount" example:"5000"`
}

// ApplyDiscountRequest grants a discount to a student for one structure
type ApplyDiscountRequest struct {
	StudentID      int64 `json:"studentId" binding:"required"`
	FeeDiscountID  int64 `json:"feeDiscountId" binding:"required"`
	FeeStructureID int64 `json:"feeStructureId" binding:"required"`
}

// FeeDueResponse reports a student's outstanding balance against a structure
type FeeDueResponse struct {
	StudentID      int64   `json:"studentId"`
	FeeStructureID int64   `json:"feeStructureId"`
	StructureTotal float64 `json:"structureTotal"`
	Paid           float64 `json:"paid"`
	Discounted     float64 `json:"discounted"`
	Due            float64 `json:"due"`
}
