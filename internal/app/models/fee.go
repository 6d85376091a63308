package models

import (
	"math"
	"time"

	"github.com/univera/univera/internal/pkg/apperrors"
)

// FeeStructure defines the charges for one program/batch/semester combination
// in the 'fee_structures' table. TotalAmount is the sum of its lines, stored
// denormalized.
type FeeStructure struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name" example:"B.Tech Sem 3 Fees"`
	Code           string     `json:"code" db:"code" example:"BT-S3"`
	ProgramID      int64      `json:"programId" db:"program_id"`
	BatchID        int64      `json:"batchId" db:"batch_id"`
	SemesterID     int64      `json:"semesterId" db:"semester_id"`
	AcademicYearID int64      `json:"academicYearId" db:"academic_year_id"`
	TotalAmount    float64    `json:"totalAmount" db:"total_amount" example:"45000"`
	DueDate        *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Active         bool       `json:"active" db:"active"`

	Lines []FeeLine `json:"lines,omitempty"`
}

// SumLines recomputes the structure total from its lines
func (f *FeeStructure) SumLines() float64 {
	var total float64
	for i := range f.Lines {
		total += f.Lines[i].Amount
	}
	return total
}

// FeeLine is one charge head inside a fee structure
type FeeLine struct {
	ID             int64   `json:"id" db:"id"`
	FeeStructureID int64   `json:"feeStructureId" db:"fee_structure_id"`
	Head           string  `json:"head" db:"head" example:"Tuition"`
	Amount         float64 `json:"amount" db:"amount" example:"30000"`
}

// Fee payment statuses
const (
	PaymentDraft     Status = "draft"
	PaymentConfirmed Status = "confirmed"
	PaymentCancelled Status = "cancelled"
	PaymentRefunded  Status = "refunded"
)

// FeePaymentTransitions lists the legal status changes for payments
var FeePaymentTransitions = map[Status][]Status{
	PaymentDraft:     {PaymentConfirmed, PaymentCancelled},
	PaymentConfirmed: {PaymentRefunded},
}

// FeePayment defines a record in the 'fee_payments' table
type FeePayment struct {
	ID             int64     `json:"id" db:"id"`
	ReceiptNumber  string    `json:"receiptNumber" db:"receipt_number" example:"RCPT-00412"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	FeeStructureID int64     `json:"feeStructureId" db:"fee_structure_id"`
	Amount         float64   `json:"amount" db:"amount" example:"45000"`
	LateFee        float64   `json:"lateFee" db:"late_fee" example:"500"`
	DiscountAmount float64   `json:"discountAmount" db:"discount_amount" example:"4500"`
	TotalAmount    float64   `json:"totalAmount" db:"total_amount"`
	PaymentDate    time.Time `json:"paymentDate" db:"payment_date"`
	PaymentMode    string    `json:"paymentMode" db:"payment_mode" example:"upi"`
	Reference      string    `json:"reference,omitempty" db:"reference"`
	Status         Status    `json:"status" db:"status" example:"draft"`

	Student      *Student      `json:"student,omitempty"`
	FeeStructure *FeeStructure `json:"feeStructure,omitempty"`
}

// ComputeTotal derives the payable total: amount plus late fee minus
// discount. The identity holds even when the discount exceeds the charge;
// a negative total surfaces as a credit on the receipt.
func (p *FeePayment) ComputeTotal() {
	p.TotalAmount = p.Amount + p.LateFee - p.DiscountAmount
}

// Discount methods
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// FeeDiscount defines a discount scheme in the 'fee_discounts' table. A
// percentage scheme uses Percentage against the structure total; a fixed
// scheme knocks off Amount directly.
type FeeDiscount struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name" example:"Merit Scholarship"`
	Code       string  `json:"code" db:"code" example:"MERIT10"`
	Method     string  `json:"method" db:"method" example:"percentage"`
	Percentage float64 `json:"percentage" db:"percentage" example:"10"`
	Amount     float64 `json:"amount" db:"amount" example:"5000"`
	Active     bool    `json:"active" db:"active"`
}

// Validate checks the local invariants of a fee discount
func (d *FeeDiscount) Validate() error {
	if d.Name == "" || d.Code == "" {
		return apperrors.NewBadRequestError("discount name and code are required")
	}
	switch d.Method {
	case DiscountPercentage:
		if d.Percentage < 0 || d.Percentage > 100 {
			return apperrors.ErrDiscountPercentage
		}
	case DiscountFixed:
		if d.Amount < 0 {
			return apperrors.NewBadRequestError("fixed discount amount must not be negative")
		}
	default:
		return apperrors.NewBadRequestError("discount method must be percentage or fixed")
	}
	return nil
}

// DiscountApplication grants a discount to one student against one fee
// structure in the 'discount_applications' table
type DiscountApplication struct {
	ID               int64     `json:"id" db:"id"`
	StudentID        int64     `json:"studentId" db:"student_id"`
	FeeDiscountID    int64     `json:"feeDiscountId" db:"fee_discount_id"`
	FeeStructureID   int64     `json:"feeStructureId" db:"fee_structure_id"`
	ApplicableAmount float64   `json:"applicableAmount" db:"applicable_amount"`
	GrantedOn        time.Time `json:"grantedOn" db:"granted_on"`

	Discount *FeeDiscount `json:"discount,omitempty"`
}

// ApplicableDiscount computes the amount a discount knocks off a fee
// structure, rounded to two decimals. A missing or inactive structure
// yields 0. Fixed discounts are capped at the structure total.
func ApplicableDiscount(discount *FeeDiscount, structure *FeeStructure) float64 {
	if structure == nil || !structure.Active {
		return 0
	}
	if discount.Method == DiscountFixed {
		if discount.Amount > structure.TotalAmount {
			return structure.TotalAmount
		}
		return math.Round(discount.Amount*100) / 100
	}
	return math.Round(structure.TotalAmount*discount.Percentage) / 100
}

// FeeReminder records one reminder notice sent for unpaid dues in the
// 'fee_reminders' table
type FeeReminder struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	FeeStructureID int64     `json:"feeStructureId" db:"fee_structure_id"`
	DueAmount      float64   `json:"dueAmount" db:"due_amount"`
	SentAt         time.Time `json:"sentAt" db:"sent_at"`
	Channel        string    `json:"channel" db:"channel" example:"email"`
}
