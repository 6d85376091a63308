package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/univera/univera/internal/pkg/apperrors"
)

func TestFeeStructureSumLines(t *testing.T) {
	structure := &FeeStructure{
		Lines: []FeeLine{
			{Head: "Tuition", Amount: 30000},
			{Head: "Lab", Amount: 10000},
			{Head: "Library", Amount: 5000},
		},
	}
	assert.Equal(t, 45000.0, structure.SumLines())

	empty := &FeeStructure{}
	assert.Equal(t, 0.0, empty.SumLines())
}

func TestFeePaymentComputeTotal(t *testing.T) {
	payment := &FeePayment{Amount: 45000, LateFee: 500, DiscountAmount: 4500}
	payment.ComputeTotal()
	assert.Equal(t, 41000.0, payment.TotalAmount)

	// The identity amount + late fee - discount holds even when the
	// discount exceeds the charge; the excess is a credit, not clamped
	credited := &FeePayment{Amount: 1000, DiscountAmount: 2000}
	credited.ComputeTotal()
	assert.Equal(t, -1000.0, credited.TotalAmount)

	plain := &FeePayment{Amount: 45000}
	plain.ComputeTotal()
	assert.Equal(t, 45000.0, plain.TotalAmount)
}

func TestFeeDiscountValidate(t *testing.T) {
	valid := &FeeDiscount{Name: "Merit Scholarship", Code: "MERIT10", Method: DiscountPercentage, Percentage: 10}
	assert.NoError(t, valid.Validate())

	full := &FeeDiscount{Name: "Full Waiver", Code: "WAIVE", Method: DiscountPercentage, Percentage: 100}
	assert.NoError(t, full.Validate())

	fixed := &FeeDiscount{Name: "Sports Quota", Code: "SPORT5K", Method: DiscountFixed, Amount: 5000}
	assert.NoError(t, fixed.Validate())

	missing := &FeeDiscount{Method: DiscountPercentage, Percentage: 10}
	assert.Error(t, missing.Validate())

	negative := &FeeDiscount{Name: "Bad", Code: "BAD", Method: DiscountPercentage, Percentage: -5}
	assert.ErrorIs(t, negative.Validate(), apperrors.ErrDiscountPercentage)

	over := &FeeDiscount{Name: "Bad", Code: "BAD", Method: DiscountPercentage, Percentage: 101}
	assert.ErrorIs(t, over.Validate(), apperrors.ErrDiscountPercentage)

	negativeFixed := &FeeDiscount{Name: "Bad", Code: "BAD", Method: DiscountFixed, Amount: -1}
	assert.Error(t, negativeFixed.Validate())

	noMethod := &FeeDiscount{Name: "Bad", Code: "BAD", Percentage: 10}
	assert.Error(t, noMethod.Validate())
}

func TestApplicableDiscount(t *testing.T) {
	discount := &FeeDiscount{Name: "Merit Scholarship", Code: "MERIT10", Method: DiscountPercentage, Percentage: 10, Active: true}
	structure := &FeeStructure{TotalAmount: 45000, Active: true}

	assert.Equal(t, 4500.0, ApplicableDiscount(discount, structure))

	// Rounded to two decimals
	odd := &FeeStructure{TotalAmount: 333.33, Active: true}
	assert.Equal(t, 33.33, ApplicableDiscount(discount, odd))

	assert.Equal(t, 0.0, ApplicableDiscount(discount, nil))

	inactive := &FeeStructure{TotalAmount: 45000, Active: false}
	assert.Equal(t, 0.0, ApplicableDiscount(discount, inactive))
}

func TestApplicableDiscountFixed(t *testing.T) {
	fixed := &FeeDiscount{Name: "Sports Quota", Code: "SPORT5K", Method: DiscountFixed, Amount: 5000, Active: true}
	structure := &FeeStructure{TotalAmount: 45000, Active: true}

	assert.Equal(t, 5000.0, ApplicableDiscount(fixed, structure))

	// A fixed discount never exceeds the structure total
	small := &FeeStructure{TotalAmount: 3000, Active: true}
	assert.Equal(t, 3000.0, ApplicableDiscount(fixed, small))

	assert.Equal(t, 0.0, ApplicableDiscount(fixed, nil))

	inactive := &FeeStructure{TotalAmount: 45000, Active: false}
	assert.Equal(t, 0.0, ApplicableDiscount(fixed, inactive))
}

func TestFeePaymentTransitions(t *testing.T) {
	assert.True(t, CanTransition(FeePaymentTransitions, PaymentDraft, PaymentConfirmed))
	assert.True(t, CanTransition(FeePaymentTransitions, PaymentDraft, PaymentCancelled))
	assert.True(t, CanTransition(FeePaymentTransitions, PaymentConfirmed, PaymentRefunded))

	assert.False(t, CanTransition(FeePaymentTransitions, PaymentDraft, PaymentRefunded))
	assert.False(t, CanTransition(FeePaymentTransitions, PaymentCancelled, PaymentConfirmed))
	assert.False(t, CanTransition(FeePaymentTransitions, PaymentRefunded, PaymentDraft))
}
