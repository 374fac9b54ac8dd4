// Package risk owns the loan risk model: feature encoding, the trainable
// random-forest classifier with its scaler, the deterministic rule-based
// fallback, and model artifact persistence.
package risk

import (
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// FeatureCount is the width of the encoded feature vector.
const FeatureCount = 3

// FeatureNames are the display names reported by FeatureImportance,
// in encoding order.
var FeatureNames = [FeatureCount]string{
	"Loan Amount (Lakhs)",
	"Income Ratio",
	"Has PAN",
}

// unknownIncomeRatio is the loan-to-income ratio assumed when annual
// income is absent or non-positive. Missing income is treated as high
// leverage.
const unknownIncomeRatio = 5.0

// FeatureVector is the fixed-width numeric encoding of a loan record.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a []float64 for the ml package.
func (v FeatureVector) Slice() []float64 {
	return []float64{v[0], v[1], v[2]}
}

// Encode converts a loan record into its feature vector:
// loan amount in lakhs, loan-to-income ratio, and a has-PAN indicator.
// Pure and deterministic.
func Encode(loan model.LoanRecord) FeatureVector {
	var v FeatureVector

	v[0] = loan.Amount / 100000

	ratio := unknownIncomeRatio
	if loan.AnnualIncome != nil && *loan.AnnualIncome > 0 {
		ratio = loan.Amount / *loan.AnnualIncome
	}
	v[1] = ratio

	if loan.PAN != "" {
		v[2] = 1
	}

	return v
}
