package model

import (
	"time"
)

// RiskLabel is the coarse ordinal risk classification of a loan.
type RiskLabel string

const (
	RiskLow    RiskLabel = "Low"
	RiskMedium RiskLabel = "Medium"
	RiskHigh   RiskLabel = "High"
)

// Ordinal maps a risk label to its training ordinal (Low=0, Medium=1, High=2).
// Unknown or empty labels map to Medium.
func (l RiskLabel) Ordinal() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 1
	}
}

// LabelFromOrdinal is the inverse of Ordinal. Out-of-range ordinals clamp
// to the nearest label.
func LabelFromOrdinal(ord int) RiskLabel {
	switch {
	case ord <= 0:
		return RiskLow
	case ord == 1:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Prediction provenance tags.
const (
	MethodRandomForest = "ml_random_forest"
	MethodRuleBased    = "rule_based"
)

// LoanRecord represents a loan application in the portfolio.
// PAN is empty when the borrower provided no tax ID. AnnualIncome and
// MLConfidence are nil when unknown.
type LoanRecord struct {
	ID               string    `json:"id"`
	Borrower         string    `json:"borrower"`
	Amount           float64   `json:"amount"`
	PAN              string    `json:"pan,omitempty"`
	AnnualIncome     *float64  `json:"annual_income,omitempty"`
	RiskScore        int       `json:"risk_score"`
	RiskLabel        RiskLabel `json:"risk_label"`
	MLConfidence     *float64  `json:"ml_confidence,omitempty"`
	PredictionMethod string    `json:"prediction_method,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Prediction is the outcome of a risk assessment for one loan.
type Prediction struct {
	Score      int       `json:"score"`      // 0-100
	Label      RiskLabel `json:"label"`
	Confidence float64   `json:"confidence"` // 0.0-1.0
	Method     string    `json:"method"`     // provenance tag
}

// LoanUpdate is an explicit partial update for a loan record. Nil fields
// are left unchanged, so the set of updatable attributes is statically
// enumerable.
type LoanUpdate struct {
	Borrower         *string    `json:"borrower,omitempty"`
	Amount           *float64   `json:"amount,omitempty"`
	PAN              *string    `json:"pan,omitempty"`
	AnnualIncome     *float64   `json:"annual_income,omitempty"`
	RiskScore        *int       `json:"risk_score,omitempty"`
	RiskLabel        *RiskLabel `json:"risk_label,omitempty"`
	MLConfidence     *float64   `json:"ml_confidence,omitempty"`
	PredictionMethod *string    `json:"prediction_method,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u LoanUpdate) IsEmpty() bool {
	return u.Borrower == nil && u.Amount == nil && u.PAN == nil &&
		u.AnnualIncome == nil && u.RiskScore == nil && u.RiskLabel == nil &&
		u.MLConfidence == nil && u.PredictionMethod == nil
}

// Apply copies the non-nil fields of the update onto the loan and bumps
// UpdatedAt.
func (u LoanUpdate) Apply(loan *LoanRecord) {
	if u.Borrower != nil {
		loan.Borrower = *u.Borrower
	}
	if u.Amount != nil {
		loan.Amount = *u.Amount
	}
	if u.PAN != nil {
		loan.PAN = *u.PAN
	}
	if u.AnnualIncome != nil {
		loan.AnnualIncome = u.AnnualIncome
	}
	if u.RiskScore != nil {
		loan.RiskScore = *u.RiskScore
	}
	if u.RiskLabel != nil {
		loan.RiskLabel = *u.RiskLabel
	}
	if u.MLConfidence != nil {
		loan.MLConfidence = u.MLConfidence
	}
	if u.PredictionMethod != nil {
		loan.PredictionMethod = *u.PredictionMethod
	}
	loan.UpdatedAt = time.Now().UTC()
}

// PredictionUpdate builds the partial update a re-scoring pass writes back.
func PredictionUpdate(p Prediction) LoanUpdate {
	score := p.Score
	label := p.Label
	conf := p.Confidence
	method := p.Method
	return LoanUpdate{
		RiskScore:        &score,
		RiskLabel:        &label,
		MLConfidence:     &conf,
		PredictionMethod: &method,
	}
}
