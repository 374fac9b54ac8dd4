// Package portfolio computes aggregate statistics and the executive risk
// summary over the loan corpus.
package portfolio

import (
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// Recommendation texts surfaced in the executive summary.
const (
	RecommendationMonitor = "Immediate monitoring required for high-risk loans."
	RecommendationStable  = "Portfolio risk is currently stable."
)

// Summary aggregates the loan portfolio by risk band.
type Summary struct {
	TotalLoans   int     `json:"total_loans"`
	TotalAmount  float64 `json:"total_amount"`
	HighCount    int     `json:"high_count"`
	MediumCount  int     `json:"medium_count"`
	LowCount     int     `json:"low_count"`
	HighAmount   float64 `json:"high_amount"`   // value at risk
	MediumAmount float64 `json:"medium_amount"` // value under watch
	Recommendation string `json:"recommendation"`
}

// Summarize computes portfolio statistics over the loan corpus. The
// recommendation flips to monitoring as soon as any high-risk value is
// on the books.
func Summarize(loans []model.LoanRecord) Summary {
	var s Summary
	s.TotalLoans = len(loans)

	for _, l := range loans {
		s.TotalAmount += l.Amount
		switch l.RiskLabel {
		case model.RiskHigh:
			s.HighCount++
			s.HighAmount += l.Amount
		case model.RiskMedium:
			s.MediumCount++
			s.MediumAmount += l.Amount
		case model.RiskLow:
			s.LowCount++
		}
	}

	if s.HighAmount > 0 {
		s.Recommendation = RecommendationMonitor
	} else {
		s.Recommendation = RecommendationStable
	}
	return s
}
