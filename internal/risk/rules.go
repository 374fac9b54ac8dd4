package risk

import (
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// Rule fallback breakpoints on loan amount.
const (
	ruleHighThreshold   = 500000
	ruleMediumThreshold = 200000
	ruleConfidence      = 0.7
)

// ruleBasedPrediction scores a loan without a trained model: a step
// function of loan amount with fixed confidence. Used whenever the
// classifier is untrained; this is a documented fallback policy, not an
// error path.
func ruleBasedPrediction(loan model.LoanRecord) model.Prediction {
	switch {
	case loan.Amount > ruleHighThreshold:
		return model.Prediction{Score: 75, Label: model.RiskHigh, Confidence: ruleConfidence, Method: model.MethodRuleBased}
	case loan.Amount > ruleMediumThreshold:
		return model.Prediction{Score: 50, Label: model.RiskMedium, Confidence: ruleConfidence, Method: model.MethodRuleBased}
	default:
		return model.Prediction{Score: 25, Label: model.RiskLow, Confidence: ruleConfidence, Method: model.MethodRuleBased}
	}
}
