package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestEncode(t *testing.T) {
	loan := model.LoanRecord{
		Amount:       300000,
		AnnualIncome: floatPtr(600000),
		PAN:          "ABCDE1234F",
	}
	v := Encode(loan)
	assert.Equal(t, 3.0, v[0])
	assert.Equal(t, 0.5, v[1])
	assert.Equal(t, 1.0, v[2])
}

func TestEncodeMissingIncome(t *testing.T) {
	v := Encode(model.LoanRecord{Amount: 100000})
	assert.Equal(t, 1.0, v[0])
	assert.Equal(t, unknownIncomeRatio, v[1])
	assert.Equal(t, 0.0, v[2])

	// Non-positive income counts as unknown.
	v = Encode(model.LoanRecord{Amount: 100000, AnnualIncome: floatPtr(0)})
	assert.Equal(t, unknownIncomeRatio, v[1])

	v = Encode(model.LoanRecord{Amount: 100000, AnnualIncome: floatPtr(-5)})
	assert.Equal(t, unknownIncomeRatio, v[1])
}

func TestEncodeDeterministic(t *testing.T) {
	loan := model.LoanRecord{Amount: 450000, AnnualIncome: floatPtr(900000), PAN: "X"}
	assert.Equal(t, Encode(loan), Encode(loan))
}

func TestEncodeSlice(t *testing.T) {
	v := FeatureVector{1, 2, 3}
	assert.Equal(t, []float64{1, 2, 3}, v.Slice())
	assert.Len(t, v.Slice(), FeatureCount)
}

func TestRuleBasedPrediction(t *testing.T) {
	cases := []struct {
		amount float64
		score  int
		label  model.RiskLabel
	}{
		{600000, 75, model.RiskHigh},
		{500001, 75, model.RiskHigh},
		{500000, 50, model.RiskMedium},
		{300000, 50, model.RiskMedium},
		{200001, 50, model.RiskMedium},
		{200000, 25, model.RiskLow},
		{50000, 25, model.RiskLow},
		{0, 25, model.RiskLow},
	}
	for _, tc := range cases {
		p := ruleBasedPrediction(model.LoanRecord{Amount: tc.amount})
		assert.Equal(t, tc.score, p.Score, "amount %v", tc.amount)
		assert.Equal(t, tc.label, p.Label, "amount %v", tc.amount)
		assert.Equal(t, ruleConfidence, p.Confidence)
		assert.Equal(t, model.MethodRuleBased, p.Method)
	}
}
