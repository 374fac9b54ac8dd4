package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRiskLabelOrdinal(t *testing.T) {
	assert.Equal(t, 0, RiskLow.Ordinal())
	assert.Equal(t, 1, RiskMedium.Ordinal())
	assert.Equal(t, 2, RiskHigh.Ordinal())

	// Unknown labels map to Medium.
	assert.Equal(t, 1, RiskLabel("").Ordinal())
	assert.Equal(t, 1, RiskLabel("Critical").Ordinal())
}

func TestLabelFromOrdinal(t *testing.T) {
	assert.Equal(t, RiskLow, LabelFromOrdinal(0))
	assert.Equal(t, RiskMedium, LabelFromOrdinal(1))
	assert.Equal(t, RiskHigh, LabelFromOrdinal(2))

	// Out-of-range ordinals clamp.
	assert.Equal(t, RiskLow, LabelFromOrdinal(-1))
	assert.Equal(t, RiskHigh, LabelFromOrdinal(5))
}

func TestLoanUpdateApply(t *testing.T) {
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	loan := LoanRecord{
		ID:        "loan-1",
		Borrower:  "John Smith",
		Amount:    300000,
		RiskScore: 25,
		RiskLabel: RiskLow,
		CreatedAt: created,
		UpdatedAt: created,
	}

	score := 75
	label := RiskHigh
	update := LoanUpdate{RiskScore: &score, RiskLabel: &label}
	assert.False(t, update.IsEmpty())

	update.Apply(&loan)
	assert.Equal(t, 75, loan.RiskScore)
	assert.Equal(t, RiskHigh, loan.RiskLabel)
	// Untouched fields survive.
	assert.Equal(t, "John Smith", loan.Borrower)
	assert.Equal(t, 300000.0, loan.Amount)
	assert.Equal(t, created, loan.CreatedAt)
	assert.True(t, loan.UpdatedAt.After(created))
}

func TestLoanUpdateIsEmpty(t *testing.T) {
	assert.True(t, LoanUpdate{}.IsEmpty())

	b := "name"
	assert.False(t, LoanUpdate{Borrower: &b}.IsEmpty())
}

func TestPredictionUpdate(t *testing.T) {
	u := PredictionUpdate(Prediction{
		Score:      58,
		Label:      RiskMedium,
		Confidence: 0.82,
		Method:     MethodRandomForest,
	})

	assert.Equal(t, 58, *u.RiskScore)
	assert.Equal(t, RiskMedium, *u.RiskLabel)
	assert.Equal(t, 0.82, *u.MLConfidence)
	assert.Equal(t, MethodRandomForest, *u.PredictionMethod)
	assert.Nil(t, u.Borrower)
	assert.Nil(t, u.Amount)
}

func TestUserUpdateApply(t *testing.T) {
	user := User{Username: "operator", PasswordHash: "old", Role: RoleUser}

	hash := "new"
	role := RoleAdmin
	UserUpdate{PasswordHash: &hash, Role: &role}.Apply(&user)

	assert.Equal(t, "new", user.PasswordHash)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Equal(t, "operator", user.Username)

	assert.True(t, UserUpdate{}.IsEmpty())
}
