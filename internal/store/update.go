package store

import (
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// loanUpdateColumns flattens a partial loan update into parallel column
// and value slices. Order is fixed so generated SQL is stable.
func loanUpdateColumns(u model.LoanUpdate) (cols []string, args []any) {
	if u.Borrower != nil {
		cols = append(cols, "borrower")
		args = append(args, *u.Borrower)
	}
	if u.Amount != nil {
		cols = append(cols, "amount")
		args = append(args, *u.Amount)
	}
	if u.PAN != nil {
		cols = append(cols, "pan")
		args = append(args, *u.PAN)
	}
	if u.AnnualIncome != nil {
		cols = append(cols, "annual_income")
		args = append(args, *u.AnnualIncome)
	}
	if u.RiskScore != nil {
		cols = append(cols, "risk_score")
		args = append(args, *u.RiskScore)
	}
	if u.RiskLabel != nil {
		cols = append(cols, "risk_label")
		args = append(args, string(*u.RiskLabel))
	}
	if u.MLConfidence != nil {
		cols = append(cols, "ml_confidence")
		args = append(args, *u.MLConfidence)
	}
	if u.PredictionMethod != nil {
		cols = append(cols, "prediction_method")
		args = append(args, *u.PredictionMethod)
	}
	return cols, args
}

// userUpdateColumns flattens a partial user update into parallel column
// and value slices.
func userUpdateColumns(u model.UserUpdate) (cols []string, args []any) {
	if u.PasswordHash != nil {
		cols = append(cols, "password_hash")
		args = append(args, *u.PasswordHash)
	}
	if u.FullName != nil {
		cols = append(cols, "fullname")
		args = append(args, *u.FullName)
	}
	if u.Role != nil {
		cols = append(cols, "role")
		args = append(args, *u.Role)
	}
	return cols, args
}
