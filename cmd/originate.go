package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/fields"
	"github.com/rdjhm0765/loanops-copilot/internal/model"
	"github.com/rdjhm0765/loanops-copilot/internal/ocr"
	"github.com/rdjhm0765/loanops-copilot/internal/risk"
)

var originateCmd = &cobra.Command{
	Use:   "originate",
	Short: "Submit a new loan application",
	Long: `Creates a loan record, scores it, and saves it to the portfolio.
With --doc, fields left unset on the command line are filled from the
document first (extract, parse, review printed for confirmation).

Examples:
  # Manual entry
  loanops originate --borrower "John Smith" --amount 350000

  # Pre-fill from a scanned application
  loanops originate --doc application.png

  # Document plus overrides
  loanops originate --doc agreement.pdf --income 1200000`,
	RunE: runOriginate,
}

func init() {
	f := originateCmd.Flags()
	f.String("borrower", "", "borrower name")
	f.Float64("amount", 0, "loan amount")
	f.String("pan", "", "borrower PAN")
	f.Float64("income", 0, "borrower annual income")
	f.String("doc", "", "application document to pre-fill fields from")

	rootCmd.AddCommand(originateCmd)
}

// applyExtracted fills loan fields that are still zero-valued from a
// parsed document field set. Explicit flags always win over extraction.
func applyExtracted(loan *model.LoanRecord, extracted fields.Set) {
	if loan.Borrower == "" {
		loan.Borrower = extracted[fields.BorrowerName]
	}
	if loan.Amount == 0 {
		if v, err := strconv.ParseFloat(extracted[fields.LoanAmount], 64); err == nil {
			loan.Amount = v
		}
	}
	if loan.PAN == "" {
		loan.PAN = extracted[fields.PAN]
	}
	if loan.AnnualIncome == nil {
		if v, err := strconv.ParseFloat(extracted[fields.AnnualIncome], 64); err == nil {
			loan.AnnualIncome = &v
		}
	}
}

func runOriginate(cmd *cobra.Command, _ []string) error {
	borrower, _ := cmd.Flags().GetString("borrower")
	amount, _ := cmd.Flags().GetFloat64("amount")
	pan, _ := cmd.Flags().GetString("pan")
	income, _ := cmd.Flags().GetFloat64("income")
	doc, _ := cmd.Flags().GetString("doc")

	log := zap.L().With(zap.String("command", "originate"))

	now := time.Now().UTC()
	loan := model.LoanRecord{
		ID:        uuid.New().String(),
		Borrower:  borrower,
		Amount:    amount,
		PAN:       pan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if income > 0 {
		loan.AnnualIncome = &income
	}

	if doc != "" {
		extractor, err := ocr.NewExtractor(cfg.OCR, cfg.OCR.MistralKey)
		if err != nil {
			return err
		}
		result, err := extractDocument(cmd.Context(), extractor, doc)
		if err != nil {
			log.Error("document extraction failed", zap.String("doc", doc), zap.Error(err))
			return eris.Wrapf(err, "originate: extract %s", doc)
		}
		for field, value := range result.Extracted {
			fmt.Printf("extracted %s: %s\n", field, value)
		}
		applyExtracted(&loan, result.Extracted)
	}

	if loan.Borrower == "" {
		return eris.New("originate: borrower name is required (flag or document)")
	}
	if loan.Amount <= 0 {
		return eris.New("originate: loan amount must be positive (flag or document)")
	}

	classifier := risk.NewClassifier(cfg.Model.Dir)
	pred := classifier.Predict(loan)
	loan.RiskScore = pred.Score
	loan.RiskLabel = pred.Label
	loan.MLConfidence = &pred.Confidence
	loan.PredictionMethod = pred.Method

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	if err := s.SaveLoan(cmd.Context(), loan); err != nil {
		return err
	}

	fmt.Printf("Loan submitted: %s\nRisk Level: %s (%d), confidence %.2f [%s]\n",
		loan.ID, pred.Label, pred.Score, pred.Confidence, pred.Method)

	log.Info("loan originated",
		zap.String("loan_id", loan.ID),
		zap.Float64("amount", loan.Amount),
		zap.String("risk_label", string(pred.Label)),
		zap.Int("risk_score", pred.Score))
	return nil
}
