package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/importer"
	"github.com/rdjhm0765/loanops-copilot/internal/model"
	"github.com/rdjhm0765/loanops-copilot/internal/risk"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import loans from a CSV or XLSX file",
	Long: `Reads loan records from a spreadsheet (header row with borrower,
amount, and optionally pan, annual_income, risk_label columns), scores
each one, and saves them all to the portfolio.

Examples:
  loanops import --file loans.csv
  loanops import --file loans.xlsx`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("file", "", "CSV or XLSX file to import")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	log := zap.L().With(zap.String("command", "import"), zap.String("file", path))

	var (
		loans   []model.LoanRecord
		skipped int
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, openErr := os.Open(path)
		if openErr != nil {
			return eris.Wrapf(openErr, "import: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		loans, skipped, err = importer.ReadCSV(f)
	case ".xlsx":
		loans, skipped, err = importer.ReadXLSX(path)
	default:
		return eris.Errorf("unsupported import format: %s", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	classifier := risk.NewClassifier(cfg.Model.Dir)

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	saved := 0
	for _, loan := range loans {
		// Rows that carry a risk_label are ground truth; keep them as-is
		// so a later train run can learn from them.
		if loan.RiskLabel == "" {
			pred := classifier.Predict(loan)
			loan.RiskScore = pred.Score
			loan.RiskLabel = pred.Label
			loan.MLConfidence = &pred.Confidence
			loan.PredictionMethod = pred.Method
		}

		if err := s.SaveLoan(cmd.Context(), loan); err != nil {
			log.Warn("loan save failed", zap.String("borrower", loan.Borrower), zap.Error(err))
			continue
		}
		saved++
	}

	fmt.Printf("Imported %d loans (%d rows skipped).\n", saved, skipped)
	log.Info("import complete", zap.Int("saved", saved), zap.Int("skipped", skipped))
	return nil
}
