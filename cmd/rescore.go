package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
	"github.com/rdjhm0765/loanops-copilot/internal/risk"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Re-assess risk for every loan in the portfolio",
	Long: `Monitoring workflow: optionally retrains the model on the current
portfolio, then re-predicts every loan and writes the new score, label,
confidence, and provenance back in place.

Examples:
  # Re-predict with the persisted model (or rule-based fallback)
  loanops rescore

  # Retrain first, then re-predict
  loanops rescore --retrain`,
	RunE: runRescore,
}

func init() {
	rescoreCmd.Flags().Bool("retrain", false, "retrain the model before re-scoring")

	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, _ []string) error {
	retrain, _ := cmd.Flags().GetBool("retrain")

	log := zap.L().With(zap.String("command", "rescore"))

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	loans, err := s.LoadLoans(cmd.Context())
	if err != nil {
		return err
	}

	classifier := risk.NewClassifier(cfg.Model.Dir)
	if retrain {
		if classifier.Train(loans) {
			fmt.Printf("Model retrained on %d loans.\n", len(loans))
		} else {
			fmt.Printf("Not enough data to retrain (%d loans); keeping existing model.\n", len(loans))
		}
	}

	updated := 0
	for _, loan := range loans {
		pred := classifier.Predict(loan)
		if err := s.UpdateLoan(cmd.Context(), loan.ID, model.PredictionUpdate(pred)); err != nil {
			log.Warn("loan update failed", zap.String("loan_id", loan.ID), zap.Error(err))
			continue
		}
		updated++
	}

	fmt.Printf("Re-scored %d of %d loans.\n", updated, len(loans))
	log.Info("rescore complete", zap.Int("updated", updated), zap.Int("total", len(loans)))
	return nil
}
