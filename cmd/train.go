package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/risk"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the risk model on the loan portfolio",
	Long: `Fits the risk classifier on all stored loans, using their current
risk labels as ground truth, and persists the fitted model. Needs at
least 5 loans; until then predictions stay rule-based.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "train"))

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
	if !classifier.Train(loans) {
		fmt.Printf("Not enough data to train. Need at least %d loans, have %d.\n",
			risk.MinTrainingRecords, len(loans))
		return nil
	}

	fmt.Printf("Model trained on %d loans.\n", len(loans))
	log.Info("training complete", zap.Int("loans", len(loans)))
	return nil
}
