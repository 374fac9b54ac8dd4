package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rdjhm0765/loanops-copilot/internal/risk"
)

var modelInfoCmd = &cobra.Command{
	Use:   "modelinfo",
	Short: "Show risk model status and feature importance",
	RunE:  runModelInfo,
}

func init() {
	rootCmd.AddCommand(modelInfoCmd)
}

func runModelInfo(_ *cobra.Command, _ []string) error {
	classifier := risk.NewClassifier(cfg.Model.Dir)

	if !classifier.Trained() {
		fmt.Println("Model: untrained (predictions use rule-based fallback)")
		return nil
	}

	fmt.Println("Model: trained (random forest)")

	importance := classifier.FeatureImportance()
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	// Highest importance first; name breaks ties.
	sort.Slice(names, func(i, j int) bool {
		if importance[names[i]] != importance[names[j]] {
			return importance[names[i]] > importance[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Println("Feature importance:")
	for _, name := range names {
		fmt.Printf("  %-22s %.3f\n", name, importance[name])
	}
	return nil
}
