package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/portfolio"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio analytics and executive risk summary",
	Long: `Aggregates the loan portfolio by risk band and prints the executive
summary, or exports the full loan list.

Examples:
  # Executive summary
  loanops portfolio

  # Export every loan as CSV
  loanops portfolio --format csv --output loans.csv

  # Export as a spreadsheet
  loanops portfolio --format xlsx --output loans.xlsx`,
	RunE: runPortfolio,
}

func init() {
	f := portfolioCmd.Flags()
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	log := zap.L().With(zap.String("command", "portfolio"))

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	loans, err := s.LoadLoans(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "portfolio: create %s", output)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "table", "":
		err = portfolio.WriteTable(w, portfolio.Summarize(loans))
	case "csv":
		err = portfolio.WriteCSV(w, loans)
	case "xlsx":
		err = portfolio.WriteXLSX(w, loans)
	default:
		return eris.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}

	log.Info("portfolio report written",
		zap.Int("loans", len(loans)),
		zap.String("format", format))
	return nil
}
