package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

var loanHeader = []string{
	"id", "borrower", "amount", "risk_label", "risk_score", "confidence", "method",
}

func loanRow(l model.LoanRecord) []string {
	conf := ""
	if l.MLConfidence != nil {
		conf = strconv.FormatFloat(*l.MLConfidence, 'f', 2, 64)
	}
	return []string{
		l.ID,
		l.Borrower,
		strconv.FormatFloat(l.Amount, 'f', 2, 64),
		string(l.RiskLabel),
		strconv.Itoa(l.RiskScore),
		conf,
		l.PredictionMethod,
	}
}

// WriteCSV writes the loan corpus as CSV.
func WriteCSV(w io.Writer, loans []model.LoanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(loanHeader); err != nil {
		return eris.Wrap(err, "portfolio: write csv header")
	}
	for _, l := range loans {
		if err := cw.Write(loanRow(l)); err != nil {
			return eris.Wrapf(err, "portfolio: write csv row %s", l.ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "portfolio: flush csv")
}

// WriteXLSX writes the loan corpus as an XLSX workbook with one sheet.
func WriteXLSX(w io.Writer, loans []model.LoanRecord) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Loans")
	if err != nil {
		return eris.Wrap(err, "portfolio: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, h := range loanHeader {
		header.AddCell().SetString(h)
	}
	for _, l := range loans {
		row := sheet.AddRow()
		row.AddCell().SetString(l.ID)
		row.AddCell().SetString(l.Borrower)
		row.AddCell().SetFloat(l.Amount)
		row.AddCell().SetString(string(l.RiskLabel))
		row.AddCell().SetInt(l.RiskScore)
		if l.MLConfidence != nil {
			row.AddCell().SetFloat(*l.MLConfidence)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(l.PredictionMethod)
	}

	return eris.Wrap(wb.Write(w), "portfolio: write xlsx")
}

// WriteTable writes the summary in human-readable form with grouped
// number formatting.
func WriteTable(w io.Writer, s Summary) error {
	p := message.NewPrinter(language.English)

	_, err := fmt.Fprintf(w,
		"Total Loans: %d\nTotal Portfolio Value: %s\n\nHigh Risk: %d | Medium Risk: %d | Low Risk: %d\n\nAt Risk (High): %s\nUnder Watch (Medium): %s\n\nRecommendation:\n%s\n",
		s.TotalLoans,
		p.Sprintf("%.2f", s.TotalAmount),
		s.HighCount, s.MediumCount, s.LowCount,
		p.Sprintf("%.2f", s.HighAmount),
		p.Sprintf("%.2f", s.MediumAmount),
		s.Recommendation,
	)
	return eris.Wrap(err, "portfolio: write table")
}
