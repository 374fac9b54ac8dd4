// Package importer reads loan records in bulk from CSV or XLSX files for
// portfolio seeding. Column order is free; the header row names the
// columns.
package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// Recognized header names (case-insensitive).
const (
	colBorrower  = "borrower"
	colAmount    = "amount"
	colPAN       = "pan"
	colIncome    = "annual_income"
	colRiskLabel = "risk_label"
)

// columnIndex maps recognized headers to their position in the file.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// fromRow builds a loan record from one data row. Rows without a
// borrower or a positive amount are rejected.
func fromRow(row []string, idx map[string]int) (model.LoanRecord, error) {
	borrower := cell(row, idx, colBorrower)
	if borrower == "" {
		return model.LoanRecord{}, eris.New("importer: missing borrower")
	}

	amountStr := strings.ReplaceAll(cell(row, idx, colAmount), ",", "")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return model.LoanRecord{}, eris.Errorf("importer: bad amount %q", amountStr)
	}

	now := time.Now().UTC()
	loan := model.LoanRecord{
		ID:        uuid.New().String(),
		Borrower:  borrower,
		Amount:    amount,
		PAN:       cell(row, idx, colPAN),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s := strings.ReplaceAll(cell(row, idx, colIncome), ",", ""); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			loan.AnnualIncome = &v
		}
	}
	if s := cell(row, idx, colRiskLabel); s != "" {
		loan.RiskLabel = model.RiskLabel(s)
	}

	return loan, nil
}

// ReadCSV parses loan records from CSV. The first row must be a header.
// Bad rows are skipped and counted, not fatal.
func ReadCSV(r io.Reader) ([]model.LoanRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, eris.Wrap(err, "importer: read csv header")
	}
	idx := columnIndex(header)

	var loans []model.LoanRecord
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, eris.Wrap(err, "importer: read csv row")
		}
		loan, err := fromRow(row, idx)
		if err != nil {
			skipped++
			continue
		}
		loans = append(loans, loan)
	}
	return loans, skipped, nil
}

// ReadXLSX parses loan records from the first sheet of an XLSX workbook.
// The first row must be a header. Bad rows are skipped and counted.
func ReadXLSX(path string) ([]model.LoanRecord, int, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, 0, eris.Wrap(err, "importer: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, 0, eris.New("importer: xlsx has no sheets")
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, 0, eris.New("importer: xlsx sheet is empty")
	}

	rowStrings := func(row *xlsx.Row) []string {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = c.String()
		}
		return cells
	}

	idx := columnIndex(rowStrings(sheet.Rows[0]))

	var loans []model.LoanRecord
	skipped := 0
	for _, row := range sheet.Rows[1:] {
		loan, err := fromRow(rowStrings(row), idx)
		if err != nil {
			skipped++
			continue
		}
		loans = append(loans, loan)
	}
	return loans, skipped, nil
}
