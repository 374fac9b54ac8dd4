// Package fields parses loan application fields out of raw document text
// using ordered regular-expression patterns, and validates the result
// against the required-field list.
package fields

import (
	"regexp"
	"strings"
)

// Target field names.
const (
	BorrowerName = "borrower_name"
	LoanAmount   = "loan_amount"
	PAN          = "pan"
	AnnualIncome = "annual_income"
	CreditScore  = "credit_score"
)

// Set maps field names to extracted text values. A field is present only
// if some pattern matched.
type Set map[string]string

// fieldPattern is one (field, pattern, capture group) candidate. The
// order of the pattern list is a semantic contract: for each field the
// first matching pattern wins.
type fieldPattern struct {
	field string
	re    *regexp.Regexp
	group int
}

// patterns holds the candidate patterns for every target field, in
// priority order within each field.
var patterns = []fieldPattern{
	{BorrowerName, regexp.MustCompile(`(?i)(?:applicant|borrower|name)[\s:]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`), 1},
	{BorrowerName, regexp.MustCompile(`(?i)name[\s:]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`), 1},

	{LoanAmount, regexp.MustCompile(`(?i)(?:loan amount|amount)[\s:]+₹?\s*(\d+(?:,\d+)*)`), 1},
	{LoanAmount, regexp.MustCompile(`(?i)(?:loan amount|amount)[\s:]+(?:Rs\.?|INR)?\s*(\d+(?:,\d+)*)`), 1},

	{PAN, regexp.MustCompile(`(?i)PAN[\s:]+([A-Z]{5}\d{4}[A-Z])`), 1},
	{PAN, regexp.MustCompile(`(?i)PAN[\s:]*([A-Z]{5}\d{4}[A-Z])`), 1},

	{AnnualIncome, regexp.MustCompile(`(?i)(?:annual income|yearly income)[\s:]+₹?\s*(\d+(?:,\d+)*)`), 1},

	{CreditScore, regexp.MustCompile(`(?i)(?:credit score|CIBIL)[\s:]+(\d{3})`), 1},
}

// numericField reports whether the captured value should have thousands
// separators stripped.
func numericField(field string) bool {
	return strings.Contains(field, "amount") || strings.Contains(field, "income")
}

// Parse extracts loan fields from document text. Each field takes the
// first capture group of its first matching pattern; fields with no match
// are absent from the result, which is normal rather than an error.
func Parse(text string) Set {
	extracted := make(Set)

	for _, p := range patterns {
		if _, ok := extracted[p.field]; ok {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[p.group])
		if numericField(p.field) {
			value = strings.ReplaceAll(value, ",", "")
		}
		extracted[p.field] = value
	}

	return extracted
}
