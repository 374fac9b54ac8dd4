package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleApplication = `
LOAN APPLICATION FORM

Applicant Name: John Smith
Loan Amount: ₹ 5,00,000
PAN: ABCDE1234F
Annual Income: ₹ 12,00,000
Credit Score: 742
`

func TestParseFullApplication(t *testing.T) {
	got := Parse(sampleApplication)

	assert.Equal(t, "John Smith", got[BorrowerName])
	assert.Equal(t, "500000", got[LoanAmount])
	assert.Equal(t, "ABCDE1234F", got[PAN])
	assert.Equal(t, "1200000", got[AnnualIncome])
	assert.Equal(t, "742", got[CreditScore])
}

func TestParseStripsCommas(t *testing.T) {
	got := Parse("Amount: Rs. 1,50,000\nYearly Income: 9,00,000")
	assert.Equal(t, "150000", got[LoanAmount])
	assert.Equal(t, "900000", got[AnnualIncome])
}

func TestParseBorrowerVariants(t *testing.T) {
	got := Parse("Borrower: Priya Sharma")
	assert.Equal(t, "Priya Sharma", got[BorrowerName])

	got = Parse("Name: Ravi Kumar Verma")
	assert.Equal(t, "Ravi Kumar Verma", got[BorrowerName])
}

func TestParseFirstMatchWins(t *testing.T) {
	// Both borrower patterns could match; the first in priority order wins.
	got := Parse("Applicant: Anil Mehta\nName: Sunil Gupta")
	assert.Equal(t, "Anil Mehta", got[BorrowerName])
}

func TestParseCreditScoreCIBIL(t *testing.T) {
	got := Parse("CIBIL: 810")
	assert.Equal(t, "810", got[CreditScore])
}

func TestParseNoMatches(t *testing.T) {
	got := Parse("completely unrelated text")
	assert.Empty(t, got)
}

func TestValidate(t *testing.T) {
	v := Validate(Set{BorrowerName: "John Smith", LoanAmount: "500000"})
	assert.True(t, v.IsValid)
	assert.Empty(t, v.MissingFields)

	v = Validate(Set{BorrowerName: "John Smith"})
	assert.False(t, v.IsValid)
	assert.Equal(t, []string{LoanAmount}, v.MissingFields)

	v = Validate(Set{})
	assert.False(t, v.IsValid)
	assert.Equal(t, []string{BorrowerName, LoanAmount}, v.MissingFields)
	assert.NotNil(t, v.Extracted)
}
