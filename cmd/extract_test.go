package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdjhm0765/loanops-copilot/internal/fields"
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// fakeExtractor records which method was called and returns fixed text.
type fakeExtractor struct {
	imageText string
	pdfText   string
	calledVia string
}

func (f *fakeExtractor) ExtractFromImage(_ context.Context, _ string) (string, error) {
	f.calledVia = "image"
	return f.imageText, nil
}

func (f *fakeExtractor) ExtractFromPDF(_ context.Context, _ string) (string, error) {
	f.calledVia = "pdf"
	return f.pdfText, nil
}

func TestExtractDocumentRouting(t *testing.T) {
	text := "Applicant Name: John Smith\nLoan Amount: 5,00,000"
	fake := &fakeExtractor{imageText: text, pdfText: text}

	result, err := extractDocument(context.Background(), fake, "scan.PNG")
	require.NoError(t, err)
	assert.Equal(t, "image", fake.calledVia)
	assert.True(t, result.IsValid)
	assert.Equal(t, "500000", result.Extracted[fields.LoanAmount])

	_, err = extractDocument(context.Background(), fake, "agreement.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", fake.calledVia)
}

func TestExtractDocumentMissingRequired(t *testing.T) {
	fake := &fakeExtractor{pdfText: "Applicant Name: John Smith"}

	result, err := extractDocument(context.Background(), fake, "partial.pdf")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{fields.LoanAmount}, result.MissingFields)
}

func TestApplyExtracted(t *testing.T) {
	loan := model.LoanRecord{}
	applyExtracted(&loan, fields.Set{
		fields.BorrowerName: "John Smith",
		fields.LoanAmount:   "500000",
		fields.PAN:          "ABCDE1234F",
		fields.AnnualIncome: "1200000",
	})

	assert.Equal(t, "John Smith", loan.Borrower)
	assert.Equal(t, 500000.0, loan.Amount)
	assert.Equal(t, "ABCDE1234F", loan.PAN)
	require.NotNil(t, loan.AnnualIncome)
	assert.Equal(t, 1200000.0, *loan.AnnualIncome)
}

func TestApplyExtractedFlagsWin(t *testing.T) {
	income := 900000.0
	loan := model.LoanRecord{Borrower: "Flag Name", Amount: 250000, PAN: "FFFFF0000F", AnnualIncome: &income}
	applyExtracted(&loan, fields.Set{
		fields.BorrowerName: "Doc Name",
		fields.LoanAmount:   "500000",
		fields.PAN:          "ABCDE1234F",
		fields.AnnualIncome: "1200000",
	})

	assert.Equal(t, "Flag Name", loan.Borrower)
	assert.Equal(t, 250000.0, loan.Amount)
	assert.Equal(t, "FFFFF0000F", loan.PAN)
	assert.Equal(t, 900000.0, *loan.AnnualIncome)
}

func TestApplyExtractedBadAmount(t *testing.T) {
	loan := model.LoanRecord{}
	applyExtracted(&loan, fields.Set{fields.LoanAmount: "not-a-number"})
	assert.Equal(t, 0.0, loan.Amount)
	assert.Nil(t, loan.AnnualIncome)
}
