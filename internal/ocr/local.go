package ocr

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/rotisserie/eris"
)

// Local extracts text using local CLI tools: tesseract for images and
// pdftotext for PDFs.
type Local struct {
	tesseractPath string
	pdfToTextPath string
}

// NewLocal creates a Local extractor. Empty paths fall back to the tool
// names resolved via PATH.
func NewLocal(tesseractPath, pdfToTextPath string) *Local {
	if tesseractPath == "" {
		tesseractPath = "tesseract"
	}
	if pdfToTextPath == "" {
		pdfToTextPath = "pdftotext"
	}
	return &Local{tesseractPath: tesseractPath, pdfToTextPath: pdfToTextPath}
}

// ExtractFromImage runs tesseract on the image and returns the recognized
// text from stdout.
func (l *Local) ExtractFromImage(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", eris.Wrapf(err, "ocr: image parsing failed for %s", path)
	}

	cmd := exec.CommandContext(ctx, l.tesseractPath, path, "stdout")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: tesseract failed for %s: %s", path, stderr.String())
	}

	return stdout.String(), nil
}

// ExtractFromPDF runs pdftotext -layout on the PDF and returns stdout,
// page texts separated by newlines.
func (l *Local) ExtractFromPDF(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", eris.Wrapf(err, "ocr: PDF parsing failed for %s", path)
	}

	cmd := exec.CommandContext(ctx, l.pdfToTextPath, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", path, stderr.String())
	}

	return stdout.String(), nil
}
