// Package ocr extracts raw text from loan documents: scanned images via
// optical character recognition and PDFs via their text layer. Backends
// are pluggable; extraction is a single synchronous attempt and every
// failure surfaces as a typed error carrying its cause.
package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/config"
)

// Extractor extracts text content from loan document files.
type Extractor interface {
	ExtractFromImage(ctx context.Context, path string) (string, error)
	ExtractFromPDF(ctx context.Context, path string) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig, mistralKey string) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocal(cfg.TesseractPath, cfg.PdfToTextPath), nil
	case "mistral":
		if mistralKey == "" {
			return nil, eris.New("ocr: mistral provider requires mistral_api_key")
		}
		return NewMistralOCR(mistralKey, cfg.MistralModel), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
