package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/fields"
	"github.com/rdjhm0765/loanops-copilot/internal/ocr"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract loan fields from an application document",
	Long: `Runs OCR (images) or text-layer extraction (PDFs) on a loan
application document, parses known fields out of the raw text, and
reports which required fields are still missing.

Examples:
  # Parse a scanned application form
  loanops extract --file application.png

  # Parse a PDF loan agreement
  loanops extract --file agreement.pdf`,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("file", "", "document to parse (image or PDF)")
	_ = extractCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(extractCmd)
}

// imageExtensions lists file extensions routed to the OCR backend rather
// than the PDF text layer.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true,
}

// extractDocument routes a document path to the right extractor method
// and parses fields from the resulting text.
func extractDocument(ctx context.Context, ext ocr.Extractor, path string) (fields.Validation, error) {
	var (
		text string
		err  error
	)
	if imageExtensions[strings.ToLower(filepath.Ext(path))] {
		text, err = ext.ExtractFromImage(ctx, path)
	} else {
		text, err = ext.ExtractFromPDF(ctx, path)
	}
	if err != nil {
		return fields.Validation{}, err
	}
	return fields.Validate(fields.Parse(text)), nil
}

func runExtract(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	log := zap.L().With(zap.String("command", "extract"), zap.String("file", path))

	extractor, err := ocr.NewExtractor(cfg.OCR, cfg.OCR.MistralKey)
	if err != nil {
		return err
	}

	result, err := extractDocument(cmd.Context(), extractor, path)
	if err != nil {
		log.Error("document extraction failed", zap.Error(err))
		return eris.Wrapf(err, "extract %s", path)
	}

	if len(result.Extracted) == 0 {
		fmt.Println("No known fields found in document.")
	}
	for field, value := range result.Extracted {
		fmt.Printf("%s: %s\n", field, value)
	}
	if !result.IsValid {
		fmt.Printf("Missing required fields: %s\n", strings.Join(result.MissingFields, ", "))
	}

	log.Info("extraction complete",
		zap.Int("fields", len(result.Extracted)),
		zap.Bool("valid", result.IsValid))
	return nil
}
