package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration the application runs with when no
// config file or environment overrides exist.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Driver:  "jsonfile",
			DataDir: "data",
		},
		Model: ModelConfig{Dir: "data"},
		OCR: OCRConfig{
			Provider:      "local",
			TesseractPath: "tesseract",
			PdfToTextPath: "pdftotext",
			MistralModel:  "pixtral-large-latest",
		},
		Session: SessionConfig{Path: "data/session.json"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

// WriteDefault writes a starter config.yaml at path. Refuses to clobber
// an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return eris.Errorf("config: %s already exists", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return eris.Wrap(err, "config: marshal defaults")
	}
	return eris.Wrapf(os.WriteFile(path, data, 0o644), "config: write %s", path)
}
