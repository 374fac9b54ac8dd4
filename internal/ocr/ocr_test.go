package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdjhm0765/loanops-copilot/internal/config"
)

func TestNewExtractor(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: "local"}, "")
	require.NoError(t, err)
	assert.IsType(t, &Local{}, ext)

	// Empty provider defaults to local.
	ext, err = NewExtractor(config.OCRConfig{}, "")
	require.NoError(t, err)
	assert.IsType(t, &Local{}, ext)

	ext, err = NewExtractor(config.OCRConfig{Provider: "mistral"}, "test-key")
	require.NoError(t, err)
	assert.IsType(t, &MistralOCR{}, ext)

	_, err = NewExtractor(config.OCRConfig{Provider: "mistral"}, "")
	assert.Error(t, err)

	_, err = NewExtractor(config.OCRConfig{Provider: "bogus"}, "")
	assert.Error(t, err)
}

func TestLocalMissingFiles(t *testing.T) {
	l := NewLocal("", "")
	missing := filepath.Join(t.TempDir(), "nope.png")

	_, err := l.ExtractFromImage(context.Background(), missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image parsing failed")

	_, err = l.ExtractFromPDF(context.Background(), missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF parsing failed")
}

func mistralTestServer(t *testing.T, gotDoc *mistralOCRDocument) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req mistralOCRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*gotDoc = req.Document

		resp := mistralOCRResponse{Pages: []mistralOCRPage{
			{Index: 0, Markdown: "Applicant Name: John Smith"},
			{Index: 1, Markdown: "Loan Amount: 500000"},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestMistralExtractFromImage(t *testing.T) {
	var doc mistralOCRDocument
	srv := mistralTestServer(t, &doc)
	defer srv.Close()

	img := filepath.Join(t.TempDir(), "form.jpg")
	require.NoError(t, os.WriteFile(img, []byte("fake image bytes"), 0o644))

	m := NewMistralOCR("test-key", "")
	m.endpoint = srv.URL

	text, err := m.ExtractFromImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "Applicant Name: John Smith\nLoan Amount: 500000", text)

	assert.Equal(t, "image_url", doc.Type)
	assert.True(t, strings.HasPrefix(doc.ImageURL, "data:image/jpeg;base64,"))
	assert.Empty(t, doc.DocumentURL)
}

func TestMistralExtractFromPDF(t *testing.T) {
	var doc mistralOCRDocument
	srv := mistralTestServer(t, &doc)
	defer srv.Close()

	pdf := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4 fake"), 0o644))

	m := NewMistralOCR("test-key", "custom-model")
	m.endpoint = srv.URL

	text, err := m.ExtractFromPDF(context.Background(), pdf)
	require.NoError(t, err)
	assert.Contains(t, text, "John Smith")

	assert.Equal(t, "document_url", doc.Type)
	assert.True(t, strings.HasPrefix(doc.DocumentURL, "data:application/pdf;base64,"))
}

func TestMistralAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	pdf := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	m := NewMistralOCR("bad-key", "")
	m.endpoint = srv.URL

	_, err := m.ExtractFromPDF(context.Background(), pdf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMistralMissingFile(t *testing.T) {
	m := NewMistralOCR("test-key", "")
	_, err := m.ExtractFromImage(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image parsing failed")
}
