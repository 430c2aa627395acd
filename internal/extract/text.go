// Package extract pulls plain text out of input documents.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"doctag/internal/model"
)

// ExtractedText is the result of reading one document.
type ExtractedText struct {
	Text      string
	PageCount int
	Method    string // "plain" or "pdf"

	// IsScanned is set when a PDF yields (almost) no text layer: the file is
	// likely a scan and needs OCR, which this tool does not do.
	IsScanned bool
}

// Extractor reads documents within configured bounds.
type Extractor struct {
	cfg model.ExtractConfig
}

func New(cfg model.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Supported reports whether the file's extension is on the allow-list.
func (e *Extractor) Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range e.cfg.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// Extract reads one file and returns its text. Oversized and unsupported
// files are errors; a scanned PDF is not, it returns IsScanned=true with
// whatever fragments the text layer held.
func (e *Extractor) Extract(path string) (*ExtractedText, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if maxMB := e.cfg.MaxFileSizeMB; maxMB > 0 && info.Size() > int64(maxMB)*1024*1024 {
		return nil, fmt.Errorf("extract: %s is %d MB, limit is %d MB", path, info.Size()/(1024*1024), maxMB)
	}
	if !e.Supported(path) {
		return nil, fmt.Errorf("extract: unsupported file type %q", filepath.Ext(path))
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDF(path)
	}
	return extractPlain(path)
}

func extractPlain(path string) (*ExtractedText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return &ExtractedText{
		Text:      string(data),
		PageCount: 1,
		Method:    "plain",
	}, nil
}

// scannedTextThreshold is the minimum characters per page below which a PDF
// is treated as a scan without a usable text layer.
const scannedTextThreshold = 20

func extractPDF(path string) (*ExtractedText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	out := &ExtractedText{
		Text:      text,
		PageCount: pages,
		Method:    "pdf",
	}
	if pages > 0 && len([]rune(text)) < pages*scannedTextThreshold {
		out.IsScanned = true
	}
	return out, nil
}
