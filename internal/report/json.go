// Package report renders batch results to JSON and Excel.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"doctag/internal/pipeline"
)

// Batch is the serializable shape of one completed run.
type Batch struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Model       string             `json:"model"`
	Total       int                `json:"total"`
	Results     []*pipeline.Result `json:"results"`
}

// NewBatch assembles the report envelope. Metadata list fields are
// normalized so the JSON never contains null where an array belongs.
func NewBatch(model string, results []*pipeline.Result) *Batch {
	for _, r := range results {
		r.Metadata.Normalize()
	}
	return &Batch{
		GeneratedAt: time.Now().UTC(),
		Model:       model,
		Total:       len(results),
		Results:     results,
	}
}

// WriteJSON writes the batch as indented JSON.
func WriteJSON(batch *Batch, path string) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
