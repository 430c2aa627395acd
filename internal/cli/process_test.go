package cli

import (
	"errors"
	"testing"

	"doctag/internal/model"
	"doctag/internal/pipeline"
	"doctag/internal/worker"
)

func TestCollectResultsSplitsFailures(t *testing.T) {
	ok := &pipeline.Result{
		Filename: "good.pdf",
		Metadata: model.EmptyMetadata(),
		Validation: &model.ValidationResult{
			Status:   model.StatusOK,
			Warnings: []string{},
			Score:    0.9,
		},
	}
	fileResults := []*worker.FileResult{
		{Path: "/in/good.pdf", Result: ok},
		{Path: "/in/broken.pdf", Err: errors.New("extract text: file is encrypted")},
	}

	results, docs, failed := collectResults(fileResults)

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (failures still reported)", len(results))
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(docs) != 1 || docs[0].Filename != "good.pdf" {
		t.Fatalf("cross-document set = %+v, want only good.pdf", docs)
	}

	var errRow *pipeline.Result
	for _, r := range results {
		if r.Error != "" {
			errRow = r
		}
	}
	if errRow == nil {
		t.Fatal("no synthetic error row for the failed document")
	}
	if errRow.Filename != "broken.pdf" {
		t.Errorf("error row filename = %q, want broken.pdf", errRow.Filename)
	}
	if errRow.Validation.Status != model.StatusError {
		t.Errorf("error row status = %q, want error", errRow.Validation.Status)
	}
}

func TestCollectResultsEmpty(t *testing.T) {
	results, docs, failed := collectResults(nil)
	if len(results) != 0 || len(docs) != 0 || failed != 0 {
		t.Errorf("got %d results, %d docs, %d failed, want all zero", len(results), len(docs), failed)
	}
}
