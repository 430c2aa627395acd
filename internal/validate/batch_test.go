package validate

import (
	"fmt"
	"testing"

	"doctag/internal/model"
)

func okResult() *model.ValidationResult {
	return &model.ValidationResult{Status: model.StatusOK, Warnings: []string{}, Score: 0.9}
}

func doc(filename string, m model.ContractMetadata) Document {
	return Document{Filename: filename, Metadata: &m, Validation: okResult()}
}

func TestValidateBatchDuplicates(t *testing.T) {
	a := goodMetadata()
	b := goodMetadata() // same counterparty, date, amount
	c := goodMetadata()
	c.Counterparty = "АО Другой"

	docs := []Document{doc("a.txt", a), doc("b.txt", b), doc("c.txt", c)}
	ValidateBatch(docs)

	if hasWarning(docs[0].Validation, "duplicate") {
		t.Errorf("first occurrence flagged as duplicate: %v", docs[0].Validation.Warnings)
	}
	if !hasWarning(docs[1].Validation, "duplicate") {
		t.Errorf("second occurrence not flagged: %v", docs[1].Validation.Warnings)
	}
	if docs[1].Validation.Status != model.StatusWarning {
		t.Errorf("duplicate status = %q, want warning", docs[1].Validation.Status)
	}
	if hasWarning(docs[2].Validation, "duplicate") {
		t.Errorf("distinct document flagged: %v", docs[2].Validation.Warnings)
	}
}

func TestValidateBatchEmptyKeySkipped(t *testing.T) {
	a := model.EmptyMetadata()
	b := model.EmptyMetadata()
	docs := []Document{doc("a.txt", a), doc("b.txt", b)}
	ValidateBatch(docs)

	for i := range docs {
		if hasWarning(docs[i].Validation, "duplicate") {
			t.Errorf("empty metadata flagged as duplicate: %v", docs[i].Validation.Warnings)
		}
	}
}

func TestValidateBatchSharedRanges(t *testing.T) {
	a := goodMetadata()
	b := goodMetadata()
	b.Counterparty = "АО Другой"
	b.Amount = "2 000 000 руб." // not a duplicate, but same date range

	docs := []Document{doc("a.txt", a), doc("b.txt", b)}
	ValidateBatch(docs)

	// the warning names the other document, not the counterparty
	if !hasWarning(docs[0].Validation, "identical effective dates as b.txt") {
		t.Errorf("a.txt warnings = %v, want finding naming b.txt", docs[0].Validation.Warnings)
	}
	if !hasWarning(docs[1].Validation, "identical effective dates as a.txt") {
		t.Errorf("b.txt warnings = %v, want finding naming a.txt", docs[1].Validation.Warnings)
	}
}

func TestValidateBatchSharedRangeSameCounterparty(t *testing.T) {
	// template copies within one counterparty are flagged too
	a := goodMetadata()
	b := goodMetadata()
	b.Amount = "2 000 000 руб."
	b.DateSigned = "2024-05-20" // distinct duplicate key, same date range

	docs := []Document{doc("a.txt", a), doc("b.txt", b)}
	ValidateBatch(docs)

	for i := range docs {
		if !hasWarning(docs[i].Validation, "identical effective dates") {
			t.Errorf("doc %d missing shared-range finding: %v", i, docs[i].Validation.Warnings)
		}
		if docs[i].Validation.Status != model.StatusWarning {
			t.Errorf("doc %d status = %q, want warning", i, docs[i].Validation.Status)
		}
	}
}

func TestValidateBatchDistinctRangesQuiet(t *testing.T) {
	a := goodMetadata()
	b := goodMetadata()
	b.Counterparty = "АО Другой"
	b.DateStart = "2024-06-01"
	b.DateEnd = "2025-05-31"
	b.Amount = "2 000 000 руб."

	docs := []Document{doc("a.txt", a), doc("b.txt", b)}
	ValidateBatch(docs)

	for i := range docs {
		if hasWarning(docs[i].Validation, "identical effective dates") {
			t.Errorf("distinct ranges flagged: %v", docs[i].Validation.Warnings)
		}
	}
}

func TestValidateBatchSkewNeedsLargeBatch(t *testing.T) {
	var docs []Document
	for i := 0; i < 5; i++ {
		m := goodMetadata()
		m.Counterparty = fmt.Sprintf("ООО Вектор-%d", i)
		m.DateSigned = fmt.Sprintf("2024-03-%02d", i+1)
		m.DateStart = fmt.Sprintf("2024-04-%02d", i+1)
		m.Amount = fmt.Sprintf("%d00 000 руб.", i+1)
		docs = append(docs, doc(fmt.Sprintf("doc%d.txt", i), m))
	}
	ValidateBatch(docs)

	for i := range docs {
		if hasWarning(docs[i].Validation, "skew") {
			t.Errorf("small batch got skew finding: %v", docs[i].Validation.Warnings)
		}
	}
}

func TestValidateBatchSkewAnnotatesWithoutStatusChange(t *testing.T) {
	var docs []Document
	for i := 0; i < 8; i++ {
		m := goodMetadata()
		m.Counterparty = fmt.Sprintf("ООО Вектор-%d", i)
		m.DateSigned = fmt.Sprintf("2024-03-%02d", i+1)
		m.DateStart = fmt.Sprintf("2024-04-%02d", i+1)
		m.Amount = fmt.Sprintf("%d00 000 руб.", i+1)
		docs = append(docs, doc(fmt.Sprintf("doc%d.txt", i), m))
	}
	ValidateBatch(docs)

	for i := range docs {
		if !hasWarning(docs[i].Validation, "skew") {
			t.Errorf("doc %d missing skew finding: %v", i, docs[i].Validation.Warnings)
		}
		if docs[i].Validation.Status != model.StatusOK {
			t.Errorf("skew changed status to %q", docs[i].Validation.Status)
		}
	}
}
