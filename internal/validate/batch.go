package validate

import (
	"fmt"
	"strings"

	"doctag/internal/model"
)

// Document pairs one file's extracted metadata with its per-document
// validation result for cross-document analysis.
type Document struct {
	Filename   string
	Metadata   *model.ContractMetadata
	Validation *model.ValidationResult
}

// ValidateBatch is L4: cross-document checks over a completed batch. It
// appends warnings to each document's existing result and may raise an ok
// status to warning; it never downgrades error or unreliable, and never
// improves a status.
//
// Checks: duplicate documents (same counterparty, signing date, and amount),
// shared effective-date ranges, and two batch-level signals that only
// annotate without changing status: document type skew and a
// widespread-problems ratio.
func ValidateBatch(docs []Document) {
	if len(docs) == 0 {
		return
	}

	flagDuplicates(docs)
	flagSharedRanges(docs)

	if len(docs) > 5 {
		flagTypeSkew(docs)
		flagWidespreadProblems(docs)
	}
}

// flagDuplicates warns on every repeat of a (counterparty, date_signed,
// amount) key after its first occurrence. Documents whose key is entirely
// empty are skipped: they have nothing to collide on.
func flagDuplicates(docs []Document) {
	firstSeen := make(map[string]string) // key → filename of first occurrence
	for i := range docs {
		m := docs[i].Metadata
		if m == nil {
			continue
		}
		counterparty := strings.Join(strings.Fields(strings.ToLower(m.Counterparty)), " ")
		if counterparty == "" && m.DateSigned == "" && m.Amount == "" {
			continue
		}
		key := counterparty + "\x00" + m.DateSigned + "\x00" + m.Amount
		if first, ok := firstSeen[key]; ok {
			warnRaise(docs[i].Validation, fmt.Sprintf("L4: possible duplicate of %s (same counterparty, date, amount)", first))
			continue
		}
		firstSeen[key] = docs[i].Filename
	}
}

// flagSharedRanges warns every document whose exact (date_start, date_end)
// pair appears in at least one other document, which in practice points at a
// template the model copied dates from. The warning names the other files,
// at most three per finding to keep messages readable.
func flagSharedRanges(docs []Document) {
	groups := make(map[string][]int)
	for i := range docs {
		m := docs[i].Metadata
		if m == nil || (m.DateStart == "" && m.DateEnd == "") {
			continue
		}
		key := m.DateStart + "\x00" + m.DateEnd
		groups[key] = append(groups[key], i)
	}

	for _, indexes := range groups {
		if len(indexes) < 2 {
			continue
		}
		for _, i := range indexes {
			others := make([]string, 0, 3)
			for _, j := range indexes {
				if j == i {
					continue
				}
				others = append(others, docs[j].Filename)
				if len(others) == 3 {
					break
				}
			}
			warnRaise(docs[i].Validation, fmt.Sprintf("L4: identical effective dates as %s", strings.Join(others, ", ")))
		}
	}
}

// flagTypeSkew annotates every document when one contract type covers more
// than half the batch. Informational only: status is left alone because a
// homogeneous batch is often legitimate.
func flagTypeSkew(docs []Document) {
	counts := make(map[string]int)
	for i := range docs {
		if m := docs[i].Metadata; m != nil && m.ContractType != "" {
			counts[strings.ToLower(m.ContractType)]++
		}
	}
	for typ, n := range counts {
		if n*2 > len(docs) {
			msg := fmt.Sprintf("L4: batch skew, %d of %d documents share type %q", n, len(docs), typ)
			for i := range docs {
				if docs[i].Validation != nil {
					docs[i].Validation.Warn(msg)
				}
			}
			return
		}
	}
}

// flagWidespreadProblems annotates the whole batch when more than 30% of
// documents finished non-ok, a signal that the source material or the model
// configuration is off rather than any individual document.
func flagWidespreadProblems(docs []Document) {
	bad := 0
	for i := range docs {
		if v := docs[i].Validation; v != nil && v.Status != model.StatusOK {
			bad++
		}
	}
	if bad*10 > len(docs)*3 {
		msg := fmt.Sprintf("L4: %d of %d documents have validation findings, check inputs and model settings", bad, len(docs))
		for i := range docs {
			if docs[i].Validation != nil {
				docs[i].Validation.Warn(msg)
			}
		}
	}
}

func warnRaise(v *model.ValidationResult, msg string) {
	if v == nil {
		return
	}
	v.Warn(msg)
	v.RaiseToWarning()
}
