// Package validate checks extracted document metadata in four layers:
// L1 structural (required fields, date format, confidence range),
// L2 logical (date sanity, amounts, type matching, party checksums),
// L3 confidence (thresholds, hallucination markers), and
// L4 cross-document over a whole batch (duplicates, skew) in batch.go.
//
// Validators characterize bad data, they never reject it: every finding is
// a tagged warning on the ValidationResult, not an error.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"doctag/internal/checksum"
	"doctag/internal/model"
)

const isoDate = "2006-01-02"

// Validator runs L1–L3 over one document's metadata.
type Validator struct {
	cfg model.ValidationConfig
	now func() time.Time // injectable for tests
}

// New creates a validator with the given thresholds and reference lists.
func New(cfg model.ValidationConfig) *Validator {
	return &Validator{cfg: cfg, now: time.Now}
}

// Validate runs L1+L2+L3 and computes the final status and score.
//
// Status precedence: any L1 warning ⇒ error; else low confidence ⇒
// unreliable; else medium confidence or any L2 warning ⇒ warning; else ok.
// Score starts at the raw confidence and loses 0.15 per L1 warning, 0.10
// per L2, 0.05 per L3, clamped to [0,1].
func (v *Validator) Validate(m *model.ContractMetadata) *model.ValidationResult {
	var warnings []string
	warnings = append(warnings, v.checkStructural(m)...)
	warnings = append(warnings, v.checkLogical(m)...)
	l3Status, l3Warnings := v.checkConfidence(m)
	warnings = append(warnings, l3Warnings...)

	var status model.ValidationStatus
	switch {
	case countTag(warnings, "L1:") > 0:
		status = model.StatusError
	case l3Status == model.StatusUnreliable:
		status = model.StatusUnreliable
	case l3Status == model.StatusWarning || countTag(warnings, "L2:") > 0:
		status = model.StatusWarning
	default:
		status = model.StatusOK
	}

	score := m.Confidence
	score -= 0.15 * float64(countTag(warnings, "L1:"))
	score -= 0.10 * float64(countTag(warnings, "L2:"))
	score -= 0.05 * float64(countTag(warnings, "L3:"))
	score = math.Max(0, math.Min(1, score))
	if math.IsNaN(score) { // NaN confidence survives the clamp
		score = 0
	}

	if warnings == nil {
		warnings = []string{}
	}
	return &model.ValidationResult{Status: status, Warnings: warnings, Score: score}
}

func countTag(warnings []string, tag string) int {
	n := 0
	for _, w := range warnings {
		if strings.HasPrefix(w, tag) {
			n++
		}
	}
	return n
}

// checkStructural is L1: required fields, ISO date format, confidence range.
func (v *Validator) checkStructural(m *model.ContractMetadata) []string {
	var warnings []string

	if strings.TrimSpace(m.ContractType) == "" {
		warnings = append(warnings, "L1: missing document type")
	}
	if strings.TrimSpace(m.Counterparty) == "" {
		warnings = append(warnings, "L1: missing counterparty")
	}
	if strings.TrimSpace(m.Subject) == "" {
		warnings = append(warnings, "L1: missing subject")
	}

	for _, d := range []struct{ name, value string }{
		{"date_signed", m.DateSigned},
		{"date_start", m.DateStart},
		{"date_end", m.DateEnd},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(isoDate, d.value); err != nil {
			warnings = append(warnings, fmt.Sprintf("L1: invalid date format %s=%q", d.name, d.value))
		}
	}

	// NaN compares false against everything, so the range check alone would
	// pass it silently.
	if math.IsNaN(m.Confidence) || math.IsInf(m.Confidence, 0) || m.Confidence < 0 || m.Confidence > 1 {
		warnings = append(warnings, fmt.Sprintf("L1: confidence outside [0,1]: %v", m.Confidence))
	}

	return warnings
}

var partyTaxIDRe = regexp.MustCompile(`(?i)инн[ \t:№]*(\d{10,12})`)

// checkLogical is L2: date sanity, type matching, amount plausibility,
// subject length, party tax-ID checksums, identical parties.
func (v *Validator) checkLogical(m *model.ContractMetadata) []string {
	var warnings []string
	today := v.now()

	if m.DateSigned != "" {
		if signed, err := time.Parse(isoDate, m.DateSigned); err == nil {
			if signed.After(today.AddDate(0, 0, 30)) {
				warnings = append(warnings, fmt.Sprintf("L2: signing date in the future (%s)", m.DateSigned))
			}
			if signed.Year() < 2000 {
				warnings = append(warnings, fmt.Sprintf("L2: signing date suspiciously old (%s)", m.DateSigned))
			}
		}
		// unparseable dates are already flagged by L1
	}

	if m.DateStart != "" && m.DateEnd != "" {
		start, errS := time.Parse(isoDate, m.DateStart)
		end, errE := time.Parse(isoDate, m.DateEnd)
		if errS == nil && errE == nil {
			if start.After(end) {
				warnings = append(warnings, fmt.Sprintf("L2: start date (%s) is after end date (%s)", m.DateStart, m.DateEnd))
			} else if days := int(end.Sub(start).Hours() / 24); days > 50*365 {
				warnings = append(warnings, fmt.Sprintf("L2: suspiciously long duration (%d years)", days/365))
			}
		}
	}

	if m.ContractType != "" {
		if _, score := BestMatch(m.ContractType, v.cfg.TypeHints); score < 0.6 {
			warnings = append(warnings, fmt.Sprintf("L2: nonstandard document type: %q", m.ContractType))
		}
	}

	if m.Amount != "" {
		amount, ok := ParseAmount(m.Amount)
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("L2: amount contains no number: %q", m.Amount))
		default:
			if amount > 10_000_000_000 {
				warnings = append(warnings, fmt.Sprintf("L2: anomalously large amount: %s", m.Amount))
			}
			if amount < 1000 && m.ContractType != "" && !isEmploymentType(m.ContractType) {
				warnings = append(warnings, fmt.Sprintf("L2: anomalously small amount: %s", m.Amount))
			}
		}
	}

	if m.Subject != "" {
		length := len([]rune(m.Subject))
		if length < 5 {
			warnings = append(warnings, fmt.Sprintf("L2: subject too short (%d characters)", length))
		}
		if length > 500 {
			warnings = append(warnings, fmt.Sprintf("L2: subject too long (%d characters)", length))
		}
	}

	// Party entries come from model output; non-string entries were dropped
	// at coercion, but empty strings may survive.
	var validParties []string
	for _, p := range m.Parties {
		if p == "" {
			continue
		}
		validParties = append(validParties, p)
		for _, match := range partyTaxIDRe.FindAllStringSubmatch(p, -1) {
			if !checksum.ValidTaxID(match[1]) {
				warnings = append(warnings, fmt.Sprintf("L2: invalid tax ID %s (checksum mismatch)", match[1]))
			}
		}
	}

	if len(validParties) >= 2 {
		seen := make(map[string]bool)
		for _, p := range validParties {
			normalized := strings.Join(strings.Fields(strings.ToLower(p)), " ")
			if seen[normalized] {
				warnings = append(warnings, "L2: document parties are identical")
				break
			}
			seen[normalized] = true
		}
	}

	return warnings
}

func isEmploymentType(contractType string) bool {
	t := strings.ToLower(contractType)
	return strings.Contains(t, "трудовой") || strings.Contains(t, "employment")
}

// checkConfidence is L3: threshold tiers, hallucination markers, and
// suspiciously identical dates. Returns the tier-derived status alongside
// the warnings; hallucination findings force at least warning status even
// when confidence is high.
func (v *Validator) checkConfidence(m *model.ContractMetadata) (model.ValidationStatus, []string) {
	var warnings []string
	var status model.ValidationStatus

	switch {
	case m.Confidence < v.cfg.ConfidenceLow:
		status = model.StatusUnreliable
		warnings = append(warnings, fmt.Sprintf("L3: low model confidence (%.2f)", m.Confidence))
	case m.Confidence < v.cfg.ConfidenceHigh:
		status = model.StatusWarning
		warnings = append(warnings, fmt.Sprintf("L3: medium model confidence (%.2f), review recommended", m.Confidence))
	default:
		status = model.StatusOK
	}

	if m.Counterparty != "" {
		normalized := strings.Join(strings.Fields(strings.ToLower(m.Counterparty)), " ")
		for _, name := range v.cfg.HallucinationNames {
			if normalized == strings.ToLower(strings.TrimSpace(name)) {
				warnings = append(warnings, fmt.Sprintf("L3: possible hallucination: counterparty %q", m.Counterparty))
				if status == model.StatusOK {
					status = model.StatusWarning
				}
				break
			}
		}
	}

	if m.DateSigned != "" && m.DateSigned == m.DateStart && m.DateStart == m.DateEnd {
		warnings = append(warnings, "L3: all three dates identical, possible hallucination")
		if status == model.StatusOK {
			status = model.StatusWarning
		}
	}

	return status, warnings
}
