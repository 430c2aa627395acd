// Package pipeline orchestrates the per-document flow: extract text, mask
// personal data, send the masked text to the model, restore masked values in
// the result, validate, and optionally run an AI verification pass.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"doctag/internal/anonymize"
	"doctag/internal/cache"
	"doctag/internal/extract"
	"doctag/internal/llm"
	"doctag/internal/model"
	"doctag/internal/validate"
)

// Pipeline processes one document end to end. Safe for concurrent use.
type Pipeline struct {
	extractor  *extract.Extractor
	anonymizer *anonymize.Anonymizer
	llmExt     *llm.Extractor
	validator  *validate.Validator
	cache      cache.Cache // nil when caching is disabled
	cfg        *model.Config
}

// NewPipeline wires the stages from config. The cache may be nil.
func NewPipeline(cfg *model.Config, store cache.Cache) (*Pipeline, error) {
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		extractor:  extract.New(cfg.Extract),
		anonymizer: anonymize.New(anonymize.DefaultRecognizer(), cfg.Anonymize.Entities),
		llmExt:     llm.NewExtractor(client, cfg.Validation.TypeHints),
		validator:  validate.New(cfg.Validation),
		cache:      store,
		cfg:        cfg,
	}, nil
}

// Result is the complete outcome for one document.
type Result struct {
	Filename   string                       `json:"filename"`
	Metadata   model.ContractMetadata       `json:"metadata"`
	Validation *model.ValidationResult      `json:"validation"`
	MaskStats  map[anonymize.EntityType]int `json:"mask_stats,omitempty"`
	PageCount  int                          `json:"page_count,omitempty"`
	Cached     bool                         `json:"cached,omitempty"`
	Error      string                       `json:"error,omitempty"`
}

// cachePayload is what gets persisted per document.
type cachePayload struct {
	Metadata   model.ContractMetadata  `json:"metadata"`
	Validation *model.ValidationResult `json:"validation"`
}

// ProcessFile runs the full flow for one path. Infrastructure failures
// (unreadable file, model unreachable) surface as an error; data-quality
// findings never do; they live in the validation result.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	result := &Result{Filename: filepath.Base(path)}

	extracted, err := p.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	result.PageCount = extracted.PageCount

	if extracted.IsScanned {
		result.Metadata = model.EmptyMetadata()
		result.Validation = &model.ValidationResult{
			Status:   model.StatusError,
			Warnings: []string{"L1: document has no text layer (scanned PDF, OCR required)"},
			Score:    0,
		}
		return result, nil
	}

	if p.cache != nil {
		key := cache.ResultKey(extracted.Text, p.cfg.LLM.Model)
		if data, found := p.cache.Get(key); found {
			var payload cachePayload
			if err := json.Unmarshal(data, &payload); err == nil && payload.Validation != nil {
				result.Metadata = payload.Metadata
				result.Validation = payload.Validation
				result.Cached = true
				return result, nil
			}
		}
	}

	anon := p.anonymizer.Anonymize(extracted.Text)
	result.MaskStats = anon.Stats

	metadata, err := p.llmExt.Extract(ctx, anon.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", result.Filename, err)
	}

	restoreMasked(&metadata, anon.Replacements)
	validation := p.validator.Validate(&metadata)

	if p.shouldVerify(validation) {
		metadata, validation = p.verify(ctx, anon, metadata, validation)
	}

	result.Metadata = metadata
	result.Validation = validation

	if p.cache != nil {
		if data, err := json.Marshal(cachePayload{Metadata: metadata, Validation: validation}); err == nil {
			key := cache.ResultKey(extracted.Text, p.cfg.LLM.Model)
			_ = p.cache.Set(key, data, p.cfg.Cache.TTL)
		}
	}

	return result, nil
}

// restoreMasked puts original values back into fields the model filled with
// mask tokens. The model only ever saw masked text, so any mask it echoes is
// either a real token from Replacements or a fabrication to be stripped.
// Field values are trimmed after restoration; a stripped fabricated mask can
// leave whitespace at either end.
func restoreMasked(m *model.ContractMetadata, replacements map[string]string) {
	m.Counterparty = restoreField(m.Counterparty, replacements)
	m.Subject = restoreField(m.Subject, replacements)
	for i, p := range m.Parties {
		m.Parties[i] = restoreField(p, replacements)
	}
	for i, c := range m.SpecialConditions {
		m.SpecialConditions[i] = restoreField(c, replacements)
	}
}

func restoreField(s string, replacements map[string]string) string {
	return strings.TrimSpace(anonymize.Restore(s, replacements))
}

func (p *Pipeline) shouldVerify(v *model.ValidationResult) bool {
	switch p.cfg.Validation.Mode {
	case "full":
		return true
	case "selective":
		return v.Status != model.StatusOK
	default:
		return false
	}
}

// verify runs the AI self-check, applies whitelisted corrections, and
// re-validates. Verification findings survive re-validation as extra
// warnings; a verification failure leaves the original result untouched.
func (p *Pipeline) verify(ctx context.Context, anon anonymize.AnonymizedText, m model.ContractMetadata, v *model.ValidationResult) (model.ContractMetadata, *model.ValidationResult) {
	verification, err := p.llmExt.Verify(ctx, anon.Text, m)
	if err != nil {
		v.Warn(fmt.Sprintf("L5: verification pass failed: %v", err))
		return m, v
	}

	var notes []string
	for field, value := range verification.Corrections {
		restored := restoreField(value, anon.Replacements)
		if m.ApplyCorrection(field, restored) {
			notes = append(notes, fmt.Sprintf("L5: field %s corrected by verification pass", field))
		}
	}
	if !verification.Verified && len(notes) == 0 {
		note := "L5: verification pass disagrees with extraction"
		if verification.Note != "" {
			note += ": " + verification.Note
		}
		notes = append(notes, note)
	}

	if len(verification.Corrections) > 0 {
		v = p.validator.Validate(&m)
	}
	for _, n := range notes {
		v.Warn(n)
		v.RaiseToWarning()
	}
	return m, v
}
