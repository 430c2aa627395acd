package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ContractMetadata is the structured record extracted from one document.
// Instances built from model output must go through MetadataFromJSON or
// MetadataFromMap, which coerce every field defensively: the producer is an
// LLM and returns nulls, wrong types, and out-of-range numbers routinely.
type ContractMetadata struct {
	ContractType      string   `json:"contract_type"`
	Counterparty      string   `json:"counterparty"`
	Subject           string   `json:"subject"`
	DateSigned        string   `json:"date_signed,omitempty"` // ISO YYYY-MM-DD
	DateStart         string   `json:"date_start,omitempty"`
	DateEnd           string   `json:"date_end,omitempty"`
	Amount            string   `json:"amount,omitempty"` // free text, e.g. "1 500 000 руб."
	SpecialConditions []string `json:"special_conditions"`
	Parties           []string `json:"parties"`
	Confidence        float64  `json:"confidence"`
}

// MetadataFromJSON parses an untrusted JSON object into ContractMetadata.
// Parse failure returns an empty (but well-formed) record and the error;
// field-level malformation never fails, it is coerced to safe defaults.
func MetadataFromJSON(data []byte) (ContractMetadata, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return EmptyMetadata(), err
	}
	return MetadataFromMap(raw), nil
}

// EmptyMetadata returns a zero record with non-nil list fields.
func EmptyMetadata() ContractMetadata {
	return ContractMetadata{
		SpecialConditions: []string{},
		Parties:           []string{},
	}
}

// MetadataFromMap coerces a decoded JSON object into ContractMetadata.
// Every field is optional and every type mismatch degrades to the zero value.
func MetadataFromMap(raw map[string]any) ContractMetadata {
	m := EmptyMetadata()
	m.ContractType = coerceString(raw["contract_type"])
	m.Counterparty = coerceString(raw["counterparty"])
	m.Subject = coerceString(raw["subject"])
	m.DateSigned = coerceString(raw["date_signed"])
	m.DateStart = coerceString(raw["date_start"])
	m.DateEnd = coerceString(raw["date_end"])
	m.Amount = coerceString(raw["amount"])
	m.SpecialConditions = coerceStringList(raw["special_conditions"])
	m.Parties = coerceStringList(raw["parties"])
	m.Confidence = CoerceConfidence(raw["confidence"])
	return m
}

// Normalize guarantees the list fields are non-nil so serialization round
// trips always produce JSON arrays, never null.
func (m *ContractMetadata) Normalize() {
	if m.SpecialConditions == nil {
		m.SpecialConditions = []string{}
	}
	if m.Parties == nil {
		m.Parties = []string{}
	}
}

// ApplyCorrection sets one field by its wire name. Only the whitelisted
// fields below are settable; anything else is ignored and reported false.
// Used by the AI self-verification pass, which suggests corrections by name.
func (m *ContractMetadata) ApplyCorrection(field, value string) bool {
	switch field {
	case "contract_type":
		m.ContractType = value
	case "counterparty":
		m.Counterparty = value
	case "subject":
		m.Subject = value
	case "date_signed":
		m.DateSigned = value
	case "date_start":
		m.DateStart = value
	case "date_end":
		m.DateEnd = value
	case "amount":
		m.Amount = value
	default:
		return false
	}
	return true
}

// Field reads one whitelisted field by its wire name.
func (m *ContractMetadata) Field(field string) (string, bool) {
	switch field {
	case "contract_type":
		return m.ContractType, true
	case "counterparty":
		return m.Counterparty, true
	case "subject":
		return m.Subject, true
	case "date_signed":
		return m.DateSigned, true
	case "date_start":
		return m.DateStart, true
	case "date_end":
		return m.DateEnd, true
	case "amount":
		return m.Amount, true
	}
	return "", false
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

// coerceStringList accepts a JSON array (non-string and null elements are
// dropped), a bare string (wrapped as a single-element list, never exploded
// into characters), or anything else (empty list).
func coerceStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}

// CoerceConfidence turns an arbitrary JSON value into a usable confidence.
// Non-numeric values (null, bool, unparsable string) and NaN/Inf become 0.0;
// numeric values outside [0,1] are clamped. Total function, never panics.
func CoerceConfidence(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0.0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0.0
		}
		f = parsed
	default:
		return 0.0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0
	}
	if f < 0 {
		return 0.0
	}
	if f > 1 {
		return 1.0
	}
	return f
}
