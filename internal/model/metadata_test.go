package model

import (
	"math"
	"testing"
)

func TestCoerceConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float in range", 0.85, 0.85},
		{"nil", nil, 0.0},
		{"numeric string", "0.85", 0.85},
		{"word string", "high", 0.0},
		{"bool", true, 0.0},
		{"negative", -0.3, 0.0},
		{"above one", 1.7, 1.0},
		{"int", 1, 1.0},
		{"NaN", math.NaN(), 0.0},
		{"positive infinity", math.Inf(1), 0.0},
		{"negative infinity", math.Inf(-1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceConfidence(tt.in); got != tt.want {
				t.Errorf("CoerceConfidence(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadataFromMapCoercion(t *testing.T) {
	m := MetadataFromMap(map[string]any{
		"contract_type":      "Договор поставки",
		"counterparty":       nil,
		"subject":            42,
		"date_signed":        "2024-03-15",
		"amount":             "1 500 000 руб.",
		"special_conditions": "предоплата 50%",
		"parties":            []any{"ООО Вектор", nil, 7, "АО Плюс"},
		"confidence":         "0.9",
	})

	if m.ContractType != "Договор поставки" {
		t.Errorf("ContractType = %q", m.ContractType)
	}
	if m.Counterparty != "" || m.Subject != "" {
		t.Errorf("non-string fields not zeroed: %q / %q", m.Counterparty, m.Subject)
	}
	// a bare string becomes a one-element list, never a character explosion
	if len(m.SpecialConditions) != 1 || m.SpecialConditions[0] != "предоплата 50%" {
		t.Errorf("SpecialConditions = %v", m.SpecialConditions)
	}
	if len(m.Parties) != 2 {
		t.Errorf("Parties = %v, want non-strings dropped", m.Parties)
	}
	if m.Confidence != 0.9 {
		t.Errorf("Confidence = %v", m.Confidence)
	}
}

func TestMetadataFromMapEmptyInput(t *testing.T) {
	m := MetadataFromMap(map[string]any{})
	if m.SpecialConditions == nil || m.Parties == nil {
		t.Error("list fields must be non-nil on empty input")
	}
	if m.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", m.Confidence)
	}
}

func TestMetadataFromJSONMalformed(t *testing.T) {
	m, err := MetadataFromJSON([]byte("{not json"))
	if err == nil {
		t.Fatal("want parse error")
	}
	if m.SpecialConditions == nil || m.Parties == nil {
		t.Error("error path must still return well-formed lists")
	}
}

func TestApplyCorrectionWhitelist(t *testing.T) {
	m := EmptyMetadata()

	if !m.ApplyCorrection("counterparty", "ООО Вектор") {
		t.Error("whitelisted field rejected")
	}
	if m.Counterparty != "ООО Вектор" {
		t.Errorf("Counterparty = %q", m.Counterparty)
	}
	if m.ApplyCorrection("confidence", "1.0") {
		t.Error("confidence must not be settable by name")
	}
	if m.ApplyCorrection("parties", "x") {
		t.Error("list fields must not be settable by name")
	}
}
