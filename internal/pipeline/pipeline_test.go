package pipeline

import (
	"testing"

	"doctag/internal/model"
)

func TestRestoreMasked(t *testing.T) {
	replacements := map[string]string{
		"[PERSON_NAME_1]": "Иванов Иван Иванович",
		"[TAX_ID_ORG_1]":  "7707083893",
	}
	m := model.ContractMetadata{
		Counterparty:      "ООО Вектор, директор [PERSON_NAME_1]",
		Subject:           "Поставка оборудования",
		Parties:           []string{"ООО Вектор, ИНН [TAX_ID_ORG_1]", "[PERSON_NAME_1]"},
		SpecialConditions: []string{"подписант [PERSON_NAME_2]"},
	}

	restoreMasked(&m, replacements)

	if m.Counterparty != "ООО Вектор, директор Иванов Иван Иванович" {
		t.Errorf("Counterparty = %q", m.Counterparty)
	}
	if m.Parties[0] != "ООО Вектор, ИНН 7707083893" {
		t.Errorf("Parties[0] = %q", m.Parties[0])
	}
	if m.Parties[1] != "Иванов Иван Иванович" {
		t.Errorf("Parties[1] = %q", m.Parties[1])
	}
	// a mask index the anonymizer never issued must disappear entirely
	if m.SpecialConditions[0] != "подписант" {
		t.Errorf("SpecialConditions[0] = %q", m.SpecialConditions[0])
	}
}

func TestShouldVerify(t *testing.T) {
	tests := []struct {
		mode   string
		status model.ValidationStatus
		want   bool
	}{
		{"off", model.StatusWarning, false},
		{"", model.StatusError, false},
		{"selective", model.StatusOK, false},
		{"selective", model.StatusWarning, true},
		{"selective", model.StatusError, true},
		{"full", model.StatusOK, true},
	}

	for _, tt := range tests {
		cfg := model.DefaultConfig()
		cfg.Validation.Mode = tt.mode
		p := &Pipeline{cfg: cfg}
		got := p.shouldVerify(&model.ValidationResult{Status: tt.status})
		if got != tt.want {
			t.Errorf("mode %q status %q: shouldVerify = %v, want %v", tt.mode, tt.status, got, tt.want)
		}
	}
}
