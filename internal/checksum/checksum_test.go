package checksum

import "testing"

func TestValidTaxID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid 10-digit", "7707083893", true},
		{"invalid 10-digit check digit", "7707083890", false},
		{"valid 12-digit", "500100732259", true},
		{"invalid 12-digit", "123456789012", false},
		{"too short", "770708389", false},
		{"11 digits is not a tax ID", "77070838931", false},
		{"too long", "7707083893123", false},
		{"non-digit input", "77070а3893", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTaxID(tt.id); got != tt.want {
				t.Errorf("ValidTaxID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidInsuranceNumber(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid", "11223344595", true},
		{"wrong control digits", "11223344596", false},
		{"wrong length", "1122334459", false},
		{"non-digit input", "112-233-445", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidInsuranceNumber(tt.id); got != tt.want {
				t.Errorf("ValidInsuranceNumber(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
