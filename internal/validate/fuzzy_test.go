package validate

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "договор", "договор", 1},
		{"both empty", "", "", 1},
		{"one empty", "договор", "", 0},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{
		"Договор поставки",
		"Договор оказания услуг",
		"Трудовой договор",
	}

	tests := []struct {
		name     string
		text     string
		wantBest string
		minScore float64
	}{
		{"exact modulo case", "договор поставки", "Договор поставки", 0.99},
		{"close variant", "Договор поставки товара", "Договор поставки", 0.6},
		{"services", "договор возмездного оказания услуг", "Договор оказания услуг", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, score := BestMatch(tt.text, candidates)
			if best != tt.wantBest {
				t.Errorf("BestMatch(%q) = %q, want %q", tt.text, best, tt.wantBest)
			}
			if score < tt.minScore {
				t.Errorf("BestMatch(%q) score = %v, want >= %v", tt.text, score, tt.minScore)
			}
		})
	}

	if _, score := BestMatch("акт сверки взаиморасчетов", candidates); score >= 0.6 {
		t.Errorf("unrelated text matched with score %v", score)
	}
}
