package anonymize

import (
	"strings"
	"testing"
)

func recognize(t *testing.T, text string) []Span {
	t.Helper()
	return newNameDetector(DefaultRecognizer()).Detect(text)
}

func containsSpanText(spans []Span, value string) bool {
	for _, s := range spans {
		if s.Text == value {
			return true
		}
	}
	return false
}

func TestNamePatterns(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		value string
	}{
		{"surname first full name", "Директор Иванов Иван Иванович подписал", "Иванов Иван Иванович"},
		{"patronymic in the middle", "в лице Ивана Петровича Сидорова", "Ивана Петровича Сидорова"},
		{"surname with initials", "Согласовано: Петров П.С.", "Петров П.С."},
		{"initials before surname", "подпись И.И. Иванова", "И.И. Иванова"},
		{"female patronymic", "Бухгалтер Смирнова Анна Сергеевна", "Смирнова Анна Сергеевна"},
		{"given name pair", "представитель Иван Петров", "Иван Петров"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := recognize(t, tt.text)
			if !containsSpanText(spans, tt.value) {
				t.Errorf("Detect(%q) = %v, want span %q", tt.text, spans, tt.value)
			}
			for _, s := range spans {
				if tt.text[s.Start:s.End] != s.Text {
					t.Errorf("span %+v does not address original text", s)
				}
			}
		})
	}
}

func TestNameDetectorRejectsOrganizations(t *testing.T) {
	texts := []string{
		"Общество Ромашка заключило договор",
		"Поставка Оборудования производится в срок",
	}
	for _, text := range texts {
		if spans := recognize(t, text); len(spans) != 0 {
			t.Errorf("Detect(%q) = %v, want no person names", text, spans)
		}
	}
}

func TestNameDetectorLatinAfterCue(t *testing.T) {
	text := "Signed by John Smith on behalf of the company"
	spans := recognize(t, text)
	if !containsSpanText(spans, "John Smith") {
		t.Errorf("Detect(%q) = %v, want Latin name after cue", text, spans)
	}

	// Latin capitalized pairs without a cue stay untouched
	if spans := recognize(t, "New York Office Building"); len(spans) != 0 {
		t.Errorf("cue-less Latin words matched: %v", spans)
	}
}

func TestNameDetectorOCRSpacing(t *testing.T) {
	// character-spaced name as OCR sometimes emits it; double spaces keep
	// the word boundaries
	text := "Подписал: И в а н о в  И в а н  И в а н о в и ч"
	spans := recognize(t, text)
	if len(spans) == 0 {
		t.Fatalf("spaced-out name not detected")
	}
	s := spans[0]
	if text[s.Start:s.End] != s.Text {
		t.Errorf("span does not address original text: %+v", s)
	}
	if !strings.Contains(s.Text, "И в а н о в") {
		t.Errorf("span text = %q, want the original spaced form", s.Text)
	}
}

func TestNameDetectorMissingSentenceBoundary(t *testing.T) {
	// no period before the next field label; the name must not swallow it
	text := "Исполнитель: Сидоров Петр Петрович\nЗаказчик: ООО Вектор"
	spans := recognize(t, text)
	if !containsSpanText(spans, "Сидоров Петр Петрович") {
		t.Errorf("Detect(%q) = %v, want exact name span", text, spans)
	}
}
