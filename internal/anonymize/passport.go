package anonymize

import (
	"regexp"
	"strings"
)

// passportDetector finds passport series/number pairs. A global regex is
// useless here: "12 34 567890" is indistinguishable from arbitrary digit
// groups. Instead it anchors on context phrases and searches a window
// around each, rejecting windows that describe non-personal "passports"
// (technical, cadastral, veterinary) and hits whose immediate prefix is a
// different identifier's label.
type passportDetector struct{}

func newPassportDetector() Detector { return &passportDetector{} }

const passportWindow = 200 // bytes either side of a context phrase

var passportContextRe = regexp.MustCompile(`(?i)паспорт|серия|серии|удостоверение личности`)

var passportNumberRes = []*regexp.Regexp{
	// 2–4 digit series + 6-digit number, with or without separators
	regexp.MustCompile(`\d{2}[ ]?\d{2}[ \t]*(?:№|номер|н\.?)?[ \t]*\d{6}`),
	regexp.MustCompile(`\d{4}[ \t]*(?:№|номер|н\.?)[ \t]*\d{6}`),
	// 10 bare digits
	regexp.MustCompile(`\d{10}`),
}

// falsePassportWords mark "passports" that are not identity documents.
var falsePassportWords = []string{
	"технический", "техническому", "кадастровый", "кадастрового",
	"ветеринарный", "санитарный", "транспортного средства", "качества",
	"изделия", "объекта",
}

// competingLabels are higher-priority interpretations of the same digits:
// if one sits right before the hit, the digits belong to it, not a passport.
var competingLabels = []string{
	"инн", "огрн", "бик", "кпп", "снилс", "р/с", "к/с", "счет", "счёт",
}

func (d *passportDetector) Detect(text string) []Span {
	var spans []Span
	seen := make(map[[2]int]bool)

	for _, ctxLoc := range passportContextRe.FindAllStringIndex(text, -1) {
		lo := ctxLoc[0] - passportWindow
		if lo < 0 {
			lo = 0
		}
		for lo > 0 && text[lo]&0xC0 == 0x80 {
			lo--
		}
		hi := ctxLoc[1] + passportWindow
		if hi > len(text) {
			hi = len(text)
		}
		for hi < len(text) && text[hi]&0xC0 == 0x80 {
			hi++
		}
		win := text[lo:hi]
		if containsAny(strings.ToLower(win), falsePassportWords) {
			continue
		}

		for _, re := range passportNumberRes {
			for _, loc := range re.FindAllStringIndex(win, -1) {
				start, end := lo+loc[0], lo+loc[1]
				if !digitBounded(text, start, end) {
					continue
				}
				if containsAny(window(text, start, end, 20, 0), competingLabels) {
					continue
				}
				key := [2]int{start, end}
				if seen[key] {
					continue
				}
				seen[key] = true
				s := Span{Start: start, End: end, Type: EntityPassport, Text: text[start:end]}
				if !overlapsAny(s, spans) {
					spans = append(spans, s)
				}
			}
		}
	}
	return spans
}

// digitBounded rejects hits whose digits continue beyond the match; a
// substring of a longer number is never a passport.
func digitBounded(text string, start, end int) bool {
	if start > 0 && text[start-1] >= '0' && text[start-1] <= '9' {
		return false
	}
	if end < len(text) && text[end] >= '0' && text[end] <= '9' {
		return false
	}
	return true
}
