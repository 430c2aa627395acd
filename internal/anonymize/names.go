package anonymize

import (
	"regexp"
	"strings"
	"sync"
)

// Recognizer finds person-name spans in text. Implementations must be safe
// for concurrent use: the pipeline shares one recognizer across workers.
type Recognizer interface {
	Recognize(text string) []Span
}

// DictionaryRecognizer is the built-in name recognizer for Cyrillic text.
// It combines morphological patterns (patronymic suffixes, initials) with a
// given-name table. The table is the "model": loaded once, read-only after.
type DictionaryRecognizer struct {
	firstNames map[string]bool
}

var (
	defaultRecognizer *DictionaryRecognizer
	recognizerOnce    sync.Once
)

// DefaultRecognizer returns the shared recognizer handle, loading the name
// table on first call. Callers pass the handle into New explicitly
// so tests can substitute their own Recognizer.
func DefaultRecognizer() *DictionaryRecognizer {
	recognizerOnce.Do(func() {
		names := make(map[string]bool, len(firstNamesList))
		for _, n := range firstNamesList {
			names[n] = true
		}
		defaultRecognizer = &DictionaryRecognizer{firstNames: names}
	})
	return defaultRecognizer
}

var (
	// Фамилия И.О. / И.О. Фамилия
	surnameInitialsRe = regexp.MustCompile(`[А-ЯЁ][а-яё]+[ \t][А-ЯЁ]\.[ \t]?[А-ЯЁ]\.`)
	initialsSurnameRe = regexp.MustCompile(`[А-ЯЁ]\.[ \t]?[А-ЯЁ]\.[ \t]?[А-ЯЁ][а-яё]+`)
	// Patronymic suffixes in nominative and oblique cases: contract
	// preambles put names in genitive ("в лице Ивана Петровича Сидорова").
	patronymicSuffix = `(?:вич(?:а|у|ем|е)?|вн(?:а|ы|е|у|ой)|ичн(?:а|ы|е|у|ой)|иничн(?:а|ы|е|у|ой))`
	// Фамилия Имя Отчество (patronymic last)
	triplePatronymicLastRe = regexp.MustCompile(`[А-ЯЁ][а-яё]+[ \t]+[А-ЯЁ][а-яё]+[ \t]+[А-ЯЁ][а-яё]*` + patronymicSuffix)
	// Имя Отчество Фамилия (patronymic middle)
	triplePatronymicMidRe = regexp.MustCompile(`[А-ЯЁ][а-яё]+[ \t]+[А-ЯЁ][а-яё]*` + patronymicSuffix + `[ \t]+[А-ЯЁ][а-яё]+`)
	// candidate two-word pairs, filtered through the given-name table
	capitalizedPairRe = regexp.MustCompile(`[А-ЯЁ][а-яё]+[ \t][А-ЯЁ][а-яё]+`)
)

// Recognize returns PERSON_NAME spans. Pattern passes run in specificity
// order; a later pass never adds a span overlapping an earlier hit.
func (r *DictionaryRecognizer) Recognize(text string) []Span {
	var accepted []Span
	add := func(re *regexp.Regexp, filter func(string) bool) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			if filter != nil && !filter(raw) {
				continue
			}
			s := Span{Start: loc[0], End: loc[1], Type: EntityPersonName, Text: raw}
			if !overlapsAny(s, accepted) {
				accepted = append(accepted, s)
			}
		}
	}

	add(triplePatronymicLastRe, nil)
	add(triplePatronymicMidRe, nil)
	add(surnameInitialsRe, nil)
	add(initialsSurnameRe, nil)
	add(capitalizedPairRe, r.pairHasGivenName)

	return accepted
}

// pairHasGivenName accepts a two-word candidate only when one of the words
// is in the given-name table, keeping "Общество Ромашка" out.
func (r *DictionaryRecognizer) pairHasGivenName(raw string) bool {
	for _, w := range strings.Fields(raw) {
		if r.firstNames[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

// latin name after a role cue: the statistical patterns above are tuned for
// Cyrillic, so Latin-script names are caught via context cue words.
var latinCueNameRe = regexp.MustCompile(
	`(?:(?i:представитель|директор|подписант|attn|attention|representative|director|attorney|signed by)|Mr|Mrs|Ms|Dr)[.:]?[ \t]+((?:[A-Z][a-zA-Z'-]+[ \t]+){1,3}[A-Z][a-zA-Z'-]+)`)

// nameDetector runs the recognizer over three text variants and merges the
// hits, earlier passes winning. The variants recover names the recognizer
// misses in the raw text: missing sentence boundaries before field labels,
// and character-level OCR spacing.
type nameDetector struct {
	rec Recognizer
}

func newNameDetector(rec Recognizer) *nameDetector {
	return &nameDetector{rec: rec}
}

func (d *nameDetector) Detect(text string) []Span {
	var accepted []Span
	add := func(s Span) {
		if s.End > s.Start && !overlapsAny(s, accepted) {
			accepted = append(accepted, s)
		}
	}

	// pass 1: raw text
	for _, s := range d.rec.Recognize(text) {
		add(s)
	}

	// pass 2: restored sentence boundaries before field labels
	if v := sentenceBounded(text); v.text != text {
		for _, s := range d.rec.Recognize(v.text) {
			add(mapBack(v, s, text))
		}
	}

	// pass 3: de-spaced OCR artifacts
	if v := deSpaced(text); v.text != text {
		for _, s := range d.rec.Recognize(v.text) {
			add(mapBack(v, s, text))
		}
	}

	// supplementary pass: Latin-script names after role cues
	for _, m := range latinCueNameRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		add(Span{Start: start, End: end, Type: EntityPersonName, Text: text[start:end]})
	}

	return accepted
}

// mapBack translates a variant span to original-text offsets and re-reads
// the raw text from the original.
func mapBack(v *textVariant, s Span, orig string) Span {
	start, end := v.spanToOriginal(s.Start, s.End)
	start, end = trimToText(orig, start, end)
	return Span{Start: start, End: end, Type: s.Type, Text: orig[start:end]}
}

// trimToText shrinks a mapped range so it neither starts nor ends on ASCII
// whitespace (variant rewrites can leave ragged edges).
func trimToText(text string, start, end int) (int, int) {
	isSpace := func(b byte) bool {
		return b == ' ' || b == '\t' || b == '\n' || b == '\r'
	}
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}
