package anonymize

import (
	"regexp"
	"strings"

	"doctag/internal/checksum"
)

// digitRun is a maximal run of ASCII digits in the text.
type digitRun struct {
	start, end int
	digits     string
}

// findDigitRuns scans for maximal digit runs. Go's RE2 has no lookaround,
// so exact-length matching ("12 digits not part of a longer run") is done by
// collecting runs and filtering on length.
func findDigitRuns(text string) []digitRun {
	var runs []digitRun
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, digitRun{start: start, end: i, digits: text[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, digitRun{start: start, end: len(text), digits: text[start:]})
	}
	return runs
}

// window returns the lowercased text around [start,end), clipped to the
// text bounds and to rune boundaries.
func window(text string, start, end, before, after int) string {
	lo := start - before
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && text[lo]&0xC0 == 0x80 {
		lo--
	}
	hi := end + after
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && text[hi]&0xC0 == 0x80 {
		hi++
	}
	return strings.ToLower(text[lo:hi])
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// regexDetector is the plain strategy: one pattern, one entity type.
type regexDetector struct {
	typ EntityType
	re  *regexp.Regexp
}

func (d *regexDetector) Detect(text string) []Span {
	var spans []Span
	for _, loc := range d.re.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{
			Start: loc[0], End: loc[1], Type: d.typ, Text: text[loc[0]:loc[1]],
		})
	}
	return spans
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

func newEmailDetector() Detector {
	return &regexDetector{typ: EntityEmail, re: emailRe}
}

// --- phone ---

var phoneRe = regexp.MustCompile(`(?:\+7|8)[ \t\-]?\(?\d{3}\)?[ \t\-]?\d{3}[ \t\-]?\d{2}[ \t\-]?\d{2}`)

var accountContextWords = []string{"р/с", "к/с", "расчетный счет", "расчётный счёт", "корр", "счет", "счёт", "счета"}

// phoneDetector matches Russian phone shapes in the raw text and in a
// digit-normalized variant (Cyrillic letters shaped like digits mapped to
// those digits), reporting offsets against the original. A match is
// suppressed when its digits sit inside a long (15+) digit run or follow
// account-context keywords: a 20-digit account number must never be
// partially claimed as a phone.
type phoneDetector struct{}

func newPhoneDetector() Detector { return &phoneDetector{} }

func (d *phoneDetector) Detect(text string) []Span {
	var spans []Span
	add := func(start, end int) {
		if d.suppressed(text, start, end) {
			return
		}
		s := Span{Start: start, End: end, Type: EntityPhone, Text: text[start:end]}
		if !overlapsAny(s, spans) {
			spans = append(spans, s)
		}
	}

	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		add(loc[0], loc[1])
	}
	if v := digitNormalized(text); v.text != text {
		for _, loc := range phoneRe.FindAllStringIndex(v.text, -1) {
			start, end := v.spanToOriginal(loc[0], loc[1])
			start, end = trimToText(text, start, end)
			add(start, end)
		}
	}
	return spans
}

func (d *phoneDetector) suppressed(text string, start, end int) bool {
	// Count adjacent digits beyond the match on both sides.
	run := end - start
	for i := start - 1; i >= 0 && text[i] >= '0' && text[i] <= '9'; i-- {
		run++
	}
	for i := end; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		run++
	}
	if run >= 15 {
		return true
	}
	return containsAny(window(text, start, end, 25, 0), accountContextWords)
}

// --- insurance number (СНИЛС) ---

var insuranceRe = regexp.MustCompile(`\d{3}[ \-]\d{3}[ \-]\d{3}[ \-]?\d{2}`)
var insuranceContextWords = []string{"снилс", "страхов"}

// insuranceDetector requires a valid checksum or a nearby context keyword;
// an 11-digit sequence with neither signal is chance, not an identifier.
type insuranceDetector struct{}

func newInsuranceDetector() Detector { return &insuranceDetector{} }

func (d *insuranceDetector) Detect(text string) []Span {
	var spans []Span
	for _, loc := range insuranceRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		digits := onlyDigits(raw)
		if !checksum.ValidInsuranceNumber(digits) &&
			!containsAny(window(text, loc[0], loc[1], 40, 40), insuranceContextWords) {
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1], Type: EntityInsurance, Text: raw})
	}
	return spans
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// --- digit-run classified identifiers ---

var currencyWords = []string{
	"руб", "коп", "rub", "usd", "eur", "долл", "евро", "тенге", "грн",
	"сумма", "стоимост", "цена", "₽", "$", "€",
}

// runDetector classifies maximal digit runs by exact length plus an optional
// label requirement in the preceding window. Label-anchored types
// (TAX_ID_ORG, REGISTRATION_NUMBER, TAX_REG_CODE, SOLE_PROPRIETOR,
// BANK_ACCOUNT) only fire next to their keyword, to keep arbitrary
// same-length numbers out.
type runDetector struct {
	typ       EntityType
	length    int
	labels    []string // required in preceding window when non-empty
	rejectCtx []string // rejected when found around the run
}

func (d *runDetector) Detect(text string) []Span {
	var spans []Span
	for _, run := range findDigitRuns(text) {
		if len(run.digits) != d.length {
			continue
		}
		if len(d.labels) > 0 && !containsAny(window(text, run.start, run.end, 30, 0), d.labels) {
			continue
		}
		if len(d.rejectCtx) > 0 && containsAny(window(text, run.start, run.end, 25, 25), d.rejectCtx) {
			continue
		}
		spans = append(spans, Span{
			Start: run.start, End: run.end, Type: d.typ, Text: run.digits,
		})
	}
	return spans
}

// newPersonTaxIDDetector matches bare 12-digit runs, rejecting monetary
// context: large sums are otherwise indistinguishable from a personal ИНН.
func newPersonTaxIDDetector() Detector {
	return &runDetector{typ: EntityTaxIDPerson, length: 12, rejectCtx: currencyWords}
}

func newOrgTaxIDDetector() Detector {
	return &runDetector{typ: EntityTaxIDOrg, length: 10, labels: []string{"инн"}}
}

func newRegistrationDetector() Detector {
	return &runDetector{typ: EntityRegistration, length: 13, labels: []string{"огрн"}}
}

func newSoleProprietorDetector() Detector {
	return &runDetector{typ: EntitySoleProprietor, length: 15, labels: []string{"огрнип"}}
}

func newTaxRegCodeDetector() Detector {
	return &runDetector{typ: EntityTaxRegCode, length: 9, labels: []string{"кпп"}}
}

func newBankAccountDetector() Detector {
	return &runDetector{typ: EntityBankAccount, length: 20, labels: accountContextWords}
}
