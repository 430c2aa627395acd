package anonymize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// textVariant is a rewritten copy of a text together with a boundary map,
// so matches found in the variant can be reported against the original.
//
// bounds has len(text)+1 entries: the variant prefix [0,i) corresponds to
// the original prefix [0,bounds[i]).
type textVariant struct {
	text   string
	bounds []int
}

// spanToOriginal maps a [start,end) byte range in the variant back to the
// original text.
func (v *textVariant) spanToOriginal(start, end int) (int, int) {
	return v.bounds[start], v.bounds[end]
}

type variantBuilder struct {
	b      strings.Builder
	bounds []int
}

func newVariantBuilder() *variantBuilder {
	return &variantBuilder{bounds: []int{0}}
}

// copyFrom appends orig[p:q] verbatim, keeping byte boundaries exact.
func (vb *variantBuilder) copyFrom(orig string, p, q int) {
	vb.b.WriteString(orig[p:q])
	for i := p + 1; i <= q; i++ {
		vb.bounds = append(vb.bounds, i)
	}
}

// emit appends replacement text produced from the original range ending at
// origEnd. All boundaries inside the emitted piece collapse to origEnd.
func (vb *variantBuilder) emit(s string, origEnd int) {
	vb.b.WriteString(s)
	for i := 0; i < len(s); i++ {
		vb.bounds = append(vb.bounds, origEnd)
	}
}

func (vb *variantBuilder) build() *textVariant {
	return &textVariant{text: vb.b.String(), bounds: vb.bounds}
}

// confusableDigits maps Cyrillic (and Latin) letters that are visually
// confusable with digits to the digit they resemble. OCR output and
// deliberately obfuscated phone numbers use these.
var confusableDigits = map[rune]byte{
	'О': '0', 'о': '0', 'O': '0', 'o': '0',
	'З': '3', 'з': '3',
	'Б': '6', 'б': '6',
	'Ч': '4', 'ч': '4',
	'I': '1', 'l': '1',
}

// digitNormalized returns a variant with confusable letters replaced by the
// digits they resemble. A letter is only replaced when a digit or another
// confusable letter is adjacent, so ordinary words stay untouched.
func digitNormalized(text string) *textVariant {
	vb := newVariantBuilder()
	runes := []rune(text)
	offsets := runeOffsets(text)

	digitish := func(i int) bool {
		if i < 0 || i >= len(runes) {
			return false
		}
		r := runes[i]
		if r >= '0' && r <= '9' {
			return true
		}
		_, ok := confusableDigits[r]
		return ok
	}

	pending := 0 // start byte of the unwritten original tail
	for i, r := range runes {
		d, ok := confusableDigits[r]
		if !ok || (!digitish(i-1) && !digitish(i+1)) {
			continue
		}
		start := offsets[i]
		end := start + utf8.RuneLen(r)
		vb.copyFrom(text, pending, start)
		vb.emit(string(d), end)
		pending = end
	}
	vb.copyFrom(text, pending, len(text))
	return vb.build()
}

// sentenceBounded returns a variant with a period inserted before
// line-initial field labels ("Телефон:", "Email:"). A name immediately
// followed by a newline and such a label loses its sentence boundary and
// the recognizer misses it; the period restores the boundary.
func sentenceBounded(text string) *textVariant {
	vb := newVariantBuilder()
	pending := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if !lineStartsWithLabel(text[i+1:]) {
			continue
		}
		// Skip if the previous line already ends a sentence.
		if j := lastNonSpace(text[:i]); j >= 0 && strings.ContainsRune(".!?:;", rune(text[j])) {
			continue
		}
		vb.copyFrom(text, pending, i)
		vb.emit(".", i)
		vb.copyFrom(text, i, i+1)
		pending = i + 1
	}
	vb.copyFrom(text, pending, len(text))
	return vb.build()
}

// lineStartsWithLabel reports whether rest begins (after indentation) with a
// short capitalized word followed by a colon, i.e. a structural field label.
func lineStartsWithLabel(rest string) bool {
	k := 0
	for k < len(rest) && (rest[k] == ' ' || rest[k] == '\t') {
		k++
	}
	rest = rest[k:]
	first, size := utf8.DecodeRuneInString(rest)
	if size == 0 || !unicode.IsUpper(first) {
		return false
	}
	letters := 1
	for j := size; j < len(rest); {
		r, n := utf8.DecodeRuneInString(rest[j:])
		if r == ':' {
			return true
		}
		if !unicode.IsLetter(r) && r != '-' && r != '/' && r != ' ' {
			return false
		}
		letters++
		if letters > 24 {
			return false
		}
		j += n
	}
	return false
}

func lastNonSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\r' && s[i] != '\n' {
			return i
		}
	}
	return -1
}

// deSpaced reconstructs words from runs of single characters separated by
// single spaces ("И в а н о в" → "Иванов"), an artifact of character-level
// OCR. Only runs of three or more letters are collapsed.
func deSpaced(text string) *textVariant {
	vb := newVariantBuilder()
	runes := []rune(text)
	offsets := runeOffsets(text)
	pending := 0

	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) || !isSingleChar(runes, i) {
			i++
			continue
		}
		// Collect the run: letter (space letter)+ with single spaces.
		j := i
		count := 1
		for j+2 < len(runes) && runes[j+1] == ' ' && unicode.IsLetter(runes[j+2]) && isSingleChar(runes, j+2) {
			j += 2
			count++
		}
		if count < 3 {
			i = j + 1
			continue
		}
		start := offsets[i]
		end := offsets[j] + utf8.RuneLen(runes[j])
		var word strings.Builder
		for k := i; k <= j; k += 2 {
			word.WriteRune(runes[k])
		}
		vb.copyFrom(text, pending, start)
		vb.emit(word.String(), end)
		pending = end
		i = j + 1
	}
	vb.copyFrom(text, pending, len(text))
	return vb.build()
}

// isSingleChar reports whether the letter at index i is isolated: its rune
// neighbours are not letters.
func isSingleChar(runes []rune, i int) bool {
	if i > 0 && unicode.IsLetter(runes[i-1]) {
		return false
	}
	if i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
		return false
	}
	return true
}

// runeOffsets returns the byte offset of every rune in text.
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text))
	for i := range text {
		offsets = append(offsets, i)
	}
	return offsets
}
