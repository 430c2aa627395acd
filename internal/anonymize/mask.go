package anonymize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// AnonymizedText is the result of one anonymization call. Replacements maps
// each mask token to the first-seen original form; Stats counts every
// occurrence per entity type, repeats included. The caller owns the value;
// the engine keeps no state between calls.
type AnonymizedText struct {
	Text         string             `json:"text"`
	Replacements map[string]string  `json:"replacements"`
	Stats        map[EntityType]int `json:"stats"`
}

// applyMasks rewrites the text over a resolved, non-overlapping span set.
// Spans are processed by descending start offset so each replacement leaves
// all not-yet-processed offsets intact; mask counters therefore allocate in
// reverse-replacement order (right to left by first occurrence), which is
// the stable, documented numbering for this engine.
//
// Two spans of one type with the same normalized value (lowercased,
// whitespace-collapsed) share one mask token.
func applyMasks(text string, spans []Span) AnonymizedText {
	out := AnonymizedText{
		Text:         text,
		Replacements: make(map[string]string),
		Stats:        make(map[EntityType]int),
	}
	if len(spans) == 0 {
		return out
	}

	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	counters := make(map[EntityType]int)
	seen := make(map[string]string) // "TYPE:normalized value" → mask

	result := text
	for _, s := range ordered {
		normalized := strings.ToLower(strings.Join(strings.Fields(s.Text), " "))
		key := string(s.Type) + ":" + normalized

		mask, ok := seen[key]
		if !ok {
			counters[s.Type]++
			mask = fmt.Sprintf("[%s_%d]", s.Type, counters[s.Type])
			seen[key] = mask
			out.Replacements[mask] = s.Text
		}
		out.Stats[s.Type]++

		result = result[:s.Start] + mask + result[s.End:]
	}
	out.Text = result
	return out
}

// maskTokenRe matches mask-shaped tokens: [TYPE_N] with an upper-case type
// tag. Used to scrub tokens a downstream model invented.
var maskTokenRe = regexp.MustCompile(`\[[A-ZА-ЯЁ][A-ZА-ЯЁ_]*_\d+\]`)

// Restore substitutes every known mask with its original value, then strips
// any remaining mask-shaped tokens. A language model sometimes fabricates a
// mask index that was never issued ([PERSON_NAME_7] when only two exist);
// those must not leak into output. Surrounding whitespace is kept as-is, so
// restoring an anonymized text reproduces the input exactly; callers that
// want trimmed field values trim themselves.
func Restore(text string, replacements map[string]string) string {
	if text == "" {
		return text
	}
	for mask, original := range replacements {
		text = strings.ReplaceAll(text, mask, original)
	}
	return maskTokenRe.ReplaceAllString(text, "")
}
