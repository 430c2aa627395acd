package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	thinkTagRe  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
)

// ParseJSONResponse pulls a JSON object out of a chat response. Models wrap
// their answer in reasoning tags, markdown fences, or commentary; the parser
// strips <think> blocks, unwraps the first code fence, and as a last resort
// takes the outermost {...} slice of the remaining text.
func ParseJSONResponse(raw string) (map[string]any, error) {
	text := strings.TrimSpace(thinkTagRe.ReplaceAllString(raw, ""))

	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out, nil
		}
	}

	return nil, fmt.Errorf("llm: response contains no parseable JSON object")
}
