package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"doctag/internal/model"
)

const verifySystemPrompt = `Ты — контролёр качества извлечения данных из договоров. Сравни извлечённые метаданные с текстом договора и верни СТРОГО один JSON-объект.`

const verifyUserTemplate = `Проверь, соответствуют ли метаданные тексту договора.

Верни JSON:
- "verified": true, если все поля соответствуют тексту, иначе false
- "corrections": объект {имя_поля: исправленное_значение} только для неверных полей; допустимые имена полей: contract_type, counterparty, subject, date_signed, date_start, date_end, amount
- "note": краткое пояснение на русском, либо null

Метаданные:
%s

Текст договора:
---
%s
---`

// Verification is the outcome of one AI self-verification pass.
type Verification struct {
	Verified    bool
	Corrections map[string]string
	Note        string
}

// Verify asks the model to double-check extracted metadata against the
// anonymized source text. Corrections for fields outside the settable
// whitelist are dropped; applying them is the caller's decision.
func (e *Extractor) Verify(ctx context.Context, anonymizedText string, m model.ContractMetadata) (Verification, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return Verification{}, fmt.Errorf("llm: encode metadata: %w", err)
	}
	user := fmt.Sprintf(verifyUserTemplate, string(encoded), anonymizedText)

	raw, err := e.client.Complete(ctx, verifySystemPrompt, user)
	if err != nil {
		return Verification{}, err
	}

	obj, err := ParseJSONResponse(raw)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{Corrections: make(map[string]string)}
	if verified, ok := obj["verified"].(bool); ok {
		v.Verified = verified
	}
	if note, ok := obj["note"].(string); ok {
		v.Note = note
	}
	if corrections, ok := obj["corrections"].(map[string]any); ok {
		for field, value := range corrections {
			s, ok := value.(string)
			if !ok {
				continue
			}
			// Validate field names against the metadata whitelist up front so
			// callers can apply the map blindly.
			if _, known := m.Field(field); known {
				v.Corrections[field] = s
			}
		}
	}
	return v, nil
}
