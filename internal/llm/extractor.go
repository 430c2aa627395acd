package llm

import (
	"context"
	"fmt"
	"strings"

	"doctag/internal/model"
)

const extractSystemPrompt = `Ты — помощник юриста. Из текста договора извлеки метаданные и верни СТРОГО один JSON-объект без пояснений. Персональные данные в тексте заменены токенами вида [PERSON_NAME_1], [PHONE_2] — используй токены как есть, не выдумывай имена.`

const extractUserTemplate = `Извлеки метаданные из договора ниже.

Верни JSON со следующими полями:
- "contract_type": тип договора%s
- "counterparty": наименование контрагента (вторая сторона)
- "subject": предмет договора, кратко
- "date_signed": дата подписания в формате YYYY-MM-DD, либо null
- "date_start": дата начала действия в формате YYYY-MM-DD, либо null
- "date_end": дата окончания действия в формате YYYY-MM-DD, либо null
- "amount": сумма договора как в тексте (с валютой), либо null
- "special_conditions": список особых условий (массив строк)
- "parties": список сторон договора (массив строк)
- "confidence": твоя уверенность в извлечённых данных, число от 0 до 1

Текст договора:
---
%s
---`

// Extractor turns anonymized document text into structured metadata.
type Extractor struct {
	client    *Client
	typeHints []string
}

// NewExtractor wires a client with the known document-type list, which is
// embedded in the prompt so the model prefers canonical type names.
func NewExtractor(client *Client, typeHints []string) *Extractor {
	return &Extractor{client: client, typeHints: typeHints}
}

// Extract asks the model for metadata and coerces whatever comes back into
// a well-formed record. A transport or parse failure is an error; malformed
// field values are not; they degrade to zero values with confidence 0.
func (e *Extractor) Extract(ctx context.Context, anonymizedText string) (model.ContractMetadata, error) {
	hint := ""
	if len(e.typeHints) > 0 {
		hint = fmt.Sprintf(" (обычно один из: %s)", strings.Join(e.typeHints, "; "))
	}
	user := fmt.Sprintf(extractUserTemplate, hint, anonymizedText)

	raw, err := e.client.Complete(ctx, extractSystemPrompt, user)
	if err != nil {
		return model.EmptyMetadata(), err
	}

	obj, err := ParseJSONResponse(raw)
	if err != nil {
		return model.EmptyMetadata(), err
	}
	return model.MetadataFromMap(obj), nil
}
