package llm

import "testing"

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // expected value of the "contract_type" key
	}{
		{
			"bare object",
			`{"contract_type": "Договор поставки"}`,
			"Договор поставки",
		},
		{
			"json fence",
			"```json\n{\"contract_type\": \"Договор аренды\"}\n```",
			"Договор аренды",
		},
		{
			"plain fence",
			"```\n{\"contract_type\": \"Договор займа\"}\n```",
			"Договор займа",
		},
		{
			"reasoning tags stripped",
			"<think>\nlet me look at the dates {not json}\n</think>\n{\"contract_type\": \"Договор подряда\"}",
			"Договор подряда",
		},
		{
			"prose around the object",
			"Вот результат:\n{\"contract_type\": \"Трудовой договор\"}\nНадеюсь, это поможет!",
			"Трудовой договор",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseJSONResponse(tt.raw)
			if err != nil {
				t.Fatalf("ParseJSONResponse: %v", err)
			}
			if got := obj["contract_type"]; got != tt.want {
				t.Errorf("contract_type = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponseNoObject(t *testing.T) {
	for _, raw := range []string{"", "no json here", "<think>only reasoning</think>"} {
		if _, err := ParseJSONResponse(raw); err == nil {
			t.Errorf("ParseJSONResponse(%q) succeeded, want error", raw)
		}
	}
}
