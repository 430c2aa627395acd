package model

import "time"

// Config is the complete application configuration, loadable from
// ~/.doctag/config.yaml and DOCTAG_* environment variables via viper.
type Config struct {
	Anonymize   AnonymizeConfig   `yaml:"anonymize" mapstructure:"anonymize"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AnonymizeConfig controls which PII categories get masked.
type AnonymizeConfig struct {
	// Entities is the allow-list of entity type names (e.g. "PERSON_NAME",
	// "PHONE"). Empty means all supported types.
	Entities []string `yaml:"entities" mapstructure:"entities"`
}

// ValidationConfig holds thresholds and reference lists for L1–L4.
type ValidationConfig struct {
	ConfidenceLow  float64 `yaml:"confidence_low" mapstructure:"confidence_low"`
	ConfidenceHigh float64 `yaml:"confidence_high" mapstructure:"confidence_high"`

	// Mode governs the AI self-verification pass: "off", "selective"
	// (only warning/unreliable documents), or "full".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// TypeHints is the known document-type list for the L2 fuzzy match.
	TypeHints []string `yaml:"type_hints" mapstructure:"type_hints"`

	// HallucinationNames are counterparty values that indicate the model
	// echoed a template or a bare role word instead of a real party.
	HallucinationNames []string `yaml:"hallucination_names" mapstructure:"hallucination_names"`
}

// LLMConfig configures the metadata extraction client.
// Any OpenAI-compatible endpoint works.
type LLMConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Model             string  `yaml:"model" mapstructure:"model"`
	FallbackBaseURL   string  `yaml:"fallback_base_url" mapstructure:"fallback_base_url"`
	FallbackModel     string  `yaml:"fallback_model" mapstructure:"fallback_model"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// APIKey is normally supplied via DOCTAG_LLM_API_KEY or OPENAI_API_KEY.
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// ExtractConfig bounds the text extraction stage.
type ExtractConfig struct {
	Extensions    []string `yaml:"extensions" mapstructure:"extensions"`
	MaxFileSizeMB int      `yaml:"max_file_size_mb" mapstructure:"max_file_size_mb"`
}

// ConcurrencyConfig sizes the document worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls caching of extraction results by text hash.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	JSON    string `yaml:"json" mapstructure:"json"`
	Excel   string `yaml:"excel" mapstructure:"excel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Anonymize: AnonymizeConfig{
			Entities: nil, // all
		},
		Validation: ValidationConfig{
			ConfidenceLow:  0.5,
			ConfidenceHigh: 0.8,
			Mode:           "off",
			TypeHints: []string{
				"Договор поставки",
				"Договор оказания услуг",
				"Договор подряда",
				"Договор аренды",
				"Договор займа",
				"Договор купли-продажи",
				"Трудовой договор",
				"Договор цессии",
				"Лицензионный договор",
				"Агентский договор",
				"Договор хранения",
				"Договор комиссии",
				"Дополнительное соглашение",
				"Рамочный договор",
				"NDA / Соглашение о конфиденциальности",
			},
			HallucinationNames: []string{
				"ооо ромашка", "ип иванов", "заказчик", "исполнитель",
				"покупатель", "продавец", "арендатор", "арендодатель",
			},
		},
		LLM: LLMConfig{
			Model:             "gpt-4o-mini",
			MaxRetries:        3,
			MaxTokens:         4000,
			TimeoutSeconds:    60,
			RequestsPerSecond: 1,
		},
		Extract: ExtractConfig{
			Extensions:    []string{".txt", ".pdf"},
			MaxFileSizeMB: 50,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			JSON: "results.json",
		},
	}
}
