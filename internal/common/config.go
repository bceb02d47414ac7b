package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/joseph-ayodele/rider-parser/constants"
)

const (
	EnvPrefix         = "RIDER_"
	maxConfigFileSize = 1024 * 1024
)

// LLM provider names.
const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds all application configuration
type Config struct {
	Engine EngineConfig `koanf:"engine"`
	LLM    LLMConfig    `koanf:"llm"`
	Queue  QueueConfig  `koanf:"queue"`
	Log    LogConfig    `koanf:"log"`
}

// EngineConfig holds the thresholds of the rule engine
type EngineConfig struct {
	MinArtistLength          int  `koanf:"min_artist_length"`
	MinItemNameLength        int  `koanf:"min_item_name_length"`
	MaxCategoryLength        int  `koanf:"max_category_length"`
	ContactWindowBefore      int  `koanf:"contact_window_before"`
	ContactWindowAfter       int  `koanf:"contact_window_after"`
	AllergyMaxLength         int  `koanf:"allergy_max_length"`
	AllergyVerbatimMaxLength int  `koanf:"allergy_verbatim_max_length"`
	MustHaveLookahead        int  `koanf:"must_have_lookahead"`
	ConcurrentExtractors     bool `koanf:"concurrent_extractors"`
}

// LLMConfig holds the optional external extractor configuration
type LLMConfig struct {
	Provider          string        `koanf:"provider"`
	Model             string        `koanf:"model"`
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Temperature       float32       `koanf:"temperature"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxTokens         int           `koanf:"max_tokens"`
	MaxInputChars     int           `koanf:"max_input_chars"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
	Lenient           bool          `koanf:"lenient"`
}

// QueueConfig holds batch worker pool configuration
type QueueConfig struct {
	Workers int           `koanf:"workers"`
	Size    int           `koanf:"size"`
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			MinArtistLength:          constants.DefaultMinArtistLength,
			MinItemNameLength:        constants.DefaultMinItemNameLength,
			MaxCategoryLength:        constants.DefaultMaxCategoryLength,
			ContactWindowBefore:      constants.DefaultContactWindowBefore,
			ContactWindowAfter:       constants.DefaultContactWindowAfter,
			AllergyMaxLength:         constants.DefaultAllergyMaxLength,
			AllergyVerbatimMaxLength: constants.DefaultAllergyVerbatimMaxLength,
			MustHaveLookahead:        constants.DefaultMustHaveLookahead,
			ConcurrentExtractors:     true,
		},
		LLM: LLMConfig{
			Provider:      ProviderNone,
			Temperature:   0,
			Timeout:       45 * time.Second,
			MaxTokens:     4096,
			MaxInputChars: 12000,
			Lenient:       true,
		},
		Queue: QueueConfig{
			Workers: 4,
			Size:    64,
			Timeout: 2 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration with precedence defaults < YAML file < environment.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var content []byte
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, NewAppError(CodeConfig, "stat config file", err)
		}
		if info.Size() > maxConfigFileSize {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("config file %s exceeds %d bytes", path, maxConfigFileSize), ErrInvalidInput)
		}
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
	}
	return ParseConfig(content)
}

// ParseConfig builds the configuration from YAML content (may be empty) and the
// process environment.
func ParseConfig(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, NewAppError(CodeConfig, "parse config yaml", err)
		}
	}

	// RIDER_ENGINE_MIN_ARTIST_LENGTH -> engine.min_artist_length
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, NewAppError(CodeConfig, "load environment", err)
	}

	// unmarshal over the defaults so keys absent from file and env keep them
	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, NewAppError(CodeConfig, "unmarshal config", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderNone
	}
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case ProviderOpenAI:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderAnthropic:
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case ProviderGemini:
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderOpenAI:
			cfg.LLM.Model = "gpt-4o-mini"
		case ProviderAnthropic:
			cfg.LLM.Model = "claude-sonnet-4-5"
		case ProviderGemini:
			cfg.LLM.Model = "gemini-2.5-flash"
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("engine.min_artist_length", c.Engine.MinArtistLength, Positive).
		Field("engine.min_item_name_length", c.Engine.MinItemNameLength, Positive).
		Field("engine.max_category_length", c.Engine.MaxCategoryLength, Positive).
		Field("engine.contact_window_before", c.Engine.ContactWindowBefore, Positive).
		Field("engine.contact_window_after", c.Engine.ContactWindowAfter, Positive).
		Field("engine.allergy_max_length", c.Engine.AllergyMaxLength, Positive).
		Field("engine.allergy_verbatim_max_length", c.Engine.AllergyVerbatimMaxLength, Positive).
		Field("engine.must_have_lookahead", c.Engine.MustHaveLookahead, Positive).
		Field("llm.provider", c.LLM.Provider, OneOf(ProviderNone, ProviderOpenAI, ProviderAnthropic, ProviderGemini)).
		Field("llm.temperature", c.LLM.Temperature, NonNegative).
		Field("llm.timeout", c.LLM.Timeout, Positive).
		Field("llm.max_tokens", c.LLM.MaxTokens, Positive).
		Field("llm.max_input_chars", c.LLM.MaxInputChars, Positive).
		Field("llm.requests_per_minute", c.LLM.RequestsPerMinute, NonNegative).
		Field("queue.workers", c.Queue.Workers, Positive).
		Field("queue.size", c.Queue.Size, Positive).
		Field("queue.timeout", c.Queue.Timeout, Positive).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "warning", "error")).
		Field("log.format", c.Log.Format, OneOf("json", "text"))

	// a local OpenAI-compatible server needs no key
	if c.LLM.Provider != ProviderNone && !(c.LLM.Provider == ProviderOpenAI && c.LLM.BaseURL != "") {
		v.Field("llm.api_key", c.LLM.APIKey, Required)
	}

	return ValidateAndReturnError(v, CodeConfig)
}

// ExternalEnabled reports whether an external extractor is configured.
func (c *Config) ExternalEnabled() bool {
	return c != nil && c.LLM.Provider != "" && c.LLM.Provider != ProviderNone
}
