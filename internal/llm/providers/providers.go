// Package providers builds the configured external rider extractor.
package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/llm"
	"github.com/joseph-ayodele/rider-parser/internal/llm/claude"
	"github.com/joseph-ayodele/rider-parser/internal/llm/gemini"
	"github.com/joseph-ayodele/rider-parser/internal/llm/openai"
)

// New returns the extractor for cfg.Provider, rate limited when configured.
// Provider "none" returns a nil extractor and no error.
func New(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.RiderExtractor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var ex llm.RiderExtractor
	switch cfg.Provider {
	case "", common.ProviderNone:
		return nil, nil
	case common.ProviderOpenAI:
		ex = openai.NewClient(openai.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			Timeout:         cfg.Timeout,
			MaxInputChars:   cfg.MaxInputChars,
			LenientOptional: cfg.Lenient,
		}, logger)
	case common.ProviderAnthropic:
		ex = claude.NewClient(claude.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			MaxInputChars:   cfg.MaxInputChars,
			Timeout:         cfg.Timeout,
			LenientOptional: cfg.Lenient,
		}, logger)
	case common.ProviderGemini:
		g, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:          cfg.APIKey,
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			MaxInputChars:   cfg.MaxInputChars,
			Timeout:         cfg.Timeout,
			LenientOptional: cfg.Lenient,
		}, logger)
		if err != nil {
			return nil, common.NewAppError(common.CodeConfig, "gemini client", err)
		}
		ex = g
	default:
		return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("unknown llm provider %q", cfg.Provider), common.ErrNotConfigured)
	}

	logger.Info("llm.provider.ready",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"requests_per_minute", cfg.RequestsPerMinute,
	)
	return llm.Limit(ex, cfg.RequestsPerMinute), nil
}
