package claude

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/llm"
)

// Config for the Anthropic Messages client.
type Config struct {
	APIKey          string // if empty, the SDK reads ANTHROPIC_API_KEY
	BaseURL         string
	Model           string // e.g., "claude-sonnet-4-5"
	Temperature     float32
	MaxTokens       int
	MaxInputChars   int
	Timeout         time.Duration
	LenientOptional bool
}

// messageCreator is the part of anthropic.MessageService we use.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Client struct {
	cfg      Config
	messages messageCreator
	log      *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{
		option.WithRequestTimeout(cfg.Timeout),
		// the processor falls back to rules instead of retrying
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	return newWithCreator(cfg, &client.Messages, logger)
}

func newWithCreator(cfg Config, m messageCreator, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, messages: m, log: logger}
}

// ExtractRider implements llm.RiderExtractor with a single Messages call.
func (c *Client) ExtractRider(ctx context.Context, text string) (*entity.StructuredRider, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "anthropic",
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	user := llm.BuildUserPrompt(text, c.cfg.MaxInputChars) + "\n\n" + llm.SchemaPrompt()
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		System: []anthropic.TextBlockParam{
			{Text: llm.BuildSystemPrompt()},
		},
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.cfg.Temperature))
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("no text in anthropic response")
	}

	out, err := llm.DecodeRider([]byte(content.String()), c.cfg.LenientOptional, c.log, rid)
	if err != nil {
		return nil, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"items", len(out.Items),
		"rooms", len(out.Rooms),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
