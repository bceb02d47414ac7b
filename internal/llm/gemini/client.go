package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/llm"
)

// Config for the Gemini API client.
type Config struct {
	APIKey          string
	Model           string // e.g., "gemini-2.5-flash"
	Temperature     float32
	MaxTokens       int
	MaxInputChars   int
	Timeout         time.Duration
	LenientOptional bool
}

// contentGenerator is the part of genai.Models we use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	cfg    Config
	models contentGenerator
	log    *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newWithGenerator(cfg, client.Models, logger), nil
}

func newWithGenerator(cfg Config, g contentGenerator, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, models: g, log: logger}
}

// ExtractRider implements llm.RiderExtractor with one GenerateContent call in JSON mode.
func (c *Client) ExtractRider(ctx context.Context, text string) (*entity.StructuredRider, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "gemini",
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.cfg.Temperature),
		SystemInstruction: genai.NewContentFromText(llm.BuildSystemPrompt(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	if c.cfg.MaxTokens > 0 {
		config.MaxOutputTokens = int32(c.cfg.MaxTokens)
	}

	user := llm.BuildUserPrompt(text, c.cfg.MaxInputChars) + "\n\n" + llm.SchemaPrompt()
	resp, err := c.models.GenerateContent(ctx, c.cfg.Model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}, config)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("gemini: %w", err)
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("no text in gemini response")
	}

	out, err := llm.DecodeRider([]byte(content), c.cfg.LenientOptional, c.log, rid)
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
