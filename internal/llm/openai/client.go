package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/llm"
)

// ExtractRider implements llm.RiderExtractor using text-only chat/completions in JSON mode.
func (c *Client) ExtractRider(ctx context.Context, text string) (*entity.StructuredRider, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "openai",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(text, c.cfg.MaxInputChars) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": llm.SchemaPrompt()},
		},
	}

	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := llm.SendJSON(ctx, c.httpClient, llm.JSONRequest{URL: endpoint, Body: body, Headers: headers}, c.log)
	if err != nil {
		status, retryable := 0, false
		var se *llm.StatusError
		if errors.As(err, &se) {
			status, retryable = se.Status, se.Retryable()
		}
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "retryable", retryable, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("openai: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("no choices in openai response")
	}

	out, err := llm.DecodeRider([]byte(cc.Choices[0].Message.Content), c.cfg.LenientOptional, c.log, rid)
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
