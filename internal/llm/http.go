package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/rider-parser/internal/common"
)

const (
	// MaxResponseBytes caps a provider reply.
	MaxResponseBytes = 4 << 20

	userAgent       = "rider-parser"
	maxErrorExcerpt = 512
)

// JSONRequest is one POST to a provider endpoint.
type JSONRequest struct {
	URL     string
	Body    any
	Headers map[string]string
}

// StatusError is a non-2xx provider reply.
type StatusError struct {
	Status int
	Body   string // excerpt
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("non-2xx status: %d", e.Status)
	}
	return fmt.Sprintf("non-2xx status: %d: %s", e.Status, e.Body)
}

// Unwrap lets callers match provider failures with errors.Is(err, common.ErrExternal).
func (e *StatusError) Unwrap() error {
	return common.ErrExternal
}

// Retryable reports rate limiting and server side failures.
func (e *StatusError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// SendJSON posts r.Body as JSON and returns the raw reply body. The request id from
// ctx (or a fresh one) is sent as X-Request-ID. Replies over MaxResponseBytes are
// rejected rather than truncated.
func SendJSON(ctx context.Context, client *http.Client, r JSONRequest, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}

	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	log := logger.With("req_id", reqID)
	start := time.Now()

	bs, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", reqID)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	log.Debug("llm.http.request", "url", r.URL, "content_length", len(bs))

	resp, err := client.Do(req)
	if err != nil {
		log.Warn("llm.http.send_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn("llm.http.response_body_close_error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Debug("llm.http.response",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Status: resp.StatusCode, Body: excerpt(raw)}
	}
	if len(raw) > MaxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseBytes)
	}
	return raw, nil
}

func excerpt(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > maxErrorExcerpt {
		return string(b[:maxErrorExcerpt]) + "…"
	}
	return string(b)
}
