package llm

import (
	"context"

	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

// RiderExtractor is an optional external source of structured riders, usually a
// hosted language model. The processor calls it once per document and falls back
// to the rule engine on any error or empty result.
type RiderExtractor interface {
	ExtractRider(ctx context.Context, text string) (*entity.StructuredRider, error)
}

// ExtractorFunc adapts a function to RiderExtractor.
type ExtractorFunc func(ctx context.Context, text string) (*entity.StructuredRider, error)

func (f ExtractorFunc) ExtractRider(ctx context.Context, text string) (*entity.StructuredRider, error) {
	return f(ctx, text)
}
