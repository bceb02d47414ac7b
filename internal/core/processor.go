package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/core/aggregate"
	"github.com/joseph-ayodele/rider-parser/internal/core/classify"
	"github.com/joseph-ayodele/rider-parser/internal/core/extract"
	"github.com/joseph-ayodele/rider-parser/internal/core/normalize"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/llm"
)

// Processor coordinates normalization, the optional external extractor and the
// deterministic rule engine.
type Processor struct {
	logger     *slog.Logger
	external   llm.RiderExtractor
	fields     *extract.Extractor
	classifier *classify.Classifier
	concurrent bool
}

// Outcome is a parsed rider plus how it was produced.
type Outcome struct {
	Rider     *entity.StructuredRider
	Source    constants.Source
	Elapsed   time.Duration
	RequestID string
}

// NewProcessor builds a processor. external may be nil, in which case every parse
// uses the rule engine.
func NewProcessor(logger *slog.Logger, external llm.RiderExtractor, cfg common.EngineConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:   logger,
		external: external,
		fields: extract.New(extract.Options{
			MinArtistLength:          cfg.MinArtistLength,
			ContactWindowBefore:      cfg.ContactWindowBefore,
			ContactWindowAfter:       cfg.ContactWindowAfter,
			AllergyMaxLength:         cfg.AllergyMaxLength,
			AllergyVerbatimMaxLength: cfg.AllergyVerbatimMaxLength,
			MustHaveLookahead:        cfg.MustHaveLookahead,
		}),
		classifier: classify.New(classify.Options{
			MinItemNameLength: cfg.MinItemNameLength,
			MaxCategoryLength: cfg.MaxCategoryLength,
		}),
		concurrent: cfg.ConcurrentExtractors,
	}
}

// Parse returns the structured rider for text. Bytes that are not valid UTF-8 are
// dropped, so every input yields a rider.
func (p *Processor) Parse(ctx context.Context, text string) *entity.StructuredRider {
	return p.Process(ctx, text).Rider
}

// Process is Parse with outcome metadata. The external extractor, when set, is
// tried exactly once; any error, panic or empty result falls back to the rules.
func (p *Processor) Process(ctx context.Context, text string) Outcome {
	start := time.Now()
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
		ctx = common.WithRequestID(ctx, reqID)
	}
	log := common.LoggerFromContext(ctx, p.logger).With("req_id", reqID)

	if !utf8.ValidString(text) {
		repaired := strings.ToValidUTF8(text, "")
		log.Warn("processor.parse.invalid_utf8", "bytes", len(text), "dropped_bytes", len(text)-len(repaired))
		text = repaired
	}

	normalized := normalize.Text(text)
	log.Debug("processor.parse.start", "bytes", len(text), "normalized_bytes", len(normalized))

	if p.external != nil {
		if rider, ok := p.runExternal(ctx, log, normalized); ok {
			out := Outcome{Rider: rider, Source: constants.SourceExternal, Elapsed: time.Since(start), RequestID: reqID}
			p.logOutcome(log, out)
			return out
		}
	}

	out := Outcome{
		Rider:     p.Rules(ctx, normalized),
		Source:    constants.SourceRules,
		Elapsed:   time.Since(start),
		RequestID: reqID,
	}
	p.logOutcome(log, out)
	return out
}

// Rules runs the deterministic path on already normalized text.
func (p *Processor) Rules(ctx context.Context, text string) *entity.StructuredRider {
	var facets extract.Facets
	if p.concurrent {
		f, err := p.fields.AllConcurrent(ctx, text)
		if err != nil {
			// a cancelled ctx still gets a full result
			f = p.fields.All(text)
		}
		facets = f
	} else {
		facets = p.fields.All(text)
	}
	res := p.classifier.Run(text)
	return aggregate.Aggregate(facets, res.Items)
}

func (p *Processor) runExternal(ctx context.Context, log *slog.Logger, text string) (rider *entity.StructuredRider, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			err := common.NewAppError(common.CodeInternal, fmt.Sprintf("extractor panic: %v", rec), common.ErrInternal)
			log.Warn("processor.external.panic", "error", err)
			rider, ok = nil, false
		}
	}()

	r, err := p.external.ExtractRider(ctx, text)
	if err != nil {
		err = common.NewAppError(common.CodeExternal, "extract rider", fmt.Errorf("%w: %w", common.ErrExternal, err))
		log.Warn("processor.external.failed", "error", err, "code", common.CodeOf(err))
		return nil, false
	}
	if !aggregate.HasItems(r) {
		log.Warn("processor.external.empty")
		return nil, false
	}
	return aggregate.Coerce(r), true
}

func (p *Processor) logOutcome(log *slog.Logger, out Outcome) {
	log.Info("processor.parse.ok",
		"source", out.Source,
		"items", len(out.Rider.Items),
		"rooms", len(out.Rider.Rooms),
		"categories", len(out.Rider.Categories),
		"elapsed_ms", out.Elapsed.Milliseconds(),
	)
}
