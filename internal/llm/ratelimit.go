package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

// Limit wraps ex so that at most rpm calls start per minute. rpm <= 0 returns ex unchanged.
func Limit(ex RiderExtractor, rpm int) RiderExtractor {
	if ex == nil || rpm <= 0 {
		return ex
	}
	lim := rate.NewLimiter(rate.Limit(float64(rpm)/60), 1)
	return ExtractorFunc(func(ctx context.Context, text string) (*entity.StructuredRider, error) {
		if err := lim.Wait(ctx); err != nil {
			return nil, err
		}
		return ex.ExtractRider(ctx, text)
	})
}
