package async

import (
	"context"
	"errors"
	"time"

	"github.com/joseph-ayodele/rider-parser/internal/core"
)

// ErrQueueClosed is returned by Enqueue after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job is one document to parse.
type Job struct {
	ID          string // becomes the parse req_id; generated when empty
	Name        string // file name or "-" for stdin
	Text        string
	SubmittedAt time.Time
}

// Result is the outcome of one job. Index is the enqueue order.
type Result struct {
	Job     Job
	Index   int
	Outcome core.Outcome
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Results() <-chan Result
	Shutdown(ctx context.Context)
}
