package tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agnivade/levenshtein"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/gosimp/internal/telemetry"
)

// Dispatcher routes tool requests to the gosimp operations. It is safe for
// concurrent use.
type Dispatcher struct {
	logger   *slog.Logger
	maxBatch int
	workers  int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxBatch caps the number of requests accepted by Batch.
func WithMaxBatch(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxBatch = n
		}
	}
}

// WithWorkers sets how many batch requests run concurrently.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// NewDispatcher returns a dispatcher with a discarding logger, a batch
// limit of 64 and 4 workers unless overridden.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBatch: 64,
		workers:  4,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Call runs one tool request. Tool failures are returned as errors
// wrapping ErrUnknownTool, ErrMissingParam, ErrInvalidParam or an error
// from the gosimp package.
func (d *Dispatcher) Call(ctx context.Context, req ToolRequest) (resp ToolResponse, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "tools.Call", attribute.String("tool", req.Tool))
	defer span.End()
	logger := telemetry.LoggerWithTrace(ctx, d.logger).With(slog.String("tool", req.Tool))

	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			telemetry.RecordError(span, err)
			logger.WarnContext(ctx, "tool call failed", slog.String("error", err.Error()))
		} else {
			logger.DebugContext(ctx, "tool call completed", slog.Duration("duration", time.Since(start)))
		}
		telemetry.ObserveToolCall(req.Tool, status, time.Since(start))
		resp.ID = req.ID
	}()

	if err := ctx.Err(); err != nil {
		return ToolResponse{}, err
	}
	if req.Tool == "mcp_spec" {
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}, nil
	}
	t, ok := lookup(req.Tool)
	if !ok {
		if s := suggest(req.Tool); s != "" {
			return ToolResponse{}, fmt.Errorf("%w: %s (did you mean %q?)", ErrUnknownTool, req.Tool, s)
		}
		return ToolResponse{}, fmt.Errorf("%w: %s", ErrUnknownTool, req.Tool)
	}
	return t.run(ctx, logger, params(req.Params))
}

// Handle runs one tool request and folds any failure into the Error field.
func (d *Dispatcher) Handle(ctx context.Context, req ToolRequest) ToolResponse {
	resp, err := d.Call(ctx, req)
	if err != nil {
		return ToolResponse{ID: req.ID, Error: err.Error()}
	}
	return resp
}

// Batch runs reqs concurrently and returns one response per request in
// order. A failing request only sets the Error field of its own response.
func (d *Dispatcher) Batch(ctx context.Context, reqs []ToolRequest) ([]ToolResponse, error) {
	if len(reqs) > d.maxBatch {
		return nil, fmt.Errorf("%w: %d requests, limit %d", ErrBatchTooLarge, len(reqs), d.maxBatch)
	}
	telemetry.ObserveBatch(len(reqs))
	ctx, span := telemetry.StartSpan(ctx, "tools.Batch", attribute.Int("batch.size", len(reqs)))
	defer span.End()

	results := make([]ToolResponse, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			results[i] = d.Handle(gCtx, reqs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return results, nil
}

// suggest returns the closest registered tool name, or "" when nothing is
// within three edits.
func suggest(name string) string {
	best, bestDist := "", 4
	for _, n := range Names() {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

var defaultDispatcher = NewDispatcher()

// HandleToolCall runs req on a default dispatcher without a deadline.
func HandleToolCall(req ToolRequest) ToolResponse {
	return defaultDispatcher.Handle(context.Background(), req)
}
