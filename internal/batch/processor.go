// Package batch extracts many stat block files concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/creature-barn/internal/cache"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input file. Err is set when the file could
// not be read; Record is nil in that case.
type Result struct {
	Path   string
	ID     string
	Text   string
	Record statblock.Record
	Cached bool
	Err    error
}

// Processor runs extractions with a bounded number of workers.
type Processor struct {
	workers   int
	cache     cache.Cache
	extractor *statblock.Extractor
	logger    *slog.Logger
}

type Option func(*Processor)

// WithCache consults c before extracting and stores fresh records in it.
func WithCache(c cache.Cache) Option {
	return func(p *Processor) {
		p.cache = c
	}
}

func WithExtractor(e *statblock.Extractor) Option {
	return func(p *Processor) {
		p.extractor = e
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// NewProcessor creates a Processor; workers below 1 means 1.
func NewProcessor(workers int, opts ...Option) *Processor {
	if workers < 1 {
		workers = 1
	}
	p := &Processor{
		workers:   workers,
		extractor: statblock.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFiles reads and extracts every path. Results are in input order and
// a failure on one file does not stop the others. If ctx is cancelled the
// files not yet started are skipped and ctx's error is returned alongside
// the partial results.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (p *Processor) processFile(ctx context.Context, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("Failed to read stat block", "path", path, "error", err)
		return Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	res := p.Process(ctx, string(data))
	res.Path = path
	return res
}

// Process extracts one text, going through the cache when one is set.
// Cache failures are logged and never fail the extraction.
func (p *Processor) Process(ctx context.Context, text string) Result {
	id := creature.IDFor(text)
	res := Result{ID: id, Text: text}

	if p.cache != nil {
		rec, err := p.cache.Get(ctx, id)
		if err != nil {
			p.logger.Warn("Record cache lookup failed", "creature_id", id, "error", err)
		}
		if rec != nil {
			res.Record = rec
			res.Cached = true
			return res
		}
	}

	res.Record = p.extractor.Extract(text)

	if p.cache != nil {
		if err := p.cache.Set(ctx, id, res.Record); err != nil {
			p.logger.Warn("Record cache store failed", "creature_id", id, "error", err)
		}
	}
	return res
}
