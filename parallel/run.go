// SPDX-License-Identifier: MIT
package parallel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pairsum/structure"
)

const opRun = "Run"

// Worker evaluates one shard and exports its partial value.
type Worker interface {
	SetupParallelRun(index, count int) error
	Eval(stru structure.Adapter) ([]float64, error)
	ParallelData() ([]byte, error)
}

// Master collects the shard payloads.
type Master interface {
	PrepareParallelMerge(stru structure.Adapter) error
	MergeParallelData(payload []byte, count int) error
	Value() []float64
}

// NewWorker returns a fresh quantity for shard index. Workers must not
// share mutable state.
type NewWorker func(index int) (Worker, error)

// Options tunes Run.
type Options struct {
	// Jobs bounds the number of concurrent shards; <= 0 means GOMAXPROCS.
	Jobs int
	// Logger receives debug records per shard; nil means slog.Default().
	Logger *slog.Logger
}

// Run evaluates stru in count shards and merges them into master. It
// returns the master value.
func Run(ctx context.Context, master Master, stru structure.Adapter, count int, newWorker NewWorker, opts Options) ([]float64, error) {
	if master == nil || stru == nil || newWorker == nil {
		return nil, parallelErrorf(opRun, ErrNilArgument)
	}
	if count < 1 {
		return nil, parallelErrorf(opRun, fmt.Errorf("count=%d: %w", count, ErrBadCount))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))
	logger.Debug("parallel run started",
		slog.Int("shards", count),
		slog.Int("jobs", min(jobs, count)),
		slog.Int("sites", stru.CountSites()))

	// Each shard writes only its own slot.
	payloads := make([][]byte, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, count))
	for i := 0; i < count; i++ {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			p, err := evalShard(newWorker, stru, i, count)
			if err != nil {
				return fmt.Errorf("shard %d/%d: %w", i, count, err)
			}
			payloads[i] = p
			logger.Debug("shard finished",
				slog.Int("index", i),
				slog.Int("payload_bytes", len(p)),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, parallelErrorf(opRun, err)
	}

	if err := master.PrepareParallelMerge(stru); err != nil {
		return nil, parallelErrorf(opRun, err)
	}
	for i, p := range payloads {
		if err := master.MergeParallelData(p, count); err != nil {
			return nil, parallelErrorf(opRun, fmt.Errorf("merging shard %d: %w", i, err))
		}
	}
	logger.Debug("parallel run merged", slog.Int("shards", count))
	return master.Value(), nil
}

func evalShard(newWorker NewWorker, stru structure.Adapter, index, count int) ([]byte, error) {
	w, err := newWorker(index)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNilArgument
	}
	if err := w.SetupParallelRun(index, count); err != nil {
		return nil, err
	}
	if _, err := w.Eval(stru); err != nil {
		return nil, err
	}
	return w.ParallelData()
}
