// Package parallel provides parallel execution utilities for the reindex executors.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
// Items are whole workgroups (64 invocations each), so a chunk of one is already cheap to schedule.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// ForContext executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
//
// Cancellation is observed between chunks: once ctx is done no new chunk starts
// and ctx.Err() is returned. Chunks that already started run to completion.
func ForContext(ctx context.Context, n int, f func(i int), cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= minChunk {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			if i%minChunk == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			f(i)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	return g.Wait()
}
