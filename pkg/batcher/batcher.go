// Package batcher runs independent jobs in paced, bounded-concurrency chunks.
package batcher

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"
)

// Options controls chunking and pacing.
type Options struct {
	// Size is the number of items run concurrently. Non-positive means all items at once.
	Size int
	// Delay is waited between chunks, never after the last one.
	Delay time.Duration
	// Sleep defaults to clock.SleepWithContext.
	Sleep  clock.Sleeper
	Logger *zap.Logger
}

// Chunks splits items into consecutive slices of at most size elements.
func Chunks[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size > len(items) {
		size = len(items)
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// Run invokes worker for every item and returns one result per item, in item order.
// A failing worker only affects its own result. Once ctx is done no further chunk is started
// and the remaining items resolve to the context error.
func Run[T, R any](
	ctx context.Context,
	items []T,
	opts Options,
	worker func(context.Context, T) (R, error),
) []fn.Result[R] {
	results := make([]fn.Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	sleep := opts.Sleep
	if sleep == nil {
		sleep = clock.SleepWithContext
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chunks := Chunks(items, opts.Size)
	offset := 0
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			failRemaining(results[offset:], err)
			return results
		}

		var wg sync.WaitGroup
		for j, item := range chunk {
			wg.Add(1)
			go func(idx int, item T) {
				defer wg.Done()
				v, err := worker(ctx, item)
				if err != nil {
					results[idx] = fn.Err[R](err)
					return
				}
				results[idx] = fn.Ok(v)
			}(offset+j, item)
		}
		wg.Wait()
		offset += len(chunk)

		logger.Debug("chunk done",
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("size", len(chunk)))

		if i == len(chunks)-1 || opts.Delay <= 0 {
			continue
		}
		if err := sleep(ctx, opts.Delay); err != nil {
			failRemaining(results[offset:], err)
			return results
		}
	}

	return results
}

// Failed counts error results.
func Failed[R any](results []fn.Result[R]) int {
	n := 0
	for _, r := range results {
		if r.IsErr() {
			n++
		}
	}
	return n
}

func failRemaining[R any](results []fn.Result[R], err error) {
	for i := range results {
		results[i] = fn.Err[R](err)
	}
}
