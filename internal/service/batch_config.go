package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/batcher"
	"go.uber.org/zap"
)

// BatchConfig defines how many indexer requests run together per stage and the pause between
// chunks.
type BatchConfig struct {
	HistoryBatchSize int
	HeaderBatchSize  int
	TxBatchSize      int
	BalanceBatchSize int
	Delay            time.Duration
}

// DefaultBatchConfig returns sizes that public indexers tolerate without throttling.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		HistoryBatchSize: 10,
		HeaderBatchSize:  20,
		TxBatchSize:      10,
		BalanceBatchSize: 10,
		Delay:            100 * time.Millisecond,
	}
}

func (c BatchConfig) valid() bool {
	return c.HistoryBatchSize > 0 && c.HeaderBatchSize > 0 && c.TxBatchSize > 0 &&
		c.BalanceBatchSize > 0 && c.Delay >= 0
}

func (c BatchConfig) options(size int, logger *zap.Logger) batcher.Options {
	return batcher.Options{Size: size, Delay: c.Delay, Logger: logger}
}

// fatal returns the error that must end the run: caller cancellation or a dead connection.
// Anything else is local to one item.
func fatal(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil && electrum.IsFatal(err) {
		return err
	}
	return nil
}
