package service

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/batcher"
	"go.uber.org/zap"
)

// BalanceAggregator sums confirmed and unconfirmed balances over a set of script hashes.
type BalanceAggregator struct {
	client  IndexerClient
	metrics BalanceMetrics
	logger  *zap.Logger
	batch   BatchConfig
}

// NewBalanceAggregator builds the aggregator. An invalid batch config is replaced by the default.
func NewBalanceAggregator(
	client IndexerClient,
	metrics BalanceMetrics,
	logger *zap.Logger,
	batch BatchConfig,
) (*BalanceAggregator, error) {
	if client == nil {
		return nil, errors.New("indexer client is required")
	}
	if metrics == nil {
		return nil, errors.New("balance metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !batch.valid() {
		batch = DefaultBatchConfig()
	}
	return &BalanceAggregator{
		client:  client,
		metrics: metrics,
		logger:  logger.Named("balance"),
		batch:   batch,
	}, nil
}

// FetchBalances queries every script hash. A hash whose query fails contributes zero and keeps
// its error on the row; only cancellation or a lost connection fail the call.
func (a *BalanceAggregator) FetchBalances(ctx context.Context, set scripthash.Set) (summary model.BalanceSummary, err error) {
	started := time.Now()
	degraded := 0
	defer func() {
		a.metrics.ObserveRun(err, degraded, started)
	}()

	hashes := set.Hashes()
	results := batcher.Run(ctx, hashes, a.batch.options(a.batch.BalanceBatchSize, a.logger), a.client.GetBalance)

	summary.PerHash = make([]model.ScriptHashBalance, 0, len(hashes))
	for i, res := range results {
		row := model.ScriptHashBalance{ScriptHash: hashes[i]}

		bal, callErr := res.Unpack()
		if callErr != nil {
			if fatalErr := fatal(ctx, callErr); fatalErr != nil {
				return model.BalanceSummary{}, fatalErr
			}
			degraded++
			row.Err = callErr
			a.logger.Warn("balance unavailable, counting as zero",
				zap.Stringer("scripthash", hashes[i]),
				zap.Error(callErr))
		} else {
			row.Balance = bal
		}

		summary.PerHash = append(summary.PerHash, row)
		summary.ConfirmedTotal += row.Confirmed
		summary.Total += row.Confirmed + row.Unconfirmed
	}

	a.logger.Info("balances fetched",
		zap.Int("scripthashes", len(hashes)),
		zap.Int("degraded", degraded),
		zap.Int64("total_sats", summary.Total),
		zap.Int64("confirmed_sats", summary.ConfirmedTotal))

	return summary, nil
}
