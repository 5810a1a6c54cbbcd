package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/batcher"
	"go.uber.org/zap"
)

// Degradation stages reported to metrics.
const (
	stageHistory     = "history"
	stageHeader      = "header"
	stageTransaction = "transaction"
)

// Report counts what a reconstruction had to approximate.
type Report struct {
	// HistoryFailures is the number of script hashes whose history could not be fetched.
	HistoryFailures int
	// HeaderFailures is the number of heights whose timestamp fell back to 0.
	HeaderFailures int
	// TxFailures is the number of history transactions that could not be fetched; their delta is 0.
	TxFailures int
	// UnresolvedPrevouts is the number of inputs whose spent output could not be looked up.
	UnresolvedPrevouts int
}

// Degraded reports whether any item was approximated.
func (r Report) Degraded() bool {
	return r.HistoryFailures+r.HeaderFailures+r.TxFailures+r.UnresolvedPrevouts > 0
}

// HistoryReconstructor rebuilds a balance timeline from raw transactions.
type HistoryReconstructor struct {
	client  IndexerClient
	metrics HistoryMetrics
	logger  *zap.Logger
	batch   BatchConfig
}

// NewHistoryReconstructor builds the reconstructor. An invalid batch config is replaced by the
// default.
func NewHistoryReconstructor(
	client IndexerClient,
	metrics HistoryMetrics,
	logger *zap.Logger,
	batch BatchConfig,
) (*HistoryReconstructor, error) {
	if client == nil {
		return nil, errors.New("indexer client is required")
	}
	if metrics == nil {
		return nil, errors.New("history metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !batch.valid() {
		batch = DefaultBatchConfig()
	}
	return &HistoryReconstructor{
		client:  client,
		metrics: metrics,
		logger:  logger.Named("history"),
		batch:   batch,
	}, nil
}

// Reconstruct returns one point per confirmed transaction touching set, ordered by height.
func (h *HistoryReconstructor) Reconstruct(ctx context.Context, set scripthash.Set) ([]model.AccumulationPoint, error) {
	points, _, err := h.ReconstructWithReport(ctx, set)
	return points, err
}

// ReconstructWithReport is Reconstruct plus the count of degraded items.
func (h *HistoryReconstructor) ReconstructWithReport(
	ctx context.Context,
	set scripthash.Set,
) (points []model.AccumulationPoint, report Report, err error) {
	started := time.Now()
	defer func() {
		h.metrics.ObserveRun(err, len(points), started)
	}()

	entries, err := h.fetchHistory(ctx, set, &report)
	if err != nil {
		return nil, report, err
	}
	if len(entries) == 0 {
		h.logger.Info("no confirmed history", zap.Int("scripthashes", set.Len()))
		return []model.AccumulationPoint{}, report, nil
	}

	timestamps, err := h.fetchTimestamps(ctx, entries, &report)
	if err != nil {
		return nil, report, err
	}

	deltas, err := h.computeDeltas(ctx, set, entries, &report)
	if err != nil {
		return nil, report, err
	}

	points = accumulate(deltas, timestamps)

	h.metrics.ObserveDegraded(stageHistory, report.HistoryFailures)
	h.metrics.ObserveDegraded(stageHeader, report.HeaderFailures)
	h.metrics.ObserveDegraded(stageTransaction, report.TxFailures)
	h.metrics.ObserveUnresolvedPrevouts(report.UnresolvedPrevouts)

	h.logger.Info("history reconstructed",
		zap.Int("scripthashes", set.Len()),
		zap.Int("transactions", len(points)),
		zap.Int64("final_sats", points[len(points)-1].CumulativeSats),
		zap.Int("history_failures", report.HistoryFailures),
		zap.Int("header_failures", report.HeaderFailures),
		zap.Int("tx_failures", report.TxFailures),
		zap.Int("unresolved_prevouts", report.UnresolvedPrevouts))

	return points, report, nil
}

// fetchHistory returns confirmed entries deduplicated by txid in discovery order.
func (h *HistoryReconstructor) fetchHistory(
	ctx context.Context,
	set scripthash.Set,
	report *Report,
) ([]model.HistoryEntry, error) {
	hashes := set.Hashes()
	results := batcher.Run(ctx, hashes, h.batch.options(h.batch.HistoryBatchSize, h.logger), h.client.GetHistory)

	seen := make(map[chainhash.Hash]struct{})
	var entries []model.HistoryEntry
	for i, res := range results {
		history, err := res.Unpack()
		if err != nil {
			if fatalErr := fatal(ctx, err); fatalErr != nil {
				return nil, fatalErr
			}
			report.HistoryFailures++
			h.logger.Warn("history unavailable, skipping script hash",
				zap.Stringer("scripthash", hashes[i]),
				zap.Error(err))
			continue
		}

		for _, entry := range history {
			if !entry.Confirmed() {
				continue
			}
			if _, dup := seen[entry.TxID]; dup {
				continue
			}
			seen[entry.TxID] = struct{}{}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// fetchTimestamps maps every referenced height to its header time, 0 when unknown.
func (h *HistoryReconstructor) fetchTimestamps(
	ctx context.Context,
	entries []model.HistoryEntry,
	report *Report,
) (map[int64]int64, error) {
	heights := make([]int64, 0, len(entries))
	timestamps := make(map[int64]int64, len(entries))
	for _, entry := range entries {
		if _, ok := timestamps[entry.Height]; ok {
			continue
		}
		timestamps[entry.Height] = 0
		heights = append(heights, entry.Height)
	}

	results := batcher.Run(ctx, heights, h.batch.options(h.batch.HeaderBatchSize, h.logger), h.client.GetBlockHeader)
	for i, res := range results {
		header, err := res.Unpack()
		if err != nil {
			if fatalErr := fatal(ctx, err); fatalErr != nil {
				return nil, fatalErr
			}
			report.HeaderFailures++
			h.logger.Warn("block header unavailable, timestamp set to 0",
				zap.Int64("height", heights[i]),
				zap.Error(err))
			continue
		}
		timestamps[heights[i]] = header.Timestamp.Unix()
	}
	return timestamps, nil
}

// computeDeltas runs the inbound pass over owned outputs, then the outbound pass over inputs
// spending owned outputs. The result keeps the order of entries.
func (h *HistoryReconstructor) computeDeltas(
	ctx context.Context,
	set scripthash.Set,
	entries []model.HistoryEntry,
	report *Report,
) ([]model.TxDelta, error) {
	resolver := newTxResolver(h.client, h.batch.options(h.batch.TxBatchSize, h.logger), h.logger)

	txids := make([]chainhash.Hash, len(entries))
	for i, entry := range entries {
		txids[i] = entry.TxID
	}
	failed, err := resolver.Fetch(ctx, txids)
	if err != nil {
		return nil, err
	}
	report.TxFailures = failed

	deltas := make([]model.TxDelta, len(entries))
	var prevTxIDs []chainhash.Hash
	for i, entry := range entries {
		deltas[i] = model.TxDelta{TxID: entry.TxID, Height: entry.Height}

		tx, ok := resolver.Local(entry.TxID)
		if !ok {
			continue
		}
		deltas[i].NetSats = ownedOutputs(set, tx)

		if blockchain.IsCoinBaseTx(tx) {
			continue
		}
		for _, in := range tx.TxIn {
			prevTxIDs = append(prevTxIDs, in.PreviousOutPoint.Hash)
		}
	}

	if _, err := resolver.Fetch(ctx, prevTxIDs); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		tx, ok := resolver.Local(entry.TxID)
		if !ok || blockchain.IsCoinBaseTx(tx) {
			continue
		}
		for _, in := range tx.TxIn {
			prevOut, ok := resolver.Prevout(in.PreviousOutPoint)
			if !ok {
				report.UnresolvedPrevouts++
				h.logger.Warn("unresolved prevout, counting as zero",
					zap.Stringer("txid", entry.TxID),
					zap.Stringer("prevout", in.PreviousOutPoint))
				continue
			}
			if set.ContainsScript(prevOut.PkScript) {
				deltas[i].NetSats -= prevOut.Value
			}
		}
	}

	return deltas, nil
}

func ownedOutputs(set scripthash.Set, tx *wire.MsgTx) int64 {
	var sum int64
	for _, out := range tx.TxOut {
		if set.ContainsScript(out.PkScript) {
			sum += out.Value
		}
	}
	return sum
}

// accumulate sorts deltas by height, keeping discovery order within a height, and emits the
// running total.
func accumulate(deltas []model.TxDelta, timestamps map[int64]int64) []model.AccumulationPoint {
	sorted := slices.Clone(deltas)
	slices.SortStableFunc(sorted, func(a, b model.TxDelta) int {
		return cmp.Compare(a.Height, b.Height)
	})

	points := make([]model.AccumulationPoint, 0, len(sorted))
	var cumulative int64
	for _, d := range sorted {
		cumulative += d.NetSats
		points = append(points, model.AccumulationPoint{
			Timestamp:      timestamps[d.Height],
			CumulativeSats: cumulative,
			DeltaSats:      d.NetSats,
			TxID:           d.TxID,
			Height:         d.Height,
		})
	}
	return points
}
