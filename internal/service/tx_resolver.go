package service

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/batcher"
	"go.uber.org/zap"
)

// txResolver caches decoded transactions for one reconstruction run so prevouts are looked up
// locally before asking the indexer.
type txResolver struct {
	client IndexerClient
	opts   batcher.Options
	logger *zap.Logger
	cache  map[chainhash.Hash]*wire.MsgTx
}

func newTxResolver(client IndexerClient, opts batcher.Options, logger *zap.Logger) *txResolver {
	return &txResolver{
		client: client,
		opts:   opts,
		logger: logger,
		cache:  make(map[chainhash.Hash]*wire.MsgTx),
	}
}

// Local returns a cached transaction.
func (r *txResolver) Local(txid chainhash.Hash) (*wire.MsgTx, bool) {
	tx, ok := r.cache[txid]
	return tx, ok
}

// Prevout returns the output spent by op, if its transaction is cached and the index exists.
func (r *txResolver) Prevout(op wire.OutPoint) (*wire.TxOut, bool) {
	tx, ok := r.cache[op.Hash]
	if !ok || int64(op.Index) >= int64(len(tx.TxOut)) {
		return nil, false
	}
	return tx.TxOut[op.Index], true
}

// Fetch loads every txid that is not cached yet, in batches. It returns how many could not be
// fetched; err is set only when the run must stop.
func (r *txResolver) Fetch(ctx context.Context, txids []chainhash.Hash) (failed int, err error) {
	missing := make([]chainhash.Hash, 0, len(txids))
	queued := make(map[chainhash.Hash]struct{}, len(txids))
	for _, txid := range txids {
		if _, ok := r.cache[txid]; ok {
			continue
		}
		if _, ok := queued[txid]; ok {
			continue
		}
		queued[txid] = struct{}{}
		missing = append(missing, txid)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	results := batcher.Run(ctx, missing, r.opts, r.client.GetTransaction)
	for i, res := range results {
		tx, err := res.Unpack()
		if err != nil {
			if fatalErr := fatal(ctx, err); fatalErr != nil {
				return 0, fatalErr
			}
			r.logger.Warn("transaction unavailable",
				zap.Stringer("txid", missing[i]),
				zap.Error(err))
			continue
		}
		r.cache[missing[i]] = tx
	}
	return batcher.Failed(results), nil
}
