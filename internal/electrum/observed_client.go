package electrum

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

type (
	// RPCMetrics records metrics for indexer calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ObservedClient wraps Client with metrics instrumentation.
type ObservedClient struct {
	client     *Client
	rpcMetrics RPCMetrics
}

// NewObservedClient constructs an instrumented client.
func NewObservedClient(client *Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetBalance returns the balance of a script hash.
func (r *ObservedClient) GetBalance(ctx context.Context, sh scripthash.Hash) (res model.Balance, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(MethodGetBalance, err, started)
	}()
	return r.client.GetBalance(ctx, sh)
}

// GetHistory returns the history of a script hash.
func (r *ObservedClient) GetHistory(ctx context.Context, sh scripthash.Hash) (res []model.HistoryEntry, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(MethodGetHistory, err, started)
	}()
	return r.client.GetHistory(ctx, sh)
}

// GetBlockHeader returns the header at height.
func (r *ObservedClient) GetBlockHeader(ctx context.Context, height int64) (res *wire.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(MethodBlockHeader, err, started)
	}()
	return r.client.GetBlockHeader(ctx, height)
}

// GetTransaction returns a decoded transaction.
func (r *ObservedClient) GetTransaction(ctx context.Context, txid chainhash.Hash) (res *wire.MsgTx, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(MethodTransactionGet, err, started)
	}()
	return r.client.GetTransaction(ctx, txid)
}

// Close closes the underlying session.
func (r *ObservedClient) Close() error {
	return r.client.Close()
}
