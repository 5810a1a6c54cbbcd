package service

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	IndexerClient interface {
		GetBalance(ctx context.Context, sh scripthash.Hash) (model.Balance, error)
		GetHistory(ctx context.Context, sh scripthash.Hash) ([]model.HistoryEntry, error)
		GetBlockHeader(ctx context.Context, height int64) (*wire.BlockHeader, error)
		GetTransaction(ctx context.Context, txid chainhash.Hash) (*wire.MsgTx, error)
	}
	IndexerSession interface {
		IndexerClient
		Close() error
	}
	SessionDialer interface {
		Dial(ctx context.Context, endpoint model.Endpoint) (IndexerSession, error)
	}
	BalanceMetrics interface {
		ObserveRun(err error, degraded int, started time.Time)
	}
	HistoryMetrics interface {
		ObserveRun(err error, points int, started time.Time)
		ObserveDegraded(stage string, n int)
		ObserveUnresolvedPrevouts(n int)
	}
)
