package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

var errNotFound = errors.New("not found")

func testBatch() BatchConfig {
	return BatchConfig{
		HistoryBatchSize: 2,
		HeaderBatchSize:  2,
		TxBatchSize:      2,
		BalanceBatchSize: 2,
	}
}

// p2wpkh returns a witness v0 key hash script filled with tag.
func p2wpkh(tag byte) []byte {
	s := make([]byte, 22)
	s[0] = 0x00
	s[1] = 0x14
	for i := 2; i < len(s); i++ {
		s[i] = tag
	}
	return s
}

func setOf(scripts ...[]byte) scripthash.Set {
	hashes := make([]scripthash.Hash, 0, len(scripts))
	for _, s := range scripts {
		hashes = append(hashes, scripthash.FromScript(s))
	}
	return scripthash.NewSet(hashes...)
}

type txBuilder struct {
	tx *wire.MsgTx
}

var lockTimeSeq uint32

// newTx starts a transaction with a unique lock time so every fixture has a distinct txid.
func newTx() *txBuilder {
	lockTimeSeq++
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.LockTime = lockTimeSeq
	return &txBuilder{tx: tx}
}

func (b *txBuilder) spend(txid chainhash.Hash, index uint32) *txBuilder {
	b.tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&txid, index), nil, nil))
	return b
}

func (b *txBuilder) coinbase() *txBuilder {
	b.tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), []byte{0x01, 0x02}, nil))
	return b
}

func (b *txBuilder) pay(pkScript []byte, sats int64) *txBuilder {
	b.tx.AddTxOut(wire.NewTxOut(sats, pkScript))
	return b
}

func (b *txBuilder) build() *wire.MsgTx {
	return b.tx
}

// fakeChain answers indexer calls from fixtures and counts transaction fetches.
type fakeChain struct {
	mu         sync.Mutex
	histories  map[scripthash.Hash][]model.HistoryEntry
	historyErr map[scripthash.Hash]error
	txs        map[chainhash.Hash]*wire.MsgTx
	txErr      map[chainhash.Hash]error
	headerErr  map[int64]error
	balances   map[scripthash.Hash]model.Balance
	balanceErr map[scripthash.Hash]error
	txFetches  map[chainhash.Hash]int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		histories:  make(map[scripthash.Hash][]model.HistoryEntry),
		historyErr: make(map[scripthash.Hash]error),
		txs:        make(map[chainhash.Hash]*wire.MsgTx),
		txErr:      make(map[chainhash.Hash]error),
		headerErr:  make(map[int64]error),
		balances:   make(map[scripthash.Hash]model.Balance),
		balanceErr: make(map[scripthash.Hash]error),
		txFetches:  make(map[chainhash.Hash]int),
	}
}

// addTx makes tx fetchable and lists it in the history of every script in owners at height.
func (c *fakeChain) addTx(tx *wire.MsgTx, height int64, owners ...[]byte) chainhash.Hash {
	txid := tx.TxHash()
	c.txs[txid] = tx
	for _, owner := range owners {
		sh := scripthash.FromScript(owner)
		c.histories[sh] = append(c.histories[sh], model.HistoryEntry{TxID: txid, Height: height})
	}
	return txid
}

func (c *fakeChain) fetches(txid chainhash.Hash) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txFetches[txid]
}

// blockTime is the header timestamp fakeChain reports for height.
func blockTime(height int64) int64 {
	return 1_600_000_000 + height*600
}

func (c *fakeChain) expect(client *MockIndexerClient) {
	client.EXPECT().GetHistory(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(_ context.Context, sh scripthash.Hash) ([]model.HistoryEntry, error) {
			if err := c.historyErr[sh]; err != nil {
				return nil, err
			}
			return c.histories[sh], nil
		})
	client.EXPECT().GetBlockHeader(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(_ context.Context, height int64) (*wire.BlockHeader, error) {
			if err := c.headerErr[height]; err != nil {
				return nil, err
			}
			return &wire.BlockHeader{Timestamp: time.Unix(blockTime(height), 0)}, nil
		})
	client.EXPECT().GetTransaction(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(_ context.Context, txid chainhash.Hash) (*wire.MsgTx, error) {
			c.mu.Lock()
			c.txFetches[txid]++
			c.mu.Unlock()
			if err := c.txErr[txid]; err != nil {
				return nil, err
			}
			tx, ok := c.txs[txid]
			if !ok {
				return nil, errNotFound
			}
			return tx, nil
		})
	client.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(_ context.Context, sh scripthash.Hash) (model.Balance, error) {
			if err := c.balanceErr[sh]; err != nil {
				return model.Balance{}, err
			}
			return c.balances[sh], nil
		})
}

func quietHistoryMetrics(ctrl *gomock.Controller) *MockHistoryMetrics {
	m := NewMockHistoryMetrics(ctrl)
	m.EXPECT().ObserveRun(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().ObserveDegraded(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().ObserveUnresolvedPrevouts(gomock.Any()).AnyTimes()
	return m
}

func quietBalanceMetrics(ctrl *gomock.Controller) *MockBalanceMetrics {
	m := NewMockBalanceMetrics(ctrl)
	m.EXPECT().ObserveRun(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return m
}

func newTestReconstructor(t *testing.T, ctrl *gomock.Controller, chain *fakeChain, metrics HistoryMetrics) *HistoryReconstructor {
	t.Helper()

	client := NewMockIndexerClient(ctrl)
	chain.expect(client)
	if metrics == nil {
		metrics = quietHistoryMetrics(ctrl)
	}
	rec, err := NewHistoryReconstructor(client, metrics, nil, testBatch())
	if err != nil {
		t.Fatalf("NewHistoryReconstructor: %v", err)
	}
	return rec
}
