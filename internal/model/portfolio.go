// Package model defines domain models for balance and history reconstruction.
package model

import (
	"net"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

// Endpoint describes one indexer server.
type Endpoint struct {
	Host string
	Port uint16
	TLS  bool
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// HistoryEntry is one item of a script hash history as reported by the indexer.
type HistoryEntry struct {
	TxID   chainhash.Hash
	Height int64
}

// Confirmed reports whether the transaction is included in a block.
func (e HistoryEntry) Confirmed() bool {
	return e.Height > 0
}

// Balance holds satoshi amounts for one script hash.
type Balance struct {
	Confirmed   int64
	Unconfirmed int64
}

// ScriptHashBalance is a per-hash balance row. Err is set when the row was degraded to zero.
type ScriptHashBalance struct {
	ScriptHash scripthash.Hash
	Balance
	Err error
}

// BalanceSummary aggregates balances across a script hash set.
type BalanceSummary struct {
	Total          int64
	ConfirmedTotal int64
	PerHash        []ScriptHashBalance
}

// TxDelta is the signed net change a transaction causes for the owned set.
type TxDelta struct {
	TxID    chainhash.Hash
	Height  int64
	NetSats int64
}

// AccumulationPoint is one step of the reconstructed balance timeline.
type AccumulationPoint struct {
	Timestamp      int64
	CumulativeSats int64
	DeltaSats      int64
	TxID           chainhash.Hash
	Height         int64
}
