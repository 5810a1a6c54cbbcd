package electrum

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/safe"
)

// Indexer methods used by this client.
const (
	MethodServerVersion  = "server.version"
	MethodGetBalance     = "blockchain.scripthash.get_balance"
	MethodGetHistory     = "blockchain.scripthash.get_history"
	MethodBlockHeader    = "blockchain.block.header"
	MethodTransactionGet = "blockchain.transaction.get"
)

// ServerVersion is the server.version result.
type ServerVersion struct {
	Software string
	Protocol string
}

type balanceResult struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
}

type historyItem struct {
	TxHash string `json:"tx_hash"`
	Height int64  `json:"height"`
}

// ServerVersion negotiates the protocol version. It is the first request of every session.
func (c *Client) ServerVersion(ctx context.Context, clientName, protocol string) (ServerVersion, error) {
	var res []string
	if err := c.Call(ctx, MethodServerVersion, &res, clientName, protocol); err != nil {
		return ServerVersion{}, err
	}
	if len(res) != 2 {
		return ServerVersion{}, &DecodeError{
			Method: MethodServerVersion,
			Err:    fmt.Errorf("want [software, protocol], got %d fields", len(res)),
		}
	}
	return ServerVersion{Software: res[0], Protocol: res[1]}, nil
}

// GetBalance returns confirmed and unconfirmed satoshis for a script hash.
func (c *Client) GetBalance(ctx context.Context, sh scripthash.Hash) (model.Balance, error) {
	var res balanceResult
	if err := c.Call(ctx, MethodGetBalance, &res, sh.String()); err != nil {
		return model.Balance{}, err
	}
	return model.Balance{Confirmed: res.Confirmed, Unconfirmed: res.Unconfirmed}, nil
}

// GetHistory returns every transaction touching a script hash, mempool entries included.
func (c *Client) GetHistory(ctx context.Context, sh scripthash.Hash) ([]model.HistoryEntry, error) {
	var res []historyItem
	if err := c.Call(ctx, MethodGetHistory, &res, sh.String()); err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(res))
	for _, item := range res {
		txid, err := chainhash.NewHashFromStr(item.TxHash)
		if err != nil {
			return nil, &DecodeError{Method: MethodGetHistory, Err: fmt.Errorf("tx_hash %q: %w", item.TxHash, err)}
		}
		entries = append(entries, model.HistoryEntry{TxID: *txid, Height: item.Height})
	}
	return entries, nil
}

// GetBlockHeader fetches the header at height.
func (c *Client) GetBlockHeader(ctx context.Context, height int64) (*wire.BlockHeader, error) {
	h, err := safe.Uint32(height)
	if err != nil {
		return nil, fmt.Errorf("header height: %w", err)
	}

	var res string
	if err := c.Call(ctx, MethodBlockHeader, &res, h); err != nil {
		return nil, err
	}
	header, err := DecodeHeader(res)
	if err != nil {
		return nil, &DecodeError{Method: MethodBlockHeader, Err: err}
	}
	return header, nil
}

// GetTransaction fetches and decodes a raw transaction.
func (c *Client) GetTransaction(ctx context.Context, txid chainhash.Hash) (*wire.MsgTx, error) {
	var res string
	if err := c.Call(ctx, MethodTransactionGet, &res, txid.String(), false); err != nil {
		return nil, err
	}
	tx, err := DecodeTransaction(res)
	if err != nil {
		return nil, &DecodeError{Method: MethodTransactionGet, Err: err}
	}
	if got := tx.TxHash(); got != txid {
		return nil, &DecodeError{
			Method: MethodTransactionGet,
			Err:    fmt.Errorf("requested %s, server returned %s", txid, got),
		}
	}
	return tx, nil
}

// DecodeHeader parses a hex-encoded 80-byte block header. The timestamp is the 4-byte
// little-endian field at offset 68.
func DecodeHeader(hexStr string) (*wire.BlockHeader, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, err
	}
	if len(raw) != wire.MaxBlockHeaderPayload {
		return nil, fmt.Errorf("header is %d bytes, want %d", len(raw), wire.MaxBlockHeaderPayload)
	}

	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return &header, nil
}

// DecodeTransaction parses a hex-encoded raw transaction, with or without witness data.
func DecodeTransaction(hexStr string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty transaction")
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return tx, nil
}
