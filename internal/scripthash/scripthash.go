// Package scripthash implements Electrum-style script hashes and an immutable membership set.
package scripthash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Hash is the SHA-256 digest of an output script. It is stored in digest order and rendered
// byte-reversed, the same way chainhash renders txids.
type Hash chainhash.Hash

// FromScript hashes an output script.
func FromScript(pkScript []byte) Hash {
	return Hash(sha256.Sum256(pkScript))
}

// Parse decodes a 64-character hex script hash. Case is ignored.
func Parse(s string) (Hash, error) {
	if len(s) != hex.EncodedLen(chainhash.HashSize) {
		return Hash{}, fmt.Errorf("script hash %q: want %d hex chars, got %d",
			s, hex.EncodedLen(chainhash.HashSize), len(s))
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return Hash{}, fmt.Errorf("script hash %q: %w", s, err)
	}
	return Hash(*h), nil
}

// String returns the lowercase hex form sent to the indexer.
func (h Hash) String() string {
	return chainhash.Hash(h).String()
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
