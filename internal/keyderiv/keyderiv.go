// Package keyderiv turns addresses and extended public keys into script hashes.
package keyderiv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

// ScriptType selects the output script derived for each public key.
type ScriptType string

const (
	P2PKH      ScriptType = "p2pkh"
	P2WPKH     ScriptType = "p2wpkh"
	P2SHP2WPKH ScriptType = "p2sh-p2wpkh"
)

// MaxCount bounds the number of addresses derived per chain.
const MaxCount = 1000

const (
	externalChain uint32 = 0
	internalChain uint32 = 1
)

// SLIP-132 version bytes of serialized extended public keys.
var versionScriptTypes = map[uint32]ScriptType{
	0x0488b21e: P2PKH,      // xpub
	0x043587cf: P2PKH,      // tpub
	0x049d7cb2: P2SHP2WPKH, // ypub
	0x044a5262: P2SHP2WPKH, // upub
	0x04b24746: P2WPKH,     // zpub
	0x045f1cf6: P2WPKH,     // vpub
}

// ErrPrivateKey is returned when an extended private key is supplied.
var ErrPrivateKey = errors.New("extended private keys are not accepted")

// Derived is one watched address.
type Derived struct {
	Address    string
	ScriptHash scripthash.Hash
	// Path is relative to the supplied key, e.g. "0/3". Empty for single addresses.
	Path     string
	IsChange bool
}

// ParseScriptType accepts the ScriptType names. Empty means infer from the key version.
func ParseScriptType(s string) (ScriptType, error) {
	switch t := ScriptType(strings.ToLower(strings.TrimSpace(s))); t {
	case "", P2PKH, P2WPKH, P2SHP2WPKH:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported script type %q", s)
	}
}

// Deriver derives addresses for one network.
type Deriver struct {
	params *chaincfg.Params
}

// NewDeriver returns a Deriver for mainnet, testnet, regtest or signet.
func NewDeriver(network string) (*Deriver, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &Deriver{params: params}, nil
}

// ChainParams maps a network name to its parameters.
func ChainParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// FromAddress decodes a single address.
func (d *Deriver) FromAddress(address string) (Derived, error) {
	addr, err := btcutil.DecodeAddress(strings.TrimSpace(address), d.params)
	if err != nil {
		return Derived{}, fmt.Errorf("decode address %q: %w", address, err)
	}
	if !addr.IsForNet(d.params) {
		return Derived{}, fmt.Errorf("address %q is not for %s", address, d.params.Name)
	}
	return derived(addr, "", false)
}

// FromExtendedKey derives count receive addresses (0/i) followed by count change addresses (1/i).
func (d *Deriver) FromExtendedKey(key string, scriptType ScriptType, count uint32) ([]Derived, error) {
	if count == 0 || count > MaxCount {
		return nil, fmt.Errorf("count %d out of range 1..%d", count, MaxCount)
	}

	xkey, err := hdkeychain.NewKeyFromString(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	if xkey.IsPrivate() {
		return nil, ErrPrivateKey
	}

	if scriptType == "" {
		inferred, ok := versionScriptTypes[binary.BigEndian.Uint32(xkey.Version())]
		if !ok {
			return nil, fmt.Errorf("cannot infer script type from key version %x", xkey.Version())
		}
		scriptType = inferred
	}

	out := make([]Derived, 0, 2*count)
	for _, branch := range []uint32{externalChain, internalChain} {
		chainKey, err := xkey.Derive(branch)
		if err != nil {
			return nil, fmt.Errorf("derive chain %d: %w", branch, err)
		}
		for i := uint32(0); i < count; i++ {
			child, err := chainKey.Derive(i)
			if err != nil {
				// BIP32: skip indexes that yield an invalid key.
				continue
			}
			addr, err := d.address(child, scriptType)
			if err != nil {
				return nil, err
			}
			item, err := derived(addr, fmt.Sprintf("%d/%d", branch, i), branch == internalChain)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
	}
	return out, nil
}

func (d *Deriver) address(key *hdkeychain.ExtendedKey, scriptType ScriptType) (btcutil.Address, error) {
	pubKey, err := key.ECPubKey()
	if err != nil {
		return nil, err
	}
	hash := btcutil.Hash160(pubKey.SerializeCompressed())

	switch scriptType {
	case P2PKH:
		return btcutil.NewAddressPubKeyHash(hash, d.params)
	case P2WPKH:
		return btcutil.NewAddressWitnessPubKeyHash(hash, d.params)
	case P2SHP2WPKH:
		witnessAddr, err := btcutil.NewAddressWitnessPubKeyHash(hash, d.params)
		if err != nil {
			return nil, err
		}
		redeem, err := txscript.PayToAddrScript(witnessAddr)
		if err != nil {
			return nil, err
		}
		return btcutil.NewAddressScriptHash(redeem, d.params)
	default:
		return nil, fmt.Errorf("unsupported script type %q", scriptType)
	}
}

func derived(addr btcutil.Address, path string, isChange bool) (Derived, error) {
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return Derived{}, fmt.Errorf("script for %s: %w", addr, err)
	}
	return Derived{
		Address:    addr.EncodeAddress(),
		ScriptHash: scripthash.FromScript(pkScript),
		Path:       path,
		IsChange:   isChange,
	}, nil
}

// ScriptHashes collects the script hashes of items into a Set.
func ScriptHashes(items []Derived) scripthash.Set {
	hashes := make([]scripthash.Hash, 0, len(items))
	for _, item := range items {
		hashes = append(hashes, item.ScriptHash)
	}
	return scripthash.NewSet(hashes...)
}
