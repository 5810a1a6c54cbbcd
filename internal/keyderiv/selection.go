package keyderiv

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
)

// DefaultCount is the number of receive and change addresses derived when Selection.Count is zero.
const DefaultCount = 20

// ErrEmptySelection is returned when a Selection names nothing to watch.
var ErrEmptySelection = errors.New("one of script hashes, addresses or xpub is required")

// Selection is a user supplied description of the watched scripts. Sources are combined.
type Selection struct {
	ScriptHashes []string
	Addresses    []string
	XPub         string
	ScriptType   string
	Count        uint32
}

// Resolve turns sel into a script hash set. Labels maps hashes coming from addresses or the
// extended key back to their Derived entry.
func (d *Deriver) Resolve(sel Selection) (scripthash.Set, map[scripthash.Hash]Derived, error) {
	var hashes []scripthash.Hash
	labels := make(map[scripthash.Hash]Derived)

	for _, raw := range sel.ScriptHashes {
		h, err := scripthash.Parse(raw)
		if err != nil {
			return scripthash.Set{}, nil, err
		}
		hashes = append(hashes, h)
	}

	for _, addr := range sel.Addresses {
		item, err := d.FromAddress(addr)
		if err != nil {
			return scripthash.Set{}, nil, err
		}
		hashes = append(hashes, item.ScriptHash)
		labels[item.ScriptHash] = item
	}

	if sel.XPub != "" {
		scriptType, err := ParseScriptType(sel.ScriptType)
		if err != nil {
			return scripthash.Set{}, nil, err
		}
		count := sel.Count
		if count == 0 {
			count = DefaultCount
		}
		items, err := d.FromExtendedKey(sel.XPub, scriptType, count)
		if err != nil {
			return scripthash.Set{}, nil, fmt.Errorf("xpub: %w", err)
		}
		for _, item := range items {
			hashes = append(hashes, item.ScriptHash)
			labels[item.ScriptHash] = item
		}
	}

	if len(hashes) == 0 {
		return scripthash.Set{}, nil, ErrEmptySelection
	}
	return scripthash.NewSet(hashes...), labels, nil
}
