package scripthash

// Set is a read-only collection of script hashes. It is safe for concurrent use once built.
type Set struct {
	index  map[Hash]struct{}
	hashes []Hash
}

// NewSet builds a Set, dropping duplicates and keeping first-seen order.
func NewSet(hashes ...Hash) Set {
	s := Set{
		index:  make(map[Hash]struct{}, len(hashes)),
		hashes: make([]Hash, 0, len(hashes)),
	}
	for _, h := range hashes {
		if _, dup := s.index[h]; dup {
			continue
		}
		s.index[h] = struct{}{}
		s.hashes = append(s.hashes, h)
	}
	return s
}

// ParseSet parses hex script hashes into a Set.
func ParseSet(values []string) (Set, error) {
	hashes := make([]Hash, 0, len(values))
	for _, v := range values {
		h, err := Parse(v)
		if err != nil {
			return Set{}, err
		}
		hashes = append(hashes, h)
	}
	return NewSet(hashes...), nil
}

// Contains reports whether h is a member.
func (s Set) Contains(h Hash) bool {
	_, ok := s.index[h]
	return ok
}

// ContainsScript reports whether the hash of pkScript is a member.
func (s Set) ContainsScript(pkScript []byte) bool {
	return s.Contains(FromScript(pkScript))
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.hashes)
}

// Hashes returns a copy of the members in insertion order.
func (s Set) Hashes() []Hash {
	return append([]Hash(nil), s.hashes...)
}
