package pairing

// PlayerPair is an unordered pair of player ids. Two PlayerPairs are
// equal regardless of which id was recorded first — spec.md §9 calls
// this out explicitly: "the key requirement is value-equality
// independent of order."
type PlayerPair struct {
	A, B string
}

// newPlayerPair normalizes the pair so equal pairs compare equal as Go
// map keys regardless of argument order.
func newPlayerPair(a, b string) PlayerPair {
	if a > b {
		a, b = b, a
	}
	return PlayerPair{A: a, B: b}
}

// PairSet is previous_matches: the set of every pair ever emitted in
// any round (I2). It never shrinks (§4.3: "it never removes entries").
type PairSet struct {
	members map[PlayerPair]struct{}
}

// NewPairSet returns an empty set.
func NewPairSet() *PairSet {
	return &PairSet{members: make(map[PlayerPair]struct{})}
}

// Add records {a, b} as having played, idempotently.
func (s *PairSet) Add(a, b string) {
	s.members[newPlayerPair(a, b)] = struct{}{}
}

// Contains reports whether {a, b} has ever been emitted.
func (s *PairSet) Contains(a, b string) bool {
	_, ok := s.members[newPlayerPair(a, b)]
	return ok
}

// Len is the number of distinct unordered pairs recorded.
func (s *PairSet) Len() int {
	return len(s.members)
}

// Pairs returns every recorded pair, in no particular order.
func (s *PairSet) Pairs() []PlayerPair {
	out := make([]PlayerPair, 0, len(s.members))
	for p := range s.members {
		out = append(out, p)
	}
	return out
}

// Clone returns an independent copy, used to preview a round without
// mutating the real previous_matches set.
func (s *PairSet) Clone() *PairSet {
	out := NewPairSet()
	for p := range s.members {
		out.members[p] = struct{}{}
	}
	return out
}
