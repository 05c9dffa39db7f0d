package models

import "fmt"

// ByeOpponentID is the sentinel opponent id used in the external,
// persisted representation of a bye round (spec.md §3, §6). Internally
// a RoundEntry carries an explicit IsBye flag instead of relying on the
// sentinel — see spec.md §9's note that string-encoded variants leak
// into every comparator in the source this was ported from.
const ByeOpponentID = "none"

// RoundEntry is one round's worth of history for a player: the result,
// opponent, color, and running score after that round. Keeping a
// single ordered sequence of these (rather than four parallel slices)
// is what makes invariant I3 ("all per-round sequences have equal
// length") hold by construction instead of by convention.
type RoundEntry struct {
	Round        int
	OpponentID   string
	IsBye        bool
	Result       float64
	Color        Color
	RunningScore float64
}

// Player is the engine's record for one tournament entrant. Identity
// (ID, Name, Rating) is set at registration; everything else accrues
// round by round via AppendRound.
type Player struct {
	ID             string
	Name           string
	Rating         int
	IsActive       bool
	Entries        []RoundEntry
	HasReceivedBye bool
	FloatHistory   []int
	Tiebreakers    map[TieBreakKey]float64
}

// NewPlayer validates and constructs a Player with empty history.
func NewPlayer(id, name string, rating int) (*Player, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if rating < 0 || rating > 3500 {
		return nil, ErrRatingOutOfRange
	}
	return &Player{
		ID:          id,
		Name:        name,
		Rating:      rating,
		IsActive:    true,
		Tiebreakers: make(map[TieBreakKey]float64),
	}, nil
}

// AppendRound records one round's outcome. round is the 1-based round
// number this entry belongs to; it must immediately follow the
// player's existing history, or ErrInvalidRoundIndex is returned and no
// mutation occurs. The policy for a gap — a player added or reactivated
// after round 1 whose history is shorter than round-1 — is to reject,
// never back-fill: callers (tournament.RecordResults) must check
// RoundsPlayed() before calling and treat this error as fatal to the
// whole batch, not discard it.
func (p *Player) AppendRound(round int, opponentID string, isBye bool, result float64, color Color) error {
	if round != len(p.Entries)+1 {
		return ErrInvalidRoundIndex
	}
	running := result
	if n := len(p.Entries); n > 0 {
		running += p.Entries[n-1].RunningScore
	}
	entry := RoundEntry{
		Round:        round,
		OpponentID:   opponentID,
		IsBye:        isBye,
		Result:       result,
		Color:        color,
		RunningScore: running,
	}
	p.Entries = append(p.Entries, entry)
	if isBye {
		p.HasReceivedBye = true
	}
	return nil
}

// RoundsPlayed is len(Entries): how many rounds (including byes) this
// player has a recorded entry for.
func (p *Player) RoundsPlayed() int {
	return len(p.Entries)
}

// Score is the live sum of all recorded results (I5).
func (p *Player) Score() float64 {
	var total float64
	for _, e := range p.Entries {
		total += e.Result
	}
	return total
}

// RunningScores returns the cumulative score after each recorded round
// (I6), used by the CUMULATIVE tie-break.
func (p *Player) RunningScores() []float64 {
	out := make([]float64, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.RunningScore
	}
	return out
}

// Results returns the per-round result sequence.
func (p *Player) Results() []float64 {
	out := make([]float64, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Result
	}
	return out
}

// OpponentIDs returns the per-round opponent sequence, using
// ByeOpponentID for bye rounds, matching the persisted form in §6.
func (p *Player) OpponentIDs() []string {
	out := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		if e.IsBye {
			out[i] = ByeOpponentID
		} else {
			out[i] = e.OpponentID
		}
	}
	return out
}

// ColorHistory returns the per-round color sequence.
func (p *Player) ColorHistory() []Color {
	out := make([]Color, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Color
	}
	return out
}

// NumBlackGames counts Black assignments across all recorded rounds.
func (p *Player) NumBlackGames() int {
	n := 0
	for _, e := range p.Entries {
		if e.Color == Black {
			n++
		}
	}
	return n
}

// ColorBalance is whites minus blacks, ignoring byes.
func (p *Player) ColorBalance() int {
	balance := 0
	for _, e := range p.Entries {
		switch e.Color {
		case White:
			balance++
		case Black:
			balance--
		}
	}
	return balance
}

// lastTwoColors returns the colors of the two most recent non-bye
// games, most recent first, and how many were found (0, 1, or 2).
func (p *Player) lastTwoColors() (a, b Color, n int) {
	found := 0
	var colors [2]Color
	for i := len(p.Entries) - 1; i >= 0 && found < 2; i-- {
		e := p.Entries[i]
		if e.IsBye || e.Color == ColorNone {
			continue
		}
		colors[found] = e.Color
		found++
	}
	return colors[0], colors[1], found
}

// ColorPreference implements spec.md §4.1's color_preference() rules.
func (p *Player) ColorPreference() ColorPreference {
	last, secondLast, n := p.lastTwoColors()
	if n == 2 && last == secondLast {
		if last == White {
			return MustBlack
		}
		return MustWhite
	}

	balance := p.ColorBalance()
	switch {
	case balance >= 1:
		return PreferBlack
	case balance <= -1:
		return PreferWhite
	default:
		return NoPreference
	}
}

// HasPlayedOpponent reports whether this player's history already
// contains a non-bye game against opponentID.
func (p *Player) HasPlayedOpponent(opponentID string) bool {
	for _, e := range p.Entries {
		if !e.IsBye && e.OpponentID == opponentID {
			return true
		}
	}
	return false
}

// ResultAgainst returns the result this player scored against
// opponentID the most recent time they met, and whether they ever met.
func (p *Player) ResultAgainst(opponentID string) (result float64, ok bool) {
	for i := len(p.Entries) - 1; i >= 0; i-- {
		e := p.Entries[i]
		if !e.IsBye && e.OpponentID == opponentID {
			return e.Result, true
		}
	}
	return 0, false
}

// LastFloatRound returns the most recent round in which this player
// was floated down, or 0 if never floated (treated as -infinity by the
// bye/float selection rules in §4.2).
func (p *Player) LastFloatRound() int {
	if len(p.FloatHistory) == 0 {
		return 0
	}
	return p.FloatHistory[len(p.FloatHistory)-1]
}

// FloatedInRound reports whether this player was floated during round.
func (p *Player) FloatedInRound(round int) bool {
	for _, r := range p.FloatHistory {
		if r == round {
			return true
		}
	}
	return false
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(%s, %q, rating=%d)", p.ID, p.Name, p.Rating)
}
