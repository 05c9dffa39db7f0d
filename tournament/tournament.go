// Package tournament implements the Tournament Controller of spec.md
// §4: it owns the player roster, the append-only round history, and
// the previous-matches set, and mediates between the Pairing Engine
// and the Scoring Engine. Like those packages, it is synchronous and
// single-threaded; callers serialize their own access (spec.md §5).
package tournament

import (
	"fmt"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/dosada05/swiss-tournament-engine/pairing"
	"github.com/dosada05/swiss-tournament-engine/scoring"
)

// ManualOverride is one recorded reassign() call, kept for audit/log
// purposes (spec.md §4.3's manual_overrides map).
type ManualOverride struct {
	Round         int
	PlayerAID     string
	NewOpponentID string
}

// Tournament is the controller: the set of Player Records, the
// append-only round history, the manual-override log, and the
// previous-matches set used by the Pairing Engine.
type Tournament struct {
	Name          string
	NumRounds     int
	TiebreakOrder []models.TieBreakKey
	Config        Config

	Players     map[string]*models.Player
	playerOrder []string // registration order, for deterministic iteration

	Rounds          []models.RoundRecord
	PreviousMatches *pairing.PairSet
	ManualOverrides map[int][]ManualOverride
	scoredRounds    map[int]bool

	// CurrentRound is advanced only by a successful PairNextRound; a
	// round with results still outstanding is "current," not
	// "completed" (recorded Open Question decision).
	CurrentRound int

	nextPlayerSeq int
}

// NewTournament constructs an empty tournament. tiebreakOrder may be
// nil, in which case models.DefaultTiebreakOrder() is used.
func NewTournament(name string, numRounds int, tiebreakOrder []models.TieBreakKey, cfg Config) (*Tournament, error) {
	if name == "" {
		return nil, models.ErrEmptyName
	}
	if numRounds <= 0 {
		return nil, fmt.Errorf("num_rounds must be positive, got %d", numRounds)
	}
	if tiebreakOrder == nil {
		tiebreakOrder = models.DefaultTiebreakOrder()
	}
	if err := validateTiebreakOrder(tiebreakOrder); err != nil {
		return nil, err
	}

	return &Tournament{
		Name:            name,
		NumRounds:       numRounds,
		TiebreakOrder:   tiebreakOrder,
		Config:          cfg,
		Players:         make(map[string]*models.Player),
		PreviousMatches: pairing.NewPairSet(),
		ManualOverrides: make(map[int][]ManualOverride),
	}, nil
}

func validateTiebreakOrder(order []models.TieBreakKey) error {
	seen := make(map[models.TieBreakKey]struct{}, len(order))
	for _, k := range order {
		if _, dup := seen[k]; dup {
			return ErrTiebreakOrderInvalid
		}
		seen[k] = struct{}{}
	}
	return nil
}

// AddPlayer registers a new player and returns its assigned id. IDs
// are assigned sequentially and are stable for the life of the
// tournament.
func (t *Tournament) AddPlayer(name string, rating int) (string, error) {
	t.nextPlayerSeq++
	id := fmt.Sprintf("p%d", t.nextPlayerSeq)
	p, err := models.NewPlayer(id, name, rating)
	if err != nil {
		t.nextPlayerSeq--
		return "", err
	}
	t.Players[id] = p
	t.playerOrder = append(t.playerOrder, id)
	return id, nil
}

// Withdraw sets is_active to false; history is retained.
func (t *Tournament) Withdraw(id string) error {
	p, ok := t.Players[id]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = false
	return nil
}

// Reactivate sets is_active back to true.
func (t *Tournament) Reactivate(id string) error {
	p, ok := t.Players[id]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = true
	return nil
}

// orderedPlayers returns all players (active and inactive) in
// registration order, the order the Pairing Engine iterates over
// (it filters to active internally).
func (t *Tournament) orderedPlayers() []*models.Player {
	out := make([]*models.Player, 0, len(t.playerOrder))
	for _, id := range t.playerOrder {
		out = append(out, t.Players[id])
	}
	return out
}

// roster satisfies scoring.Roster for ComputeTiebreakers/Standings.
func (t *Tournament) roster() scoring.Roster {
	return scoring.Roster(t.Players)
}
