// Package storage provides the persistence codec and repository
// adapters for a Tournament: a JSON-stable Snapshot format
// (snapshot.go), a Postgres-backed repository (postgres.go), and an
// object-storage backup uploader built on the kept CloudflareR2
// uploader (backup.go).
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/dosada05/swiss-tournament-engine/tournament"
)

// ErrCorruptSnapshot is returned by Decode when a snapshot's shape is
// structurally invalid (mismatched lengths, unknown tiebreak key,
// dangling player reference) in a way that means the bytes cannot have
// come from a valid Encode.
var ErrCorruptSnapshot = errors.New("corrupt tournament snapshot")

// PlayerSnapshot mirrors spec.md §6's player dictionary exactly.
type PlayerSnapshot struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Rating         int       `json:"rating"`
	IsActive       bool      `json:"is_active"`
	Results        []float64 `json:"results"`
	OpponentIDs    []string  `json:"opponent_ids"`
	ColorHistory   []string  `json:"color_history"`
	FloatHistory   []int     `json:"float_history"`
	RunningScores  []float64 `json:"running_scores"`
	HasReceivedBye bool      `json:"has_received_bye"`
	NumBlackGames  int       `json:"num_black_games"`
}

// ManualPairingEntry mirrors one recorded tournament.ManualOverride.
type ManualPairingEntry struct {
	PlayerAID     string `json:"player_a_id"`
	NewOpponentID string `json:"new_opponent_id"`
}

// Snapshot mirrors spec.md §6's persisted dictionary exactly: same
// keys, same shape, so the wire format is stable across engine
// versions even as internal types change.
type Snapshot struct {
	Name             string                         `json:"name"`
	Players          []PlayerSnapshot               `json:"players"`
	NumRounds        int                            `json:"num_rounds"`
	TiebreakOrder    []string                       `json:"tiebreak_order"`
	RoundsPairingIDs [][][2]string                  `json:"rounds_pairings_ids"`
	RoundsByeIDs     []string                       `json:"rounds_byes_ids"`
	PreviousMatches  [][2]string                    `json:"previous_matches"`
	ManualPairings   map[string][]ManualPairingEntry `json:"manual_pairings"`
}

// Marshal renders the snapshot as the bytes stored by the repository
// and backup uploader.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal parses bytes produced by Marshal.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return s, nil
}

func colorToString(c models.Color) string {
	if c == models.ColorNone {
		return "none"
	}
	return c.String()
}

func colorFromString(s string) (models.Color, error) {
	switch s {
	case "White":
		return models.White, nil
	case "Black":
		return models.Black, nil
	case "none":
		return models.ColorNone, nil
	default:
		return 0, fmt.Errorf("%w: unknown color %q", ErrCorruptSnapshot, s)
	}
}

func tiebreakKeyFromString(s string) (models.TieBreakKey, error) {
	k, err := models.ParseTieBreakKey(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return k, nil
}

// Encode renders a Tournament into the persisted Snapshot shape.
func Encode(t *tournament.Tournament) Snapshot {
	s := Snapshot{
		Name:           t.Name,
		NumRounds:      t.NumRounds,
		ManualPairings: make(map[string][]ManualPairingEntry),
	}

	for _, k := range t.TiebreakOrder {
		s.TiebreakOrder = append(s.TiebreakOrder, k.String())
	}

	for _, id := range playerIDsInOrder(t) {
		p := t.Players[id]
		colors := p.ColorHistory()
		colorStrs := make([]string, len(colors))
		for i, c := range colors {
			colorStrs[i] = colorToString(c)
		}
		s.Players = append(s.Players, PlayerSnapshot{
			ID:             p.ID,
			Name:           p.Name,
			Rating:         p.Rating,
			IsActive:       p.IsActive,
			Results:        p.Results(),
			OpponentIDs:    p.OpponentIDs(),
			ColorHistory:   colorStrs,
			FloatHistory:   append([]int{}, p.FloatHistory...),
			RunningScores:  p.RunningScores(),
			HasReceivedBye: p.HasReceivedBye,
			NumBlackGames:  p.NumBlackGames(),
		})
	}

	for _, round := range t.Rounds {
		var pairs [][2]string
		for _, pr := range round.Pairings {
			pairs = append(pairs, [2]string{pr.WhiteID, pr.BlackID})
		}
		s.RoundsPairingIDs = append(s.RoundsPairingIDs, pairs)

		byeID := round.ByeID
		if byeID == "" {
			byeID = models.ByeOpponentID
		}
		s.RoundsByeIDs = append(s.RoundsByeIDs, byeID)
	}

	for _, pair := range t.PreviousMatches.Pairs() {
		s.PreviousMatches = append(s.PreviousMatches, [2]string{pair.A, pair.B})
	}

	for round, overrides := range t.ManualOverrides {
		key := fmt.Sprintf("%d", round)
		for _, o := range overrides {
			s.ManualPairings[key] = append(s.ManualPairings[key], ManualPairingEntry{
				PlayerAID:     o.PlayerAID,
				NewOpponentID: o.NewOpponentID,
			})
		}
	}

	return s
}

func playerIDsInOrder(t *tournament.Tournament) []string {
	ids := make([]string, 0, len(t.Players))
	for id := range t.Players {
		ids = append(ids, id)
	}
	// Encode output should be stable across calls for a given
	// tournament state; sort by id since Tournament does not expose
	// its internal registration-order slice.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// Decode reconstructs a Tournament from a Snapshot, round-tripping
// against Encode (spec.md P8). It validates structural invariants
// before building any state and returns ErrCorruptSnapshot on the
// first violation.
func Decode(s Snapshot) (*tournament.Tournament, error) {
	tiebreakOrder := make([]models.TieBreakKey, 0, len(s.TiebreakOrder))
	for _, k := range s.TiebreakOrder {
		key, err := tiebreakKeyFromString(k)
		if err != nil {
			return nil, err
		}
		tiebreakOrder = append(tiebreakOrder, key)
	}

	cfg := tournament.DefaultConfig()
	t, err := tournament.NewTournament(s.Name, s.NumRounds, tiebreakOrder, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	for _, ps := range s.Players {
		if len(ps.Results) != len(ps.OpponentIDs) || len(ps.Results) != len(ps.ColorHistory) || len(ps.Results) != len(ps.RunningScores) {
			return nil, fmt.Errorf("%w: player %s has mismatched per-round sequence lengths", ErrCorruptSnapshot, ps.ID)
		}
		p, err := models.NewPlayer(ps.ID, ps.Name, ps.Rating)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		p.IsActive = ps.IsActive
		for i := range ps.Results {
			color, err := colorFromString(ps.ColorHistory[i])
			if err != nil {
				return nil, err
			}
			isBye := ps.OpponentIDs[i] == models.ByeOpponentID
			opponentID := ps.OpponentIDs[i]
			if isBye {
				opponentID = ""
			}
			if err := p.AppendRound(i+1, opponentID, isBye, ps.Results[i], color); err != nil {
				return nil, fmt.Errorf("%w: player %s round %d: %v", ErrCorruptSnapshot, ps.ID, i+1, err)
			}
		}
		p.HasReceivedBye = ps.HasReceivedBye
		t.Players[ps.ID] = p
		t.RegisterExisting(ps.ID)
	}

	if len(s.RoundsPairingIDs) != len(s.RoundsByeIDs) {
		return nil, fmt.Errorf("%w: rounds_pairings_ids and rounds_byes_ids length mismatch", ErrCorruptSnapshot)
	}
	for i, pairs := range s.RoundsPairingIDs {
		record := models.RoundRecord{ByeID: s.RoundsByeIDs[i]}
		if record.ByeID == models.ByeOpponentID {
			record.ByeID = ""
		}
		if record.ByeID != "" && t.Players[record.ByeID] == nil {
			return nil, fmt.Errorf("%w: round %d bye %s is not a known player", ErrCorruptSnapshot, i+1, record.ByeID)
		}
		for _, pr := range pairs {
			if t.Players[pr[0]] == nil || t.Players[pr[1]] == nil {
				return nil, fmt.Errorf("%w: round %d pairing %s/%s references an unknown player", ErrCorruptSnapshot, i+1, pr[0], pr[1])
			}
			record.Pairings = append(record.Pairings, models.Pairing{WhiteID: pr[0], BlackID: pr[1]})
		}
		t.Rounds = append(t.Rounds, record)
	}
	t.CurrentRound = len(t.Rounds)

	for _, pair := range s.PreviousMatches {
		t.PreviousMatches.Add(pair[0], pair[1])
	}

	for key, entries := range s.ManualPairings {
		var round int
		if _, err := fmt.Sscanf(key, "%d", &round); err != nil {
			return nil, fmt.Errorf("%w: manual_pairings key %q is not a round index", ErrCorruptSnapshot, key)
		}
		for _, e := range entries {
			t.ManualOverrides[round] = append(t.ManualOverrides[round], tournament.ManualOverride{
				Round:         round,
				PlayerAID:     e.PlayerAID,
				NewOpponentID: e.NewOpponentID,
			})
		}
	}
	t.MarkAllRoundsScored()

	return t, nil
}
