package scoring

import (
	"sort"

	"github.com/dosada05/swiss-tournament-engine/models"
)

// headToHead implements spec.md §4.4 step 2: if a beat b in any prior
// round and b never beat a, a ranks above b. Returns 0 if neither
// condition breaks the tie.
func headToHead(a, b *models.Player, winScore float64) int {
	aWon := resultBeats(a, b.ID, winScore)
	bWon := resultBeats(b, a.ID, winScore)
	switch {
	case aWon && !bWon:
		return 1
	case bWon && !aWon:
		return -1
	default:
		return 0
	}
}

func resultBeats(p *models.Player, opponentID string, winScore float64) bool {
	result, ok := p.ResultAgainst(opponentID)
	return ok && result == winScore
}

// Compare implements the total ordering of spec.md §4.4: score desc,
// head-to-head, each tiebreakOrder key in sequence (larger wins),
// rating desc, name asc. It returns a positive value if a ranks above
// b, negative if b ranks above a, and 0 only when score, head-to-head,
// every tie-break, rating and name are all equal (as when a player is
// compared with itself).
func Compare(a, b *models.Player, tiebreakOrder []models.TieBreakKey, cfg Config) int {
	if a.Score() != b.Score() {
		if a.Score() > b.Score() {
			return 1
		}
		return -1
	}

	if h := headToHead(a, b, cfg.WinScore); h != 0 {
		return h
	}

	for _, key := range tiebreakOrder {
		av, bv := a.Tiebreakers[key], b.Tiebreakers[key]
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}

	if a.Rating != b.Rating {
		if a.Rating > b.Rating {
			return 1
		}
		return -1
	}

	switch {
	case a.Name < b.Name:
		return 1
	case a.Name > b.Name:
		return -1
	default:
		return 0
	}
}

// Standings returns active players sorted by Compare, best first.
// Callers must have already run ComputeAll (or Compute per player) so
// that Tiebreakers is populated.
func Standings(players []*models.Player, tiebreakOrder []models.TieBreakKey, cfg Config) []*models.Player {
	active := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return Compare(active[i], active[j], tiebreakOrder, cfg) > 0
	})
	return active
}
