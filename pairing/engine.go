// Package pairing implements the Swiss pairing engine: round-1 seeding,
// Dutch-system score-group pairing for subsequent rounds, bye
// selection, color assignment, and manual pairing reassignment. It is
// a pure function of the players it is given and the previous_matches
// set — it has no notion of a "tournament" beyond that (spec.md §4.2).
package pairing

import (
	"github.com/dosada05/swiss-tournament-engine/models"
)

// AllowRepeatFunc is consulted when the engine would otherwise have to
// re-emit a pair already present in previous_matches. A nil callback
// is treated as "never allow."
type AllowRepeatFunc func(a, b string) bool

// Result is the outcome of GenerateRound: the round's pairings/bye,
// plus any active player the engine could not schedule at all this
// round (the documented forced-repeat fallback of spec.md S5 — no
// valid opponent and no approved repeat). Callers should log a
// warning when Unscheduled is non-empty; it is not an engine error.
type Result struct {
	Round       models.RoundRecord
	Unscheduled []*models.Player
}

// GenerateRound produces the pairings and optional bye for round
// (1-based) from the full player roster. Inactive players are
// excluded. previous is read (to avoid repeats) and written (new pairs
// are added) in place, matching spec.md §4.2 step 4 / §4.3.
func GenerateRound(round int, players []*models.Player, previous *PairSet, allowRepeat AllowRepeatFunc) (Result, error) {
	active := activePlayers(players)
	if len(active) == 0 {
		return Result{}, nil
	}

	var record models.RoundRecord
	var unscheduled []*models.Player
	var err error
	if round == 1 {
		record, err = pairFirstRound(active)
	} else {
		record, unscheduled, err = pairSubsequentRound(round, active, previous, allowRepeat)
	}
	if err != nil {
		return Result{}, err
	}

	for _, pr := range record.Pairings {
		previous.Add(pr.WhiteID, pr.BlackID)
	}
	return Result{Round: record, Unscheduled: unscheduled}, nil
}

// pairFirstRound implements spec.md §4.2's Round 1 algorithm.
func pairFirstRound(active []*models.Player) (models.RoundRecord, error) {
	seeded := sortedCopyByRatingDescNameAsc(active)

	var byeID string
	if len(seeded)%2 == 1 {
		bye, rest := selectBye(seeded)
		if bye == nil {
			return models.RoundRecord{}, ErrPairingInfeasible
		}
		byeID = bye.ID
		seeded = rest
	}

	half := len(seeded) / 2
	top, bottom := seeded[:half], seeded[half:]

	pairings := make([]models.Pairing, 0, half)
	for i := 0; i < half; i++ {
		pairings = append(pairings, models.Pairing{WhiteID: top[i].ID, BlackID: bottom[i].ID})
	}

	return models.RoundRecord{Pairings: pairings, ByeID: byeID}, nil
}

// pairSubsequentRound implements spec.md §4.2's Dutch-system algorithm
// for rounds after the first.
func pairSubsequentRound(round int, active []*models.Player, previous *PairSet, allowRepeat AllowRepeatFunc) (models.RoundRecord, []*models.Player, error) {
	groups := scoreGroups(active)

	var carry []*models.Player
	var allPairings []models.Pairing

	for _, group := range groups {
		bucket := append(append([]*models.Player{}, carry...), group...)
		carry = nil
		byRatingDescNameAsc(bucket)

		if len(bucket)%2 == 1 {
			floater, rest := pickFloater(bucket, round)
			floater.FloatHistory = append(floater.FloatHistory, round)
			carry = append(carry, floater)
			bucket = rest
		}

		pairs, unpaired := pairBucket(bucket, previous, allowRepeat)
		allPairings = append(allPairings, pairs...)
		carry = append(carry, unpaired...)
	}

	// Leftovers pool: whatever never found a home above.
	byRatingDescNameAsc(carry)
	var byeID string
	if len(carry)%2 == 1 {
		bye, rest := selectBye(carry)
		if bye == nil {
			return models.RoundRecord{}, nil, ErrPairingInfeasible
		}
		byeID = bye.ID
		carry = rest
	}

	pairs, unscheduled := pairBucket(carry, previous, allowRepeat)
	allPairings = append(allPairings, pairs...)

	// Any player still unpaired here means every remaining candidate
	// had already played them and no allow_repeat approval was given
	// (spec.md S5's forced-repeat scenario): documented fallback is to
	// leave them unscheduled for this round with no result entry,
	// rather than failing the whole round. The caller is expected to
	// log a warning when Unscheduled comes back non-empty.

	return models.RoundRecord{Pairings: allPairings, ByeID: byeID}, unscheduled, nil
}

// scoreGroups partitions active players into descending-score buckets,
// each internally sorted by (rating desc, name asc).
func scoreGroups(active []*models.Player) [][]*models.Player {
	byScore := make(map[float64][]*models.Player)
	var scores []float64
	for _, p := range active {
		if _, ok := byScore[p.Score()]; !ok {
			scores = append(scores, p.Score())
		}
		byScore[p.Score()] = append(byScore[p.Score()], p)
	}
	// descending score order
	for i := 0; i < len(scores); i++ {
		for j := i + 1; j < len(scores); j++ {
			if scores[j] > scores[i] {
				scores[i], scores[j] = scores[j], scores[i]
			}
		}
	}
	groups := make([][]*models.Player, 0, len(scores))
	for _, s := range scores {
		g := byScore[s]
		byRatingDescNameAsc(g)
		groups = append(groups, g)
	}
	return groups
}

// pairBucket runs the §4.2 step c iteration over an already-sorted,
// even-or-odd bucket (the caller has already peeled off a floater or
// bye for any odd remainder it cares to resolve; anything left over
// here is returned as unpaired for the caller to carry down).
func pairBucket(bucket []*models.Player, previous *PairSet, allowRepeat AllowRepeatFunc) ([]models.Pairing, []*models.Player) {
	remaining := append([]*models.Player{}, bucket...)
	var pairings []models.Pairing
	var carried []*models.Player

	for len(remaining) > 0 {
		p1 := remaining[0]
		rest := remaining[1:]

		if idx, ok := bestCandidate(p1, rest, previous); ok {
			opp := rest[idx]
			white, black := assignColors(p1, opp)
			pairings = append(pairings, models.Pairing{WhiteID: white, BlackID: black})
			remaining = removeIndices(rest, idx)
			continue
		}

		if len(rest) == 0 {
			// Sole survivor of this bucket; carried down by caller.
			carried = append(carried, p1)
			break
		}

		repeatIdx := -1
		if allowRepeat != nil {
			for i, c := range rest {
				if allowRepeat(p1.ID, c.ID) {
					repeatIdx = i
					break
				}
			}
		}

		if repeatIdx >= 0 {
			opp := rest[repeatIdx]
			white, black := assignColors(p1, opp)
			pairings = append(pairings, models.Pairing{WhiteID: white, BlackID: black})
			remaining = removeIndices(rest, repeatIdx)
			continue
		}

		// p1 cannot be paired in this bucket at all: carry down, keep
		// trying to pair whoever remains.
		carried = append(carried, p1)
		remaining = rest
	}

	return pairings, carried
}

// bestCandidate scans rest (already in rating-desc order) for the
// lowest color-conflict opponent for p1 that has not already played
// p1, per spec.md §4.2 step c. Returns ok=false if no candidate in
// rest is eligible (i.e., every remaining player already faced p1).
func bestCandidate(p1 *models.Player, rest []*models.Player, previous *PairSet) (int, bool) {
	best := -1
	bestScore := 3 // higher than any real conflict score
	for i, c := range rest {
		if previous.Contains(p1.ID, c.ID) {
			continue
		}
		score := colorConflictScore(p1, c)
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func removeIndices(s []*models.Player, idx int) []*models.Player {
	out := make([]*models.Player, 0, len(s)-1)
	for i, p := range s {
		if i != idx {
			out = append(out, p)
		}
	}
	return out
}
