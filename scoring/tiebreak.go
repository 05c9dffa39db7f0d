// Package scoring computes each player's tie-break metrics from
// recorded round history and provides the total ordering used for
// standings (spec.md §4.4). It is a pure function of Tournament state:
// nothing here mutates a Player beyond writing its own Tiebreakers map.
package scoring

import (
	"sort"

	"github.com/dosada05/swiss-tournament-engine/models"
)

// Roster resolves an opponent id to its current Player record. The
// tournament controller's player map satisfies this directly.
type Roster map[string]*models.Player

// opponentScores returns the current Score() of every non-bye opponent
// p actually played, in round order.
func opponentScores(p *models.Player, roster Roster) []float64 {
	var out []float64
	for _, e := range p.Entries {
		if e.IsBye {
			continue
		}
		if opp, ok := roster[e.OpponentID]; ok {
			out = append(out, opp.Score())
		}
	}
	return out
}

func solkoff(p *models.Player, roster Roster) float64 {
	var total float64
	for _, s := range opponentScores(p, roster) {
		total += s
	}
	return total
}

// modifiedMedian implements spec.md §4.4's MEDIAN rule.
func modifiedMedian(p *models.Player, roster Roster, winScore float64) float64 {
	scores := opponentScores(p, roster)
	n := len(scores)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return scores[0]
	}

	var ownPlayed float64
	for _, e := range p.Entries {
		if !e.IsBye {
			ownPlayed += e.Result
		}
	}
	half := float64(n) * winScore / 2

	sorted := append([]float64{}, scores...)
	sort.Float64s(sorted)

	switch {
	case ownPlayed > half:
		sorted = sorted[1:]
	case ownPlayed < half:
		sorted = sorted[:len(sorted)-1]
	default:
		if n >= 2 {
			sorted = sorted[1 : len(sorted)-1]
		}
	}

	var total float64
	for _, s := range sorted {
		total += s
	}
	return total
}

func cumulative(p *models.Player) float64 {
	var total float64
	for _, s := range p.RunningScores() {
		total += s
	}
	return total
}

func sonnenbornBerger(p *models.Player, roster Roster, winScore, drawScore float64) float64 {
	var total float64
	for _, e := range p.Entries {
		if e.IsBye {
			continue
		}
		opp, ok := roster[e.OpponentID]
		if !ok {
			continue
		}
		switch e.Result {
		case winScore:
			total += opp.Score()
		case drawScore:
			total += opp.Score() / 2
		}
	}
	return total
}

func mostBlacks(p *models.Player) float64 {
	return float64(p.NumBlackGames())
}

// Config carries the scoring constants a tournament was created with
// (spec.md §6's WIN_SCORE/DRAW_SCORE defaults), since MEDIAN and
// SONNENBORN_BERGER both need to know what a win/draw is worth.
type Config struct {
	WinScore  float64
	DrawScore float64
}

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{WinScore: 1.0, DrawScore: 0.5}
}

// Compute fills in and returns every tie-break metric in spec.md §4.4
// except HEAD_TO_HEAD, which is pairwise and computed only during
// comparison. The returned map is also stored on p.Tiebreakers.
func Compute(p *models.Player, roster Roster, cfg Config) map[models.TieBreakKey]float64 {
	values := map[models.TieBreakKey]float64{
		models.Solkoff:          solkoff(p, roster),
		models.Median:           modifiedMedian(p, roster, cfg.WinScore),
		models.Cumulative:       cumulative(p),
		models.CumulativeOpp:    solkoff(p, roster),
		models.SonnenbornBerger: sonnenbornBerger(p, roster, cfg.WinScore, cfg.DrawScore),
		models.MostBlacks:       mostBlacks(p),
	}
	p.Tiebreakers = values
	return values
}

// ComputeAll recomputes tie-breakers for every player in roster, in any
// order (each player's metrics depend only on opponents' Score(),
// which is already fully determined by recorded results).
func ComputeAll(roster Roster, cfg Config) {
	for _, p := range roster {
		Compute(p, roster, cfg)
	}
}
