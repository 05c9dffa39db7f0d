package pairing

import (
	"sort"

	"github.com/dosada05/swiss-tournament-engine/models"
)

// selectBye implements spec.md §4.2.B over an active-only candidate
// pool. It returns the chosen player and the pool with that player
// removed; it returns (nil, pool) unchanged if the pool is empty.
func selectBye(pool []*models.Player) (*models.Player, []*models.Player) {
	if len(pool) == 0 {
		return nil, pool
	}

	fresh := make([]*models.Player, 0, len(pool))
	for _, p := range pool {
		if !p.HasReceivedBye {
			fresh = append(fresh, p)
		}
	}

	candidates := fresh
	if len(candidates) == 0 {
		candidates = pool
	}

	byeKey := func(p *models.Player) (float64, int, string) {
		return p.Score(), p.Rating, p.Name
	}

	chosen := candidates[0]
	ck, cr, cn := byeKey(chosen)
	for _, p := range candidates[1:] {
		k, r, n := byeKey(p)
		if k < ck || (k == ck && r < cr) || (k == ck && r == cr && n < cn) {
			chosen, ck, cr, cn = p, k, r, n
		}
	}

	rest := make([]*models.Player, 0, len(pool)-1)
	for _, p := range pool {
		if p != chosen {
			rest = append(rest, p)
		}
	}
	return chosen, rest
}

// pickFloater picks the float candidate that sorts first by (last-float-round asc with
// never-floated as -inf, rating asc, name asc) per §4.2 step 2.b.
func pickFloater(bucket []*models.Player, round int) (*models.Player, []*models.Player) {
	candidates := make([]*models.Player, 0, len(bucket))
	for _, p := range bucket {
		if !p.FloatedInRound(round) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, bucket...)
	}

	lastFloat := func(p *models.Player) int {
		if len(p.FloatHistory) == 0 {
			return -1 << 30 // never-floated treated as -infinity
		}
		return p.LastFloatRound()
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if lf := lastFloat(a) - lastFloat(b); lf != 0 {
			return lf < 0
		}
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		return a.Name < b.Name
	})

	floater := candidates[0]
	rest := make([]*models.Player, 0, len(bucket)-1)
	for _, p := range bucket {
		if p != floater {
			rest = append(rest, p)
		}
	}
	return floater, rest
}
