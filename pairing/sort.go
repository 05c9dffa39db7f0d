package pairing

import (
	"sort"

	"github.com/dosada05/swiss-tournament-engine/models"
)

// byRatingDescNameAsc sorts a player slice by (rating desc, name asc),
// the seeding order spec.md §4.2 uses throughout.
func byRatingDescNameAsc(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})
}

func sortedCopyByRatingDescNameAsc(players []*models.Player) []*models.Player {
	out := make([]*models.Player, len(players))
	copy(out, players)
	byRatingDescNameAsc(out)
	return out
}

func activePlayers(players []*models.Player) []*models.Player {
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
