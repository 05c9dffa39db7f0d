package tournament

import (
	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/dosada05/swiss-tournament-engine/scoring"
)

// ComputeTiebreakers recomputes every active and inactive player's
// Tiebreakers map from the currently recorded history.
func (t *Tournament) ComputeTiebreakers() {
	scoring.ComputeAll(t.roster(), t.Config.scoringConfig())
}

// Standings recomputes tiebreakers and returns active players in
// ranked order, best first.
func (t *Tournament) Standings() []*models.Player {
	t.ComputeTiebreakers()
	return scoring.Standings(t.orderedPlayers(), t.TiebreakOrder, t.Config.scoringConfig())
}
