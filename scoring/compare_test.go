package scoring

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func TestCompareOrdersByScoreFirst(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 1900)
	b := mustPlayer(t, "b", "Bob", 2000)
	require.NoError(t, a.AppendRound(1, "x", false, 1.0, models.White))
	require.NoError(t, b.AppendRound(1, "y", false, 0.0, models.White))

	require.Greater(t, Compare(a, b, nil, DefaultConfig()), 0)
}

func TestCompareHeadToHeadBreaksScoreTie(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 1900)
	b := mustPlayer(t, "b", "Bob", 2000)
	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.White))
	require.NoError(t, a.AppendRound(2, "x", false, 0.0, models.Black))
	require.NoError(t, b.AppendRound(1, "a", false, 0.0, models.Black))
	require.NoError(t, b.AppendRound(2, "y", false, 1.0, models.White))

	require.Greater(t, Compare(a, b, nil, DefaultConfig()), 0)
}

func TestCompareFallsThroughTiebreakOrderThenRatingThenName(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 1900)
	b := mustPlayer(t, "z", "Zoe", 2000)
	a.Tiebreakers = map[models.TieBreakKey]float64{models.Solkoff: 3}
	b.Tiebreakers = map[models.TieBreakKey]float64{models.Solkoff: 3}

	require.Less(t, Compare(a, b, []models.TieBreakKey{models.Solkoff}, DefaultConfig()), 0,
		"higher rating (b) should rank above a once score/head-to-head/tiebreaks tie")
}

func TestCompareNameIsFinalTiebreak(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 1800)
	b := mustPlayer(t, "b", "Zane", 1800)
	require.Greater(t, Compare(a, b, nil, DefaultConfig()), 0)
	require.Equal(t, 0, Compare(a, a, nil, DefaultConfig()))
}

func TestStandingsExcludesInactivePlayers(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	b := mustPlayer(t, "b", "Bob", 1900)
	b.IsActive = false

	ranked := Standings([]*models.Player{a, b}, nil, DefaultConfig())
	require.Len(t, ranked, 1)
	require.Equal(t, "a", ranked[0].ID)
}

func TestStandingsOrdersBestFirst(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 1900)
	b := mustPlayer(t, "b", "Bob", 2000)
	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.White))
	require.NoError(t, b.AppendRound(1, "a", false, 0.0, models.Black))

	ranked := Standings([]*models.Player{b, a}, nil, DefaultConfig())
	require.Equal(t, "a", ranked[0].ID)
}
