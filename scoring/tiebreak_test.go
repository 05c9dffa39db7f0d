package scoring

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func mustPlayer(t *testing.T, id, name string, rating int) *models.Player {
	t.Helper()
	p, err := models.NewPlayer(id, name, rating)
	require.NoError(t, err)
	return p
}

func TestSolkoffSumsOpponentScores(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	b := mustPlayer(t, "b", "Bob", 1900)
	c := mustPlayer(t, "c", "Carol", 1800)

	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.White))
	require.NoError(t, a.AppendRound(2, "c", false, 1.0, models.Black))
	require.NoError(t, b.AppendRound(1, "a", false, 0.0, models.Black))
	require.NoError(t, b.AppendRound(2, "x", false, 1.0, models.White))
	require.NoError(t, c.AppendRound(1, "x", false, 0.0, models.Black))
	require.NoError(t, c.AppendRound(2, "a", false, 0.0, models.White))

	roster := Roster{"a": a, "b": b, "c": c}
	require.Equal(t, b.Score()+c.Score(), solkoff(a, roster))
}

func TestModifiedMedianDropsLowestWhenAboveHalf(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	b := mustPlayer(t, "b", "Bob", 1900)
	c := mustPlayer(t, "c", "Carol", 1800)
	d := mustPlayer(t, "d", "Dave", 1700)

	require.NoError(t, b.AppendRound(1, "a", false, 1.0, models.White))
	require.NoError(t, c.AppendRound(1, "a", false, 1.0, models.White))
	require.NoError(t, d.AppendRound(1, "a", false, 1.0, models.White))

	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.Black))
	require.NoError(t, a.AppendRound(2, "c", false, 1.0, models.Black))
	require.NoError(t, a.AppendRound(3, "d", false, 1.0, models.Black))

	roster := Roster{"a": a, "b": b, "c": c, "d": d}
	// opponent scores b=1, c=1, d=1; ownPlayed=3 > half=1.5 -> drop lowest -> 1+1.
	require.Equal(t, 2.0, modifiedMedian(a, roster, 1.0))
}

func TestModifiedMedianSingleOpponentReturnsItsScoreUnchanged(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	b := mustPlayer(t, "b", "Bob", 1900)
	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.White))
	require.NoError(t, b.AppendRound(1, "a", false, 0.0, models.Black))
	require.NoError(t, b.AppendRound(2, "x", false, 1.0, models.White))

	roster := Roster{"a": a, "b": b}
	require.Equal(t, b.Score(), modifiedMedian(a, roster, 1.0))
}

func TestCumulativeSumsRunningScores(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.White))
	require.NoError(t, a.AppendRound(2, "c", false, 0.5, models.Black))
	require.Equal(t, 2.5, cumulative(a))
}

func TestSonnenbornBergerWeightsDrawsHalf(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	b := mustPlayer(t, "b", "Bob", 1900)
	require.NoError(t, a.AppendRound(1, "b", false, 0.5, models.White))
	require.NoError(t, b.AppendRound(1, "a", false, 0.5, models.Black))
	require.NoError(t, b.AppendRound(2, "x", false, 1.0, models.White))

	roster := Roster{"a": a, "b": b}
	require.Equal(t, b.Score()/2, sonnenbornBerger(a, roster, 1.0, 0.5))
}

func TestMostBlacksCountsOnlyBlackGames(t *testing.T) {
	a := mustPlayer(t, "a", "Alice", 2000)
	require.NoError(t, a.AppendRound(1, "b", false, 1.0, models.Black))
	require.NoError(t, a.AppendRound(2, "c", false, 1.0, models.White))
	require.NoError(t, a.AppendRound(3, "", true, 1.0, models.ColorNone))
	require.Equal(t, 1.0, mostBlacks(a))
}
