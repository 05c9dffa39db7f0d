package pairing

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func TestAssignColorsHonorsMustWhiteOverMustBlack(t *testing.T) {
	p1 := newTestPlayer(t, "p1", "Alice", 2000)
	p2 := newTestPlayer(t, "p2", "Bob", 1900)

	require.NoError(t, p1.AppendRound(1, "x", false, 1.0, models.White))
	require.NoError(t, p1.AppendRound(2, "y", false, 1.0, models.White))
	require.NoError(t, p2.AppendRound(1, "x", false, 0.0, models.Black))
	require.NoError(t, p2.AppendRound(2, "y", false, 0.0, models.Black))

	white, black := assignColors(p1, p2)
	require.Equal(t, "p2", white)
	require.Equal(t, "p1", black)
}

func TestAssignColorsR5FallsBackToBalanceThenRatingThenName(t *testing.T) {
	p1 := newTestPlayer(t, "p1", "Alice", 2000)
	p2 := newTestPlayer(t, "p2", "Bob", 1800)
	require.NoError(t, p1.AppendRound(1, "x", false, 1.0, models.White))
	require.NoError(t, p1.AppendRound(2, "z", false, 1.0, models.White))
	require.NoError(t, p2.AppendRound(1, "y", false, 1.0, models.White))

	white, black := assignColors(p1, p2)
	require.Equal(t, "p2", white, "larger color balance (p1) must take Black")
	require.Equal(t, "p1", black)
}

func TestAssignColorsR5NoHistoryPrefersHigherRatingWhite(t *testing.T) {
	p1 := newTestPlayer(t, "p1", "Alice", 2000)
	p2 := newTestPlayer(t, "p2", "Bob", 1800)

	white, black := assignColors(p1, p2)
	require.Equal(t, "p1", white)
	require.Equal(t, "p2", black)
}

func TestColorConflictScorePenalizesSharedPreference(t *testing.T) {
	p1 := newTestPlayer(t, "p1", "Alice", 2000)
	p2 := newTestPlayer(t, "p2", "Bob", 1900)
	require.NoError(t, p1.AppendRound(1, "x", false, 1.0, models.White))
	require.NoError(t, p2.AppendRound(1, "y", false, 1.0, models.White))

	require.Equal(t, 2, colorConflictScore(p1, p2))
}
