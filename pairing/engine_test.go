package pairing

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T, id, name string, rating int) *models.Player {
	t.Helper()
	p, err := models.NewPlayer(id, name, rating)
	require.NoError(t, err)
	return p
}

func TestGenerateRoundFirstRoundSeedsTopHalfAgainstBottomHalf(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
		newTestPlayer(t, "p3", "Carol", 1800),
		newTestPlayer(t, "p4", "Dave", 1700),
	}

	result, err := GenerateRound(1, players, NewPairSet(), nil)
	require.NoError(t, err)
	require.False(t, result.Round.HasBye())
	require.Len(t, result.Round.Pairings, 2)

	want := map[string]string{"p1": "p3", "p2": "p4"}
	for _, pr := range result.Round.Pairings {
		require.Equal(t, want[pr.WhiteID], pr.BlackID, "expected top-half-vs-bottom-half seeding")
	}
}

func TestGenerateRoundOddCountAssignsByeToLowestEligible(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
		newTestPlayer(t, "p3", "Carol", 1800),
	}

	result, err := GenerateRound(1, players, NewPairSet(), nil)
	require.NoError(t, err)
	require.Equal(t, "p3", result.Round.ByeID, "expected the lowest-rated player to receive the bye")
	require.Len(t, result.Round.Pairings, 1)
}

func TestGenerateRoundInactivePlayersExcluded(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
	}
	players[1].IsActive = false

	result, err := GenerateRound(1, players, NewPairSet(), nil)
	require.NoError(t, err)
	require.Empty(t, result.Round.Pairings)
	require.Equal(t, "p1", result.Round.ByeID)
}

func TestGenerateRoundNeverRepeatsWithoutApproval(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
		newTestPlayer(t, "p3", "Carol", 1800),
		newTestPlayer(t, "p4", "Dave", 1700),
	}
	for _, p := range players {
		require.NoError(t, p.AppendRound(1, "", false, 1.0, models.White))
	}

	previous := NewPairSet()
	previous.Add("p1", "p2")
	previous.Add("p3", "p4")

	result, err := GenerateRound(2, players, previous, nil)
	require.NoError(t, err)
	for _, pr := range result.Round.Pairings {
		repeated := (pr.WhiteID == "p1" && pr.BlackID == "p2") || (pr.WhiteID == "p2" && pr.BlackID == "p1")
		require.False(t, repeated, "round 2 must not repeat p1 vs p2 while an alternative exists")
	}
}

func TestGenerateRoundForcedRepeatLeavesPlayerUnscheduled(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
	}
	for _, p := range players {
		require.NoError(t, p.AppendRound(1, "", false, 1.0, models.White))
	}
	previous := NewPairSet()
	previous.Add("p1", "p2")

	result, err := GenerateRound(2, players, previous, nil)
	require.NoError(t, err, "a forced repeat must surface as Unscheduled, not an error")
	require.Empty(t, result.Round.Pairings)
	require.Len(t, result.Unscheduled, 2)
}

func TestGenerateRoundAllowRepeatOverridesNeverRepeat(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
	}
	for _, p := range players {
		require.NoError(t, p.AppendRound(1, "", false, 1.0, models.White))
	}
	previous := NewPairSet()
	previous.Add("p1", "p2")

	result, err := GenerateRound(2, players, previous, func(a, b string) bool { return true })
	require.NoError(t, err)
	require.Len(t, result.Round.Pairings, 1)
	require.Empty(t, result.Unscheduled)
}

func TestGenerateRoundRecordsEveryEmittedPairIntoPreviousMatches(t *testing.T) {
	players := []*models.Player{
		newTestPlayer(t, "p1", "Alice", 2000),
		newTestPlayer(t, "p2", "Bob", 1900),
	}
	previous := NewPairSet()

	_, err := GenerateRound(1, players, previous, nil)
	require.NoError(t, err)
	require.True(t, previous.Contains("p1", "p2"))
}
