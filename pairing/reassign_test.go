package pairing

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func buildRound(pairs ...[2]string) models.RoundRecord {
	var record models.RoundRecord
	for _, pr := range pairs {
		record.Pairings = append(record.Pairings, models.Pairing{WhiteID: pr[0], BlackID: pr[1]})
	}
	return record
}

func TestReassignPairingsGeneralFourCycle(t *testing.T) {
	record := buildRound([2]string{"p1", "p2"}, [2]string{"p3", "p4"})

	updated, err := ReassignPairings(record, "p1", "p4")
	require.NoError(t, err)

	opp, white, ok := updated.OpponentOf("p1")
	require.True(t, ok)
	require.Equal(t, "p4", opp)
	require.True(t, white)

	opp, white, ok = updated.OpponentOf("p3")
	require.True(t, ok)
	require.Equal(t, "p2", opp)
	require.True(t, white, "p3 (Y) should keep White, since p2 (X) keeps the Black it held facing p1")
}

func TestReassignPairingsIntoBye(t *testing.T) {
	record := buildRound([2]string{"p1", "p2"})
	record.ByeID = "p3"

	updated, err := ReassignPairings(record, "p1", "p3")
	require.NoError(t, err)
	require.Equal(t, "p2", updated.ByeID, "p1's old opponent should become the new bye")

	opp, _, ok := updated.OpponentOf("p1")
	require.True(t, ok)
	require.Equal(t, "p3", opp)
}

func TestReassignPairingsFromBye(t *testing.T) {
	record := buildRound([2]string{"p2", "p3"})
	record.ByeID = "p1"

	updated, err := ReassignPairings(record, "p1", "p2")
	require.NoError(t, err)
	require.Equal(t, "p3", updated.ByeID, "p2's old opponent should become the new bye")

	opp, _, ok := updated.OpponentOf("p1")
	require.True(t, ok)
	require.Equal(t, "p2", opp)
}

func TestReassignPairingsRejectsSameOpponent(t *testing.T) {
	record := buildRound([2]string{"p1", "p2"})
	_, err := ReassignPairings(record, "p1", "p2")
	require.ErrorIs(t, err, ErrSameAsCurrent)
}

func TestReassignPairingsRejectsUnknownPlayer(t *testing.T) {
	record := buildRound([2]string{"p1", "p2"})
	_, err := ReassignPairings(record, "p1", "p99")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestReassignPairingsRejectsBothByes(t *testing.T) {
	empty := models.RoundRecord{ByeID: "p1"}
	_, err := ReassignPairings(empty, "p1", "p1")
	require.True(t, err == ErrPlayerNotFound || err == ErrAmbiguousBye)
}

func TestReassignPairingsDoesNotMutateInput(t *testing.T) {
	record := buildRound([2]string{"p1", "p2"}, [2]string{"p3", "p4"})
	original := append([]models.Pairing{}, record.Pairings...)

	_, err := ReassignPairings(record, "p1", "p4")
	require.NoError(t, err)
	require.Equal(t, original, record.Pairings, "ReassignPairings must not mutate its input record")
}
