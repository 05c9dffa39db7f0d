package tournament

import (
	"testing"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/stretchr/testify/require"
)

func newTestTournament(t *testing.T, numPlayers, numRounds int) *Tournament {
	t.Helper()
	tr, err := NewTournament("Club Championship", numRounds, nil, DefaultConfig())
	require.NoError(t, err)
	for i := 0; i < numPlayers; i++ {
		_, err := tr.AddPlayer(string(rune('A'+i))+"-Player", 2000-i*10)
		require.NoError(t, err)
	}
	return tr
}

func TestNewTournamentRejectsDuplicateTiebreakKeys(t *testing.T) {
	_, err := NewTournament("x", 3, []models.TieBreakKey{models.Solkoff, models.Solkoff}, DefaultConfig())
	require.ErrorIs(t, err, ErrTiebreakOrderInvalid)
}

func TestNewTournamentDefaultsTiebreakOrder(t *testing.T) {
	tr, err := NewTournament("x", 3, nil, DefaultConfig())
	require.NoError(t, err)
	require.NotEmpty(t, tr.TiebreakOrder)
}

func TestAddPlayerAssignsSequentialIDs(t *testing.T) {
	tr := newTestTournament(t, 0, 3)
	id1, err := tr.AddPlayer("Alice", 1900)
	require.NoError(t, err)
	id2, err := tr.AddPlayer("Bob", 1800)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}

func TestWithdrawAndReactivateRoundTrip(t *testing.T) {
	tr := newTestTournament(t, 2, 3)
	id := tr.playerOrder[0]

	require.NoError(t, tr.Withdraw(id))
	require.False(t, tr.Players[id].IsActive)

	require.NoError(t, tr.Reactivate(id))
	require.True(t, tr.Players[id].IsActive)
}

func TestPairNextRoundRejectsOutOfSequenceRound(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	_, err := tr.PairNextRound(2, nil)
	require.ErrorIs(t, err, ErrRoundOutOfSequence)
}

func TestPairNextRoundAdvancesCurrentRound(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	_, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, tr.CurrentRound)
	require.Len(t, tr.Rounds, 1)
}

func TestPreviewRoundDoesNotMutateState(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	before := tr.PreviousMatches.Len()

	_, err := tr.PreviewRound(1)
	require.NoError(t, err)
	require.Equal(t, 0, tr.CurrentRound)
	require.Empty(t, tr.Rounds)
	require.Equal(t, before, tr.PreviousMatches.Len())
}

func resultsForRound(record models.RoundRecord, whiteScore float64) []ResultEntry {
	out := make([]ResultEntry, 0, len(record.Pairings))
	for _, pr := range record.Pairings {
		out = append(out, ResultEntry{WhiteID: pr.WhiteID, BlackID: pr.BlackID, WhiteScore: whiteScore})
	}
	return out
}

func TestRecordResultsAppliesAutomaticByeScore(t *testing.T) {
	tr := newTestTournament(t, 3, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)

	_, err = tr.RecordResults(1, resultsForRound(result.Round, 1.0))
	require.NoError(t, err)

	bye := tr.Players[result.Round.ByeID]
	require.Equal(t, 1, bye.RoundsPlayed())
	require.Equal(t, tr.Config.ByeScore, bye.Score())
}

func TestRecordResultsRejectsUnknownPlayer(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	entries := resultsForRound(result.Round, 1.0)
	entries[0].WhiteID = "ghost"

	_, err = tr.RecordResults(1, entries)
	require.Error(t, err)
}

func TestRecordResultsRejectsMismatchedPairing(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	entries := resultsForRound(result.Round, 1.0)
	require.GreaterOrEqual(t, len(entries), 2)
	entries[0].BlackID, entries[1].BlackID = entries[1].BlackID, entries[0].BlackID

	_, err = tr.RecordResults(1, entries)
	require.Error(t, err)
}

func TestRecordResultsIsAtomicAcrossTheBatch(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	entries := resultsForRound(result.Round, 1.0)
	entries = append(entries, ResultEntry{WhiteID: "ghost", BlackID: "also-ghost", WhiteScore: 1.0})

	_, err = tr.RecordResults(1, entries)
	require.Error(t, err)
	for _, pr := range result.Round.Pairings {
		require.Equal(t, 0, tr.Players[pr.WhiteID].RoundsPlayed(), "a rejected batch must not apply partial results")
	}
}

func TestRecordResultsWarnsOnOmittedPair(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	entries := resultsForRound(result.Round, 1.0)
	entries = entries[:len(entries)-1]

	warnings, err := tr.RecordResults(1, entries)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
}

func TestReassignRejectsAfterRoundIsScored(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	_, err = tr.RecordResults(1, resultsForRound(result.Round, 1.0))
	require.NoError(t, err)

	a, b := result.Round.Pairings[0].WhiteID, result.Round.Pairings[1].WhiteID
	err = tr.Reassign(1, a, b)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestReassignUpdatesPreviousMatches(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)

	a := result.Round.Pairings[0].WhiteID
	newOpp := result.Round.Pairings[1].WhiteID
	require.NoError(t, tr.Reassign(1, a, newOpp))
	require.True(t, tr.PreviousMatches.Contains(a, newOpp))
}

func TestStandingsRanksHigherScoreFirst(t *testing.T) {
	tr := newTestTournament(t, 4, 3)
	result, err := tr.PairNextRound(1, nil)
	require.NoError(t, err)
	_, err = tr.RecordResults(1, resultsForRound(result.Round, 1.0))
	require.NoError(t, err)

	ranked := tr.Standings()
	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].Score(), ranked[i].Score())
	}
}
