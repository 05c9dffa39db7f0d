package tournament

import (
	"fmt"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/dosada05/swiss-tournament-engine/pairing"
)

// PairNextRound generates and appends the pairings for roundNumber,
// which must be exactly CurrentRound+1. allowRepeat is forwarded to
// the Pairing Engine unchanged; it may be nil.
func (t *Tournament) PairNextRound(roundNumber int, allowRepeat pairing.AllowRepeatFunc) (pairing.Result, error) {
	if roundNumber != t.CurrentRound+1 {
		return pairing.Result{}, ErrRoundOutOfSequence
	}

	result, err := pairing.GenerateRound(roundNumber, t.orderedPlayers(), t.PreviousMatches, allowRepeat)
	if err != nil {
		return pairing.Result{}, err
	}

	t.Rounds = append(t.Rounds, result.Round)
	t.CurrentRound = roundNumber
	return result, nil
}

// PreviewRound runs the pairing algorithm for roundNumber against a
// clone of previous_matches, without committing anything to the
// tournament, so a caller can inspect whether any player would be left
// unscheduled before deciding on a repeat-approval policy (see the HTTP
// transport's "ask" allow-repeat mode).
func (t *Tournament) PreviewRound(roundNumber int) (pairing.Result, error) {
	if roundNumber != t.CurrentRound+1 {
		return pairing.Result{}, ErrRoundOutOfSequence
	}
	// GenerateRound records floaters in each player's FloatHistory;
	// trim those entries back off so the preview leaves players as
	// they were.
	players := t.orderedPlayers()
	floatLens := make([]int, len(players))
	for i, p := range players {
		floatLens[i] = len(p.FloatHistory)
	}
	result, err := pairing.GenerateRound(roundNumber, players, t.PreviousMatches.Clone(), nil)
	for i, p := range players {
		p.FloatHistory = p.FloatHistory[:floatLens[i]]
	}
	return result, err
}

// Reassign implements the manual pairing override of spec.md §4.3 for
// round roundIndex (1-based), which must not yet have recorded
// results.
func (t *Tournament) Reassign(roundIndex int, playerAID, newOpponentID string) error {
	if roundIndex < 1 || roundIndex > len(t.Rounds) {
		return ErrNotFound
	}
	if t.roundScored(roundIndex) {
		return ErrInvalidState
	}

	old := t.Rounds[roundIndex-1]
	updated, err := pairing.ReassignPairings(old, playerAID, newOpponentID)
	if err != nil {
		return err
	}

	t.Rounds[roundIndex-1] = updated
	for _, pr := range newPairings(old, updated) {
		t.PreviousMatches.Add(pr.WhiteID, pr.BlackID)
	}
	t.ManualOverrides[roundIndex] = append(t.ManualOverrides[roundIndex], ManualOverride{
		Round:         roundIndex,
		PlayerAID:     playerAID,
		NewOpponentID: newOpponentID,
	})
	return nil
}

// newPairings returns the pairings present in updated but absent from
// old, by unordered {white,black} comparison, so Reassign's side
// effect on previous_matches covers both (a, new_opponent) and (X, Y)
// without the caller having to track X and Y itself.
func newPairings(old, updated models.RoundRecord) []models.Pairing {
	seen := make(map[[2]string]struct{}, len(old.Pairings))
	for _, pr := range old.Pairings {
		seen[unordered(pr)] = struct{}{}
	}
	var out []models.Pairing
	for _, pr := range updated.Pairings {
		if _, ok := seen[unordered(pr)]; !ok {
			out = append(out, pr)
		}
	}
	return out
}

func unordered(pr models.Pairing) [2]string {
	if pr.WhiteID <= pr.BlackID {
		return [2]string{pr.WhiteID, pr.BlackID}
	}
	return [2]string{pr.BlackID, pr.WhiteID}
}

// roundScored reports whether RecordResults has been applied to
// roundIndex.
func (t *Tournament) roundScored(roundIndex int) bool {
	return t.scoredRounds[roundIndex]
}

// ResultEntry is one reported game outcome: white_score is from
// White's perspective and must be one of Config.WinScore,
// Config.DrawScore, or Config.LossScore.
type ResultEntry struct {
	WhiteID    string
	BlackID    string
	WhiteScore float64
}

// RecordResults implements spec.md §4.5: it validates the full batch
// before applying any of it (atomicity across the batch), then applies
// every entry plus the round's automatic bye result. It returns
// non-fatal warnings alongside a nil error; a non-nil error means
// nothing in the batch was applied.
func (t *Tournament) RecordResults(roundIndex int, results []ResultEntry) (warnings []string, err error) {
	if roundIndex < 1 || roundIndex > len(t.Rounds) {
		return nil, ErrNotFound
	}
	record := t.Rounds[roundIndex-1]

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		white, ok := t.Players[r.WhiteID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, r.WhiteID)
		}
		black, ok := t.Players[r.BlackID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, r.BlackID)
		}
		if err := checkRoundContiguity(white, roundIndex); err != nil {
			return nil, err
		}
		if err := checkRoundContiguity(black, roundIndex); err != nil {
			return nil, err
		}
		opp, wasWhite, ok := record.OpponentOf(r.WhiteID)
		if !ok || !wasWhite || opp != r.BlackID {
			return nil, fmt.Errorf("%w: %s/%s", ErrMismatchedPairing, r.WhiteID, r.BlackID)
		}
		if seen[r.WhiteID] {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRecorded, r.WhiteID)
		}
		seen[r.WhiteID] = true
		if r.WhiteScore != t.Config.WinScore && r.WhiteScore != t.Config.DrawScore && r.WhiteScore != t.Config.LossScore {
			return nil, fmt.Errorf("white_score %v is not a valid result value", r.WhiteScore)
		}
	}

	// The automatic bye, like every entry in results above, must clear
	// the same contiguity check before anything is mutated: a bye
	// recipient with a history gap (e.g. added mid-tournament) fails
	// the whole batch here rather than silently losing its bye entry
	// once the apply loop below reaches it.
	var byePlayer *models.Player
	if record.ByeID != "" {
		if bye, ok := t.Players[record.ByeID]; ok {
			if err := checkRoundContiguity(bye, roundIndex); err != nil {
				return nil, err
			}
			byePlayer = bye
		}
	}

	for _, r := range results {
		white, black := t.Players[r.WhiteID], t.Players[r.BlackID]
		if !white.IsActive {
			warnings = append(warnings, fmt.Sprintf("recording result for inactive player %s", white.ID))
		}
		if !black.IsActive {
			warnings = append(warnings, fmt.Sprintf("recording result for inactive player %s", black.ID))
		}

		blackScore := t.Config.WinScore + t.Config.LossScore - r.WhiteScore
		if r.WhiteScore == t.Config.DrawScore {
			blackScore = t.Config.DrawScore
		}

		if err := white.AppendRound(roundIndex, r.BlackID, false, r.WhiteScore, models.White); err != nil {
			return nil, fmt.Errorf("failed to record result for %s: %w", r.WhiteID, err)
		}
		if err := black.AppendRound(roundIndex, r.WhiteID, false, blackScore, models.Black); err != nil {
			return nil, fmt.Errorf("failed to record result for %s: %w", r.BlackID, err)
		}
	}

	if byePlayer != nil {
		score := t.Config.ByeScore
		if !byePlayer.IsActive {
			score = t.Config.InactiveByeScore
		}
		if err := byePlayer.AppendRound(roundIndex, "", true, score, models.ColorNone); err != nil {
			return nil, fmt.Errorf("failed to record bye for %s: %w", record.ByeID, err)
		}
	}

	for _, pr := range record.Pairings {
		white := t.Players[pr.WhiteID]
		if white == nil || white.RoundsPlayed() < roundIndex {
			warnings = append(warnings, fmt.Sprintf("no result recorded for scheduled pair %s/%s", pr.WhiteID, pr.BlackID))
		}
	}

	t.recordScored(roundIndex)
	return warnings, nil
}

// checkRoundContiguity rejects recording roundIndex for p before
// AppendRound ever sees it: p must have played exactly the roundIndex-1
// rounds before this one, no more (ErrAlreadyRecorded — a duplicate
// submission, or a repeat automatic-bye application) and no fewer
// (ErrMissingRoundHistory — a gap left by a player added or reactivated
// after round 1, since AddPlayer and Reactivate impose no round guard
// of their own). Running this for every participant, including the
// round's automatic bye, before any player history is mutated is what
// keeps RecordResults atomic: AppendRound's own contiguity guard should
// never fire once this check has passed.
func checkRoundContiguity(p *models.Player, roundIndex int) error {
	switch played := p.RoundsPlayed(); {
	case played >= roundIndex:
		return fmt.Errorf("%w: %s", ErrAlreadyRecorded, p.ID)
	case played < roundIndex-1:
		return fmt.Errorf("%w: %s has played %d of the %d rounds preceding round %d", ErrMissingRoundHistory, p.ID, played, roundIndex-1, roundIndex)
	default:
		return nil
	}
}

// scoredRounds tracks which round indices have had RecordResults
// applied, independent of per-player history length, so Reassign can
// reject amendments to a round that is mid-scoring as well as one
// fully scored.
func (t *Tournament) recordScored(roundIndex int) {
	if t.scoredRounds == nil {
		t.scoredRounds = make(map[int]bool)
	}
	t.scoredRounds[roundIndex] = true
}
