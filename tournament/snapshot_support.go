package tournament

import "fmt"

// RegisterExisting adds an already-constructed player id to the
// registration-order list and advances the id sequence counter past it
// if it follows the "p<n>" shape AddPlayer generates, so future
// AddPlayer calls on a deserialized tournament never collide with a
// restored id. It does not insert into Players; the caller (the
// storage codec) has already done that.
func (t *Tournament) RegisterExisting(id string) {
	t.playerOrder = append(t.playerOrder, id)
	var n int
	if _, err := fmt.Sscanf(id, "p%d", &n); err == nil && n >= t.nextPlayerSeq {
		t.nextPlayerSeq = n
	}
}

// MarkAllRoundsScored recomputes the scored-round bookkeeping from
// recorded player history, for use right after deserializing a
// Tournament (the codec does not carry that bookkeeping directly).
func (t *Tournament) MarkAllRoundsScored() {
	for round := 1; round <= len(t.Rounds); round++ {
		if t.roundFullyScoredByHistory(round) {
			t.recordScored(round)
		}
	}
}

func (t *Tournament) roundFullyScoredByHistory(round int) bool {
	record := t.Rounds[round-1]
	if record.ByeID != "" {
		p, ok := t.Players[record.ByeID]
		if !ok || p.RoundsPlayed() < round {
			return false
		}
	}
	for _, pr := range record.Pairings {
		white, ok := t.Players[pr.WhiteID]
		if !ok || white.RoundsPlayed() < round {
			return false
		}
	}
	return true
}
