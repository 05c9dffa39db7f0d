package pairing

import "github.com/dosada05/swiss-tournament-engine/models"

// slot locates a player's current assignment in a round: which
// pairing index they occupy and whether they were white, or that they
// were the round's bye.
type slot struct {
	pairingIdx int // -1 if this player was the bye
	wasWhite   bool
	opponentID string // "" when isBye
	isBye      bool
}

func locate(record models.RoundRecord, playerID string) (slot, bool) {
	if record.ByeID == playerID {
		return slot{pairingIdx: -1, isBye: true}, true
	}
	for i, pr := range record.Pairings {
		if pr.WhiteID == playerID {
			return slot{pairingIdx: i, wasWhite: true, opponentID: pr.BlackID}, true
		}
		if pr.BlackID == playerID {
			return slot{pairingIdx: i, wasWhite: false, opponentID: pr.WhiteID}, true
		}
	}
	return slot{}, false
}

// ReassignPairings implements the manual override in spec.md §4.3: a
// 4-cycle swap between a's pairing and newOpponent's pairing, with two
// bye special cases. It returns a new RoundRecord; record is not
// mutated in place.
func ReassignPairings(record models.RoundRecord, aID, newOpponentID string) (models.RoundRecord, error) {
	aSlot, aFound := locate(record, aID)
	newSlot, newFound := locate(record, newOpponentID)
	if !aFound || !newFound {
		return models.RoundRecord{}, ErrPlayerNotFound
	}

	if !aSlot.isBye && aSlot.opponentID == newOpponentID {
		return models.RoundRecord{}, ErrSameAsCurrent
	}
	if aSlot.isBye && newSlot.isBye {
		return models.RoundRecord{}, ErrAmbiguousBye
	}

	out := models.RoundRecord{
		Pairings: append([]models.Pairing{}, record.Pairings...),
		ByeID:    record.ByeID,
	}

	switch {
	case newSlot.isBye:
		// a's old opponent X becomes the new bye; newOpponent joins a.
		x := aSlot.opponentID
		out.Pairings[aSlot.pairingIdx] = pairingWithSlot(aID, newOpponentID, aSlot.wasWhite)
		out.ByeID = x

	case aSlot.isBye:
		// newOpponent's old opponent Y becomes the new bye; a joins
		// newOpponent, taking the slot newOpponent's old opponent
		// vacates (a has no prior color to preserve).
		y := newSlot.opponentID
		out.Pairings[newSlot.pairingIdx] = pairingWithSlot(newOpponentID, aID, newSlot.wasWhite)
		out.ByeID = y

	default:
		// General 4-cycle: (a,X) and (newOpponent,Y) become
		// (a,newOpponent) and (X,Y). a keeps its original color slot;
		// X keeps the color it held facing a, Y takes the opposite.
		x := aSlot.opponentID
		y := newSlot.opponentID
		out.Pairings[aSlot.pairingIdx] = pairingWithSlot(aID, newOpponentID, aSlot.wasWhite)
		out.Pairings[newSlot.pairingIdx] = pairingWithSlot(x, y, !aSlot.wasWhite)
	}

	return out, nil
}

// pairingWithSlot builds a Pairing with p in the white slot if
// pIsWhite, otherwise in the black slot alongside other.
func pairingWithSlot(p, other string, pIsWhite bool) models.Pairing {
	if pIsWhite {
		return models.Pairing{WhiteID: p, BlackID: other}
	}
	return models.Pairing{WhiteID: other, BlackID: p}
}
