package tournament

import "errors"

var (
	ErrNotFound             = errors.New("tournament or player not found")
	ErrUnknownPlayer        = errors.New("result references a player not in this tournament")
	ErrAlreadyRecorded      = errors.New("player already has a result entry for this round")
	ErrMismatchedPairing    = errors.New("white's recorded opponent for this round is not black")
	ErrInvalidState         = errors.New("round is already scored and cannot be amended")
	ErrRoundOutOfSequence   = errors.New("round number does not follow the current round")
	ErrNoCurrentRound       = errors.New("no round has been paired yet")
	ErrTiebreakOrderInvalid = errors.New("tiebreak_order must not contain duplicate keys")
	ErrMissingRoundHistory  = errors.New("player has a gap in recorded round history and cannot be scored for this round")
)
