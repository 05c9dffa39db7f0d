package pairing

import "errors"

var (
	// ErrPairingInfeasible is returned when an odd remainder of active
	// players exists but no player in the remaining pool is eligible
	// for a bye (spec.md §4.2).
	ErrPairingInfeasible = errors.New("pairing infeasible: odd remainder with no bye-eligible player")

	// ErrRepeatPairingRequired names the case where a player can only
	// be paired by repeating a previously played pair. GenerateRound
	// does not return it: with no allow_repeat callback such players
	// come back in Result.Unscheduled. The HTTP transport's "ask"
	// policy reports it to the client.
	ErrRepeatPairingRequired = errors.New("pairing requires a repeat match but no allow_repeat callback was supplied")

	// ErrPlayerNotFound is returned by ReassignPairings when one of the
	// named ids has no pairing or bye entry in the given round.
	ErrPlayerNotFound = errors.New("player has no pairing or bye in this round")

	// ErrSameAsCurrent is returned by ReassignPairings when the
	// requested new opponent is already the player's current opponent.
	// It is informational, not a failure (spec.md §4.3).
	ErrSameAsCurrent = errors.New("player is already paired with the requested opponent")

	// ErrAmbiguousBye is returned when both reassignment participants
	// are currently the round's bye, which has no sensible resolution.
	ErrAmbiguousBye = errors.New("both reassignment participants are byes")
)
