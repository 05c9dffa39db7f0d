package models

import "errors"

// Sentinel errors shared by the Player record and every engine package
// built on top of it (pairing, scoring, tournament). Each is returned
// verbatim, never wrapped away, so callers can compare with errors.Is.
var (
	ErrInvalidRoundIndex = errors.New("round index is out of sequence for this player")
	ErrEmptyName         = errors.New("player name must not be empty")
	ErrRatingOutOfRange  = errors.New("player rating must be in [0, 3500]")
)
