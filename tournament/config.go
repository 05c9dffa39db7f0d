package tournament

import "github.com/dosada05/swiss-tournament-engine/scoring"

// Config carries the tournament-wide constants spec.md §6 names as
// defaults, made explicit and overridable per the Open Question
// decisions recorded in SPEC_FULL.md.
type Config struct {
	WinScore  float64
	DrawScore float64
	LossScore float64
	ByeScore  float64

	// InactiveByeScore is what a withdrawn player records if selected
	// as the round's bye (still flips HasReceivedBye). spec.md leaves
	// this "implementers should make it configurable"; default 0.0.
	InactiveByeScore float64
}

// DefaultConfig matches spec.md §6's stated constants.
func DefaultConfig() Config {
	return Config{
		WinScore:         1.0,
		DrawScore:        0.5,
		LossScore:        0.0,
		ByeScore:         1.0,
		InactiveByeScore: 0.0,
	}
}

func (c Config) scoringConfig() scoring.Config {
	return scoring.Config{WinScore: c.WinScore, DrawScore: c.DrawScore}
}
