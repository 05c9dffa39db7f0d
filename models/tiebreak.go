package models

import "fmt"

// TieBreakKey identifies one of the standard Swiss tie-break metrics
// from spec.md §4.4. Larger values are always better.
type TieBreakKey int

const (
	Solkoff TieBreakKey = iota
	Median
	Cumulative
	CumulativeOpp
	SonnenbornBerger
	MostBlacks
	HeadToHead
)

func (k TieBreakKey) String() string {
	switch k {
	case Solkoff:
		return "SOLKOFF"
	case Median:
		return "MEDIAN"
	case Cumulative:
		return "CUMULATIVE"
	case CumulativeOpp:
		return "CUMULATIVE_OPP"
	case SonnenbornBerger:
		return "SONNENBORN_BERGER"
	case MostBlacks:
		return "MOST_BLACKS"
	case HeadToHead:
		return "HEAD_TO_HEAD"
	default:
		return "UNKNOWN"
	}
}

// ParseTieBreakKey resolves the §6 persisted string form of a
// tie-break key back to its typed constant.
func ParseTieBreakKey(s string) (TieBreakKey, error) {
	for _, k := range []TieBreakKey{Solkoff, Median, Cumulative, CumulativeOpp, SonnenbornBerger, MostBlacks, HeadToHead} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unrecognized tiebreak key %q", s)
}

// DefaultTiebreakOrder matches what most Swiss arbiters reach for first:
// Modified Median, then Solkoff, then Sonnenborn-Berger.
func DefaultTiebreakOrder() []TieBreakKey {
	return []TieBreakKey{Median, Solkoff, SonnenbornBerger}
}
