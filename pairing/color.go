package pairing

import "github.com/dosada05/swiss-tournament-engine/models"

// direction collapses a ColorPreference down to the color it pushes
// toward (ColorNone for NoPreference), for the R1-R4 comparisons in
// spec.md §4.2.
func direction(pref models.ColorPreference) models.Color {
	switch pref {
	case models.MustWhite, models.PreferWhite:
		return models.White
	case models.MustBlack, models.PreferBlack:
		return models.Black
	default:
		return models.ColorNone
	}
}

// assignColors implements the R1-R5 rule table from spec.md §4.2
// verbatim, returning (whiteID, blackID).
func assignColors(p1, p2 *models.Player) (white, black string) {
	d1 := direction(p1.ColorPreference())
	d2 := direction(p2.ColorPreference())

	switch {
	case d1 == models.White && d2 != models.White: // R1
		return p1.ID, p2.ID
	case d1 == models.Black && d2 != models.Black: // R2
		return p2.ID, p1.ID
	case d2 == models.White && d1 != models.White: // R3
		return p2.ID, p1.ID
	case d2 == models.Black && d1 != models.Black: // R4
		return p1.ID, p2.ID
	}

	// R5: larger color balance takes Black; tie -> higher rating
	// takes White; further tie -> lexicographically earlier name
	// takes White.
	b1, b2 := p1.ColorBalance(), p2.ColorBalance()
	switch {
	case b1 > b2:
		return p2.ID, p1.ID
	case b2 > b1:
		return p1.ID, p2.ID
	}
	switch {
	case p1.Rating > p2.Rating:
		return p1.ID, p2.ID
	case p2.Rating > p1.Rating:
		return p2.ID, p1.ID
	}
	if p1.Name <= p2.Name {
		return p1.ID, p2.ID
	}
	return p2.ID, p1.ID
}

// colorConflictScore is the §4.2 step c scoring rule: +2 if both
// players share the same non-null color preference, 0 otherwise.
func colorConflictScore(p1, p2 *models.Player) int {
	pref1, pref2 := p1.ColorPreference(), p2.ColorPreference()
	if pref1 == models.NoPreference || pref2 == models.NoPreference {
		return 0
	}
	if pref1 == pref2 {
		return 2
	}
	return 0
}
