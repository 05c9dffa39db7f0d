package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// newTournamentID generates an opaque id for a newly created
// tournament. The engine itself is storage-agnostic (spec.md never
// assigns tournament ids, only player ids); the transport layer owns
// this scheme since it is the layer that needs a stable key to route
// requests and repository rows by.
func newTournamentID() (string, error) {
	return newOpaqueID("t_")
}

// newOrganizerID generates an opaque id for a newly registered
// organizer, using the same scheme as newTournamentID.
func newOrganizerID() (string, error) {
	return newOpaqueID("o_")
}

func newOpaqueID(prefix string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return prefix + hex.EncodeToString(buf), nil
}
