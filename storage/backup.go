package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/dosada05/swiss-tournament-engine/tournament"
)

// BackupUploader writes a point-in-time Snapshot of a tournament to
// object storage for disaster recovery, independent of the Postgres
// row (SPEC_FULL.md §4.8). It writes through a FileUploader (the
// Cloudflare R2 adapter wired in cmd/main.go).
type BackupUploader struct {
	uploader FileUploader
}

func NewBackupUploader(uploader FileUploader) *BackupUploader {
	return &BackupUploader{uploader: uploader}
}

// Key returns the object key a given tournament/round backup is stored
// under: tournaments/{id}/round-{n}.json.
func Key(tournamentID string, round int) string {
	return fmt.Sprintf("tournaments/%s/round-%d.json", tournamentID, round)
}

// BackupRound snapshots t and uploads it under Key(tournamentID,
// round). Callers typically invoke this right after a successful
// PairNextRound or RecordResults.
func (b *BackupUploader) BackupRound(ctx context.Context, tournamentID string, round int, t *tournament.Tournament) (*UploadResult, error) {
	blob, err := Encode(t).Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot for backup (tournament %s, round %d): %w", tournamentID, round, err)
	}

	result, err := b.uploader.Upload(ctx, Key(tournamentID, round), "application/json", strings.NewReader(string(blob)))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot backup (tournament %s, round %d): %w", tournamentID, round, err)
	}
	return result, nil
}
