package store

import (
	"context"
	"fmt"

	"github.com/Lucasbjorklund31/challengebot/internal/database"
)

// HasFired indique si un événement de cycle de vie a déjà été émis pour ce
// challenge. Les appelants vérifient puis agissent; l'exécution du
// scheduler est mono-instance, c'est elle qui rend la séquence sûre
func HasFired(ctx context.Context, challengeID int64, eventKind string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM challenge_notifications
			WHERE challenge_id = $1 AND notification_type = $2
		)
	`, challengeID, eventKind).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not query notification marker: %w", err)
	}
	return exists, nil
}

// MarkFired enregistre l'émission d'un événement. Insert-if-absent sur la
// clé composite: ré-appeler avec la même clé est sans effet, et la
// contrainte d'unicité ferait arbitre si plusieurs instances couraient
func MarkFired(ctx context.Context, challengeID int64, eventKind string) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO challenge_notifications (challenge_id, notification_type)
		VALUES ($1, $2)
		ON CONFLICT (challenge_id, notification_type) DO NOTHING
	`, challengeID, eventKind)
	if err != nil {
		return fmt.Errorf("could not mark notification sent: %w", err)
	}
	return nil
}
