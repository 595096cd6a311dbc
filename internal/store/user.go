package store

import (
	"context"
	"fmt"

	"github.com/Lucasbjorklund31/challengebot/internal/database"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/scanner"
)

// UpsertParticipant enregistre ou renomme un participant
func UpsertParticipant(ctx context.Context, id, displayName string) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO users (id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name
	`, id, displayName)
	if err != nil {
		return fmt.Errorf("could not upsert participant: %w", err)
	}
	return nil
}

// ListParticipants retourne tous les participants enregistrés
func ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, display_name, registered_at
		FROM users
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query participants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		p, err := scanner.ScanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan participant row: %w", err)
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// DisplayNames retourne la table id → nom d'affichage pour le rendu des
// classements
func DisplayNames(ctx context.Context) (map[string]string, error) {
	rows, err := database.DB.Query(ctx, `SELECT id, display_name FROM users`)
	if err != nil {
		return nil, fmt.Errorf("could not query display names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("could not scan name row: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// IsAdmin teste le rôle persisté d'un utilisateur. Aucune identité n'est
// spéciale en dur: l'admin initial est inséré au démarrage comme les autres
func IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not query admin role: %w", err)
	}
	return exists, nil
}

// AddAdmin accorde le rôle admin (idempotent)
func AddAdmin(ctx context.Context, userID, addedBy string) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO admins (user_id, added_by)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, addedBy)
	if err != nil {
		return fmt.Errorf("could not add admin: %w", err)
	}
	return nil
}

// RemoveAdmin retire le rôle admin. Retourne false si l'utilisateur ne
// l'avait pas
func RemoveAdmin(ctx context.Context, userID string) (bool, error) {
	tag, err := database.DB.Exec(ctx, `DELETE FROM admins WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("could not remove admin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAdmins retourne tous les admins
func ListAdmins(ctx context.Context) ([]model.Admin, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT user_id, added_by, added_at
		FROM admins
		ORDER BY added_at
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query admins: %w", err)
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		a, err := scanner.ScanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan admin row: %w", err)
		}
		admins = append(admins, *a)
	}
	return admins, rows.Err()
}
