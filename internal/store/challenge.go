// Package store regroupe tout l'accès SQL: challenges, scores, baselines,
// notifications et participants. La base est la seule source de vérité;
// aucune couche ne met le statut en cache entre deux appels.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/database"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/scanner"
	"github.com/jackc/pgx/v5"
)

const challengeColumns = `id, description, scoring_system, variant, start_date, end_date, status, created_by, created_at`

// GetCurrentChallenge retourne l'unique challenge dont le statut persisté
// est dans l'ensemble actif, ou nil s'il n'y en a aucun
func GetCurrentChallenge(ctx context.Context) (*model.Challenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE status = ANY($1)
		ORDER BY created_at DESC
		LIMIT 1
	`, model.ActiveStatuses)

	c, err := scanner.ScanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query current challenge: %w", err)
	}
	return c, nil
}

// GetLifecycleChallenge retourne le challenge que le scheduler doit
// réconcilier. L'ensemble inclut ended: un challenge dont la finalisation a
// échoué reste repris au tick suivant au lieu de rester bloqué
func GetLifecycleChallenge(ctx context.Context) (*model.Challenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE status = ANY($1)
		ORDER BY created_at DESC
		LIMIT 1
	`, append([]string{model.StatusEnded}, model.ActiveStatuses...))

	c, err := scanner.ScanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query lifecycle challenge: %w", err)
	}
	return c, nil
}

// GetChallengeByID retourne un challenge par son id, ou nil s'il n'existe pas
func GetChallengeByID(ctx context.Context, id int64) (*model.Challenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE id = $1
	`, id)

	c, err := scanner.ScanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query challenge %d: %w", id, err)
	}
	return c, nil
}

// ListPastChallenges retourne les challenges terminés, du plus récent au
// plus ancien
func ListPastChallenges(ctx context.Context) ([]model.Challenge, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE status IN ($1, $2)
		ORDER BY end_date DESC
	`, model.StatusEnded, model.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("could not query past challenges: %w", err)
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		c, err := scanner.ScanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan challenge row: %w", err)
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

// CreateChallenge insère un nouveau challenge et force la complétion de
// tout challenge encore dans l'ensemble actif, dans la même transaction.
// L'invariant "au plus un challenge courant" est garanti ici
func CreateChallenge(ctx context.Context, c *model.Challenge) (int64, error) {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE challenges SET status = $1 WHERE status = ANY($2)
	`, model.StatusCompleted, model.ActiveStatuses)
	if err != nil {
		return 0, fmt.Errorf("could not complete previous challenge: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO challenges (description, scoring_system, variant, start_date, end_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, c.Description, c.ScoringSystem, c.Variant, c.StartDate, c.EndDate, c.Status, c.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not insert challenge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("could not commit challenge creation: %w", err)
	}
	return id, nil
}

// UpdateChallengeStatus met à jour le cache de statut (pure mise à jour de
// donnée, pas un événement)
func UpdateChallengeStatus(ctx context.Context, id int64, newStatus string) error {
	_, err := database.DB.Exec(ctx, `
		UPDATE challenges SET status = $1 WHERE id = $2
	`, newStatus, id)
	if err != nil {
		return fmt.Errorf("could not update challenge status: %w", err)
	}
	return nil
}

// UpdateChallenge modifie les champs éditables d'un challenge. Les marqueurs
// de notification ne sont jamais réarmés par une édition
func UpdateChallenge(ctx context.Context, id int64, description, scoring string, startDate, endDate time.Time) error {
	tag, err := database.DB.Exec(ctx, `
		UPDATE challenges
		SET description = $1, scoring_system = $2, start_date = $3, end_date = $4
		WHERE id = $5
	`, description, scoring, startDate, endDate, id)
	if err != nil {
		return fmt.Errorf("could not update challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteChallenge supprime un challenge et toutes ses données associées
func DeleteChallenge(ctx context.Context, id int64) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range []string{
		`DELETE FROM scores WHERE challenge_id = $1`,
		`DELETE FROM baseline_values WHERE challenge_id = $1`,
		`DELETE FROM challenge_notifications WHERE challenge_id = $1`,
		`DELETE FROM challenges WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return fmt.Errorf("could not delete challenge %d: %w", id, err)
		}
	}

	return tx.Commit(ctx)
}

// FinalizeChallenge marque l'événement final_results comme émis et passe le
// challenge en completed, en une seule unité atomique: un échec à mi-chemin
// ne peut pas laisser l'un sans l'autre
func FinalizeChallenge(ctx context.Context, id int64) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO challenge_notifications (challenge_id, notification_type)
		VALUES ($1, $2)
		ON CONFLICT (challenge_id, notification_type) DO NOTHING
	`, id, model.EventFinalResults)
	if err != nil {
		return fmt.Errorf("could not mark final results sent: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE challenges SET status = $1 WHERE id = $2
	`, model.StatusCompleted, id)
	if err != nil {
		return fmt.Errorf("could not complete challenge: %w", err)
	}

	return tx.Commit(ctx)
}
