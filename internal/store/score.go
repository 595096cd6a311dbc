package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/database"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/scanner"
)

const scoreColumns = `id, user_id, challenge_id, date, points, created_at`

// InsertScores insère une ligne de score par date, dans une transaction
func InsertScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, date := range dates {
		_, err := tx.Exec(ctx, `
			INSERT INTO scores (user_id, challenge_id, date, points)
			VALUES ($1, $2, $3, $4)
		`, userID, challengeID, date, pointsPerDay)
		if err != nil {
			return fmt.Errorf("could not insert score: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteScores supprime toutes les lignes du participant pour les dates
// données et retourne le nombre de lignes supprimées
func DeleteScores(ctx context.Context, userID string, challengeID int64, dates []time.Time) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		DELETE FROM scores
		WHERE user_id = $1 AND challenge_id = $2 AND date = ANY($3)
	`, userID, challengeID, dates)
	if err != nil {
		return 0, fmt.Errorf("could not delete scores: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReplaceScores remplace atomiquement les scores du participant pour les
// dates données: suppression puis réinsertion dans la même transaction.
// Un échec à mi-chemin n'est jamais observable comme un état partiel
func ReplaceScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM scores
		WHERE user_id = $1 AND challenge_id = $2 AND date = ANY($3)
	`, userID, challengeID, dates)
	if err != nil {
		return fmt.Errorf("could not delete old scores: %w", err)
	}

	// Un total arrondi à zéro vaut suppression pure
	if pointsPerDay > 0 {
		for _, date := range dates {
			_, err := tx.Exec(ctx, `
				INSERT INTO scores (user_id, challenge_id, date, points)
				VALUES ($1, $2, $3, $4)
			`, userID, challengeID, date, pointsPerDay)
			if err != nil {
				return fmt.Errorf("could not reinsert score: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// ListScores retourne toutes les mesures brutes d'un challenge, dans
// l'ordre d'insertion (l'ordre naturel des lignes sert de départage stable)
func ListScores(ctx context.Context, challengeID int64) ([]model.Score, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM scores
		WHERE challenge_id = $1
		ORDER BY id
	`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("could not query scores: %w", err)
	}
	defer rows.Close()

	var scores []model.Score
	for rows.Next() {
		s, err := scanner.ScanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan score row: %w", err)
		}
		scores = append(scores, *s)
	}
	return scores, rows.Err()
}

// ListScoresBetween retourne les mesures d'un challenge dans une fenêtre
// de dates incluse (vues hebdomadaires)
func ListScoresBetween(ctx context.Context, challengeID int64, from, to time.Time) ([]model.Score, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM scores
		WHERE challenge_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY id
	`, challengeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("could not query scores window: %w", err)
	}
	defer rows.Close()

	var scores []model.Score
	for rows.Next() {
		s, err := scanner.ScanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan score row: %w", err)
		}
		scores = append(scores, *s)
	}
	return scores, rows.Err()
}
