package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lucasbjorklund31/challengebot/internal/database"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/scanner"
	"github.com/jackc/pgx/v5"
)

const baselineColumns = `user_id, challenge_id, baseline_value, current_value, last_updated`

// InsertBaseline pose la baseline d'un participant. Première écriture
// gagnante: une baseline déjà posée n'est jamais écrasée. Retourne false si
// la ligne existait déjà
func InsertBaseline(ctx context.Context, userID string, challengeID int64, value float64) (bool, error) {
	tag, err := database.DB.Exec(ctx, `
		INSERT INTO baseline_values (user_id, challenge_id, baseline_value, current_value)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id, challenge_id) DO NOTHING
	`, userID, challengeID, value)
	if err != nil {
		return false, fmt.Errorf("could not insert baseline: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetBaseline retourne la ligne baseline d'un participant, ou nil
func GetBaseline(ctx context.Context, userID string, challengeID int64) (*model.BaselineRecord, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+baselineColumns+`
		FROM baseline_values
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID)

	b, err := scanner.ScanBaseline(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query baseline: %w", err)
	}
	return b, nil
}

// UpdateCurrentValue met à jour la valeur courante d'un participant.
// Retourne false si aucune baseline n'existe
func UpdateCurrentValue(ctx context.Context, userID string, challengeID int64, value float64) (bool, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE baseline_values
		SET current_value = $1, last_updated = NOW()
		WHERE user_id = $2 AND challenge_id = $3
	`, value, userID, challengeID)
	if err != nil {
		return false, fmt.Errorf("could not update current value: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListBaselines retourne toutes les lignes baseline d'un challenge
func ListBaselines(ctx context.Context, challengeID int64) ([]model.BaselineRecord, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+baselineColumns+`
		FROM baseline_values
		WHERE challenge_id = $1
		ORDER BY user_id
	`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("could not query baselines: %w", err)
	}
	defer rows.Close()

	var baselines []model.BaselineRecord
	for rows.Next() {
		b, err := scanner.ScanBaseline(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan baseline row: %w", err)
		}
		baselines = append(baselines, *b)
	}
	return baselines, rows.Err()
}
