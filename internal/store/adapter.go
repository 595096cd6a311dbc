package store

import (
	"context"
	"time"

	model "github.com/Lucasbjorklund31/challengebot/internal/models"
)

// PG expose les fonctions du package sous forme de valeur, pour satisfaire
// les interfaces consommatrices du ledger et du scheduler (testées avec
// des fakes mémoire)
type PG struct{}

func (PG) GetCurrentChallenge(ctx context.Context) (*model.Challenge, error) {
	return GetCurrentChallenge(ctx)
}

func (PG) GetLifecycleChallenge(ctx context.Context) (*model.Challenge, error) {
	return GetLifecycleChallenge(ctx)
}

func (PG) GetChallengeByID(ctx context.Context, id int64) (*model.Challenge, error) {
	return GetChallengeByID(ctx, id)
}

func (PG) UpdateChallengeStatus(ctx context.Context, id int64, newStatus string) error {
	return UpdateChallengeStatus(ctx, id, newStatus)
}

func (PG) FinalizeChallenge(ctx context.Context, id int64) error {
	return FinalizeChallenge(ctx, id)
}

func (PG) HasFired(ctx context.Context, challengeID int64, eventKind string) (bool, error) {
	return HasFired(ctx, challengeID, eventKind)
}

func (PG) MarkFired(ctx context.Context, challengeID int64, eventKind string) error {
	return MarkFired(ctx, challengeID, eventKind)
}

func (PG) InsertScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error {
	return InsertScores(ctx, userID, challengeID, dates, pointsPerDay)
}

func (PG) DeleteScores(ctx context.Context, userID string, challengeID int64, dates []time.Time) (int64, error) {
	return DeleteScores(ctx, userID, challengeID, dates)
}

func (PG) ReplaceScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error {
	return ReplaceScores(ctx, userID, challengeID, dates, pointsPerDay)
}

func (PG) ListScores(ctx context.Context, challengeID int64) ([]model.Score, error) {
	return ListScores(ctx, challengeID)
}

func (PG) ListBaselines(ctx context.Context, challengeID int64) ([]model.BaselineRecord, error) {
	return ListBaselines(ctx, challengeID)
}

func (PG) InsertBaseline(ctx context.Context, userID string, challengeID int64, value float64) (bool, error) {
	return InsertBaseline(ctx, userID, challengeID, value)
}

func (PG) GetBaseline(ctx context.Context, userID string, challengeID int64) (*model.BaselineRecord, error) {
	return GetBaseline(ctx, userID, challengeID)
}

func (PG) UpdateCurrentValue(ctx context.Context, userID string, challengeID int64, value float64) (bool, error) {
	return UpdateCurrentValue(ctx, userID, challengeID, value)
}

func (PG) DisplayNames(ctx context.Context) (map[string]string, error) {
	return DisplayNames(ctx)
}
