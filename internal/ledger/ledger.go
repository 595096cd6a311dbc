// Package ledger est la surface de mutation des scores et baselines. Il
// applique la politique: phases de cycle de vie autorisées, plafonds de
// points, distribution entière sur les dates. Le stockage reste derrière
// une interface étroite.
package ledger

import (
	"context"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/status"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// Plafonds appliqués avant toute écriture
const (
	MaxTotalPoints  = 1_000_000
	MaxPointsPerDay = 100_000
	MaxBaselineAbs  = 1_000_000
)

// Store est la partie du stockage dont le ledger a besoin
type Store interface {
	GetChallengeByID(ctx context.Context, id int64) (*model.Challenge, error)
	InsertScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error
	DeleteScores(ctx context.Context, userID string, challengeID int64, dates []time.Time) (int64, error)
	ReplaceScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, pointsPerDay int) error
	InsertBaseline(ctx context.Context, userID string, challengeID int64, value float64) (bool, error)
	GetBaseline(ctx context.Context, userID string, challengeID int64) (*model.BaselineRecord, error)
	UpdateCurrentValue(ctx context.Context, userID string, challengeID int64, value float64) (bool, error)
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func New(store Store, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// requireOpen recharge le challenge et revérifie son statut résolu juste
// avant de muter: seuls active et grace_period acceptent des écritures, et
// un statut persisté périmé ne doit jamais être cru sur parole
func (l *Ledger) requireOpen(ctx context.Context, challengeID int64) (*model.Challenge, error) {
	challenge, err := l.store.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, apperr.Persistence(err, "could not load challenge")
	}
	if challenge == nil {
		return nil, apperr.NotFound("challenge not found")
	}

	resolved, message := status.Resolve(l.now(), challenge.StartDate, challenge.EndDate)
	if resolved != model.StatusActive && resolved != model.StatusGracePeriod {
		return nil, apperr.State("cannot submit scores right now. Challenge status: %s", message)
	}
	return challenge, nil
}

// AddScores distribue un total de points sur les jours donnés et insère
// une mesure par jour. La division est entière: le reste d'un total non
// divisible est abandonné, pas reporté. Retourne les points par jour
func (l *Ledger) AddScores(ctx context.Context, userID string, challengeID int64, days []int, totalPoints int) (int, error) {
	if len(days) == 0 {
		return 0, apperr.Validation("no dates given")
	}
	if totalPoints <= 0 {
		return 0, apperr.Validation("points must be positive")
	}
	if totalPoints > MaxTotalPoints {
		return 0, apperr.Validation("maximum %d total points allowed", MaxTotalPoints)
	}

	pointsPerDay := totalPoints / len(days)
	if pointsPerDay > MaxPointsPerDay {
		return 0, apperr.Validation("maximum %d points per day allowed", MaxPointsPerDay)
	}

	if _, err := l.requireOpen(ctx, challengeID); err != nil {
		return 0, err
	}

	dates := utils.DaysToDates(l.now(), days)
	if err := l.store.InsertScores(ctx, userID, challengeID, dates, pointsPerDay); err != nil {
		return 0, apperr.Persistence(err, "could not add scores")
	}
	return pointsPerDay, nil
}

// RemoveScores supprime toutes les mesures du participant pour les jours
// donnés. Retourne le nombre de lignes supprimées
func (l *Ledger) RemoveScores(ctx context.Context, userID string, challengeID int64, days []int) (int64, error) {
	if len(days) == 0 {
		return 0, apperr.Validation("no dates given")
	}

	if _, err := l.requireOpen(ctx, challengeID); err != nil {
		return 0, err
	}

	dates := utils.DaysToDates(l.now(), days)
	removed, err := l.store.DeleteScores(ctx, userID, challengeID, dates)
	if err != nil {
		return 0, apperr.Persistence(err, "could not remove scores")
	}
	return removed, nil
}

// EditScores remplace les mesures du jeu de dates par le nouveau total,
// redistribué en division entière. Suppression et réinsertion forment une
// unité atomique côté store. Un nouveau total nul vaut suppression
func (l *Ledger) EditScores(ctx context.Context, userID string, challengeID int64, days []int, newTotal int) (int, error) {
	if len(days) == 0 {
		return 0, apperr.Validation("no dates given")
	}
	if newTotal < 0 {
		return 0, apperr.Validation("points cannot be negative")
	}
	if newTotal > MaxTotalPoints {
		return 0, apperr.Validation("maximum %d total points allowed", MaxTotalPoints)
	}

	pointsPerDay := newTotal / len(days)
	if pointsPerDay > MaxPointsPerDay {
		return 0, apperr.Validation("maximum %d points per day allowed", MaxPointsPerDay)
	}

	if _, err := l.requireOpen(ctx, challengeID); err != nil {
		return 0, err
	}

	dates := utils.DaysToDates(l.now(), days)
	if err := l.store.ReplaceScores(ctx, userID, challengeID, dates, pointsPerDay); err != nil {
		return 0, apperr.Persistence(err, "could not edit scores")
	}
	return pointsPerDay, nil
}

// SetBaseline pose la valeur de départ d'un participant (challenges
// variation). Première écriture gagnante: retourne false si une baseline
// existait déjà
func (l *Ledger) SetBaseline(ctx context.Context, userID string, challengeID int64, value float64) (bool, error) {
	if value > MaxBaselineAbs || value < -MaxBaselineAbs {
		return false, apperr.Validation("value seems too large")
	}

	challenge, err := l.requireOpen(ctx, challengeID)
	if err != nil {
		return false, err
	}
	if challenge.Variant != model.VariantChange {
		return false, apperr.State("baselines only apply to change challenges")
	}

	inserted, err := l.store.InsertBaseline(ctx, userID, challengeID, value)
	if err != nil {
		return false, apperr.Persistence(err, "could not set baseline")
	}
	return inserted, nil
}

// UpdateCurrentValue met à jour la valeur courante et retourne la
// variation dérivée pour affichage (définie seulement si la baseline est
// non nulle)
func (l *Ledger) UpdateCurrentValue(ctx context.Context, userID string, challengeID int64, value float64) (float64, bool, error) {
	if value > MaxBaselineAbs || value < -MaxBaselineAbs {
		return 0, false, apperr.Validation("value seems too large")
	}

	challenge, err := l.requireOpen(ctx, challengeID)
	if err != nil {
		return 0, false, err
	}
	if challenge.Variant != model.VariantChange {
		return 0, false, apperr.State("current values only apply to change challenges")
	}

	updated, err := l.store.UpdateCurrentValue(ctx, userID, challengeID, value)
	if err != nil {
		return 0, false, apperr.Persistence(err, "could not update current value")
	}
	if !updated {
		return 0, false, apperr.NotFound("no baseline set yet, use set baseline first")
	}

	record, err := l.store.GetBaseline(ctx, userID, challengeID)
	if err != nil {
		return 0, false, apperr.Persistence(err, "could not reload baseline")
	}
	change, defined := record.PercentChange()
	return change, defined, nil
}
