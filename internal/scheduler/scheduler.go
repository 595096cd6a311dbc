// Package scheduler réconcilie le statut persisté avec l'horloge et émet
// chaque événement de cycle de vie au plus une fois. Il tourne sur une
// cadence cron fixe; chaque tick est idempotent, donc relançable sans
// risque après un échec.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/logger"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/notifier"
	"github.com/Lucasbjorklund31/challengebot/internal/stats"
	"github.com/Lucasbjorklund31/challengebot/internal/status"
	"github.com/robfig/cron/v3"
)

// Store est la partie du stockage dont le scheduler a besoin. Les marqueurs
// de notification passent aussi par ici (check-then-act, sûr car une seule
// instance de scheduler tourne à la fois)
type Store interface {
	// GetLifecycleChallenge charge le challenge à réconcilier, y compris un
	// challenge déjà passé en ended dont la finalisation a échoué au tick
	// précédent
	GetLifecycleChallenge(ctx context.Context) (*model.Challenge, error)
	UpdateChallengeStatus(ctx context.Context, id int64, newStatus string) error
	HasFired(ctx context.Context, challengeID int64, eventKind string) (bool, error)
	MarkFired(ctx context.Context, challengeID int64, eventKind string) error
	FinalizeChallenge(ctx context.Context, id int64) error
	ListScores(ctx context.Context, challengeID int64) ([]model.Score, error)
	ListBaselines(ctx context.Context, challengeID int64) ([]model.BaselineRecord, error)
	DisplayNames(ctx context.Context) (map[string]string, error)
}

type Scheduler struct {
	store    Store
	notifier notifier.Notifier
	now      func() time.Time
}

func New(store Store, n notifier.Notifier, now func() time.Time) *Scheduler {
	return &Scheduler{store: store, notifier: n, now: now}
}

// Start programme les ticks selon l'expression cron donnée, évaluée dans
// le fuseau fixe du service. Le cron retourné est déjà démarré
func (s *Scheduler) Start(spec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		defer func() {
			// Un tick ne doit jamais faire tomber le processus
			if r := recover(); r != nil {
				logger.Error("lifecycle tick panicked: %v", r)
			}
		}()
		if err := s.Tick(context.Background()); err != nil {
			logger.Error("lifecycle tick failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid notify cron %q: %w", spec, err)
	}
	c.Start()
	logger.Success("Lifecycle scheduler started (%s, %s)", spec, loc)
	return c, nil
}

// Tick exécute une passe de réconciliation: recalcul du statut, mise à
// jour du cache persisté, puis émission des événements non encore émis.
// Tout échec de persistance interrompt la passe; la cadence suivante
// repart d'un état correct
func (s *Scheduler) Tick(ctx context.Context) error {
	challenge, err := s.store.GetLifecycleChallenge(ctx)
	if err != nil {
		return fmt.Errorf("load current challenge: %w", err)
	}
	if challenge == nil {
		// Aucun challenge à réconcilier
		return nil
	}

	resolved, _ := status.Resolve(s.now(), challenge.StartDate, challenge.EndDate)

	if resolved != challenge.Status {
		if err := s.store.UpdateChallengeStatus(ctx, challenge.ID, resolved); err != nil {
			return fmt.Errorf("reconcile status: %w", err)
		}
		logger.Info("Challenge %d status: %s → %s", challenge.ID, challenge.Status, resolved)
	}

	switch resolved {
	case model.StatusActive:
		return s.fireOnce(ctx, challenge, model.EventStart, func() (string, error) {
			return StartMessage(challenge), nil
		})
	case model.StatusGracePeriod:
		return s.fireOnce(ctx, challenge, model.EventEnding, func() (string, error) {
			return EndingMessage(challenge), nil
		})
	case model.StatusEnded:
		return s.finalize(ctx, challenge)
	}
	return nil
}

// fireOnce émet un événement si son marqueur n'existe pas encore, puis le
// pose. MarkFired est un insert-if-absent: le rappeler est sans effet
func (s *Scheduler) fireOnce(ctx context.Context, challenge *model.Challenge, kind string, build func() (string, error)) error {
	fired, err := s.store.HasFired(ctx, challenge.ID, kind)
	if err != nil {
		return fmt.Errorf("check %s marker: %w", kind, err)
	}
	if fired {
		return nil
	}

	message, err := build()
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, message); err != nil {
		// Pas de marqueur posé: la cadence suivante retentera
		return fmt.Errorf("send %s notification: %w", kind, err)
	}
	if err := s.store.MarkFired(ctx, challenge.ID, kind); err != nil {
		return fmt.Errorf("mark %s sent: %w", kind, err)
	}
	logger.Success("Challenge %d: %s notification sent", challenge.ID, kind)
	return nil
}

// finalize calcule les résultats finaux, les annonce, puis pose le
// marqueur et passe le challenge en completed dans une même unité atomique
func (s *Scheduler) finalize(ctx context.Context, challenge *model.Challenge) error {
	fired, err := s.store.HasFired(ctx, challenge.ID, model.EventFinalResults)
	if err != nil {
		return fmt.Errorf("check final results marker: %w", err)
	}
	if fired {
		return nil
	}

	scores, err := s.store.ListScores(ctx, challenge.ID)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	baselines, err := s.store.ListBaselines(ctx, challenge.ID)
	if err != nil {
		return fmt.Errorf("load baselines: %w", err)
	}
	names, err := s.store.DisplayNames(ctx)
	if err != nil {
		return fmt.Errorf("load display names: %w", err)
	}

	final := stats.BuildFinalResults(challenge, scores, baselines, names)
	if err := s.notifier.Send(ctx, FinalResultsMessage(challenge, final)); err != nil {
		return fmt.Errorf("send final results: %w", err)
	}

	if err := s.store.FinalizeChallenge(ctx, challenge.ID); err != nil {
		return fmt.Errorf("finalize challenge: %w", err)
	}
	logger.Success("Challenge %d completed, final results announced", challenge.ID)
	return nil
}
