package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = time.FixedZone("UTC+2", 2*3600)

type firedKey struct {
	challengeID int64
	kind        string
}

// fakeStore simule la persistance du cycle de vie en mémoire
type fakeStore struct {
	challenge    *model.Challenge
	fired        map[firedKey]bool
	scores       []model.Score
	baselines    []model.BaselineRecord
	names        map[string]string
	failStatus   bool
	failFinalize bool
	failMark     bool
}

func newFakeStore(c *model.Challenge) *fakeStore {
	return &fakeStore{
		challenge: c,
		fired:     make(map[firedKey]bool),
		names:     map[string]string{"a": "Anna", "b": "Bruno"},
	}
}

func (f *fakeStore) GetLifecycleChallenge(context.Context) (*model.Challenge, error) {
	if f.challenge == nil || f.challenge.Status == model.StatusCompleted {
		return nil, nil
	}
	return f.challenge, nil
}

func (f *fakeStore) UpdateChallengeStatus(_ context.Context, _ int64, newStatus string) error {
	if f.failStatus {
		return errors.New("status update failed")
	}
	f.challenge.Status = newStatus
	return nil
}

func (f *fakeStore) HasFired(_ context.Context, id int64, kind string) (bool, error) {
	return f.fired[firedKey{id, kind}], nil
}

func (f *fakeStore) MarkFired(_ context.Context, id int64, kind string) error {
	if f.failMark {
		return errors.New("mark failed")
	}
	f.fired[firedKey{id, kind}] = true
	return nil
}

func (f *fakeStore) FinalizeChallenge(_ context.Context, id int64) error {
	if f.failFinalize {
		return errors.New("finalize failed")
	}
	f.fired[firedKey{id, model.EventFinalResults}] = true
	f.challenge.Status = model.StatusCompleted
	return nil
}

func (f *fakeStore) ListScores(context.Context, int64) ([]model.Score, error) {
	return f.scores, nil
}

func (f *fakeStore) ListBaselines(context.Context, int64) ([]model.BaselineRecord, error) {
	return f.baselines, nil
}

func (f *fakeStore) DisplayNames(context.Context) (map[string]string, error) {
	return f.names, nil
}

// fakeNotifier capture les messages sortants
type fakeNotifier struct {
	sent []string
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	if f.fail {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, text)
	return nil
}

// Challenge points du 1 au 5 mars, créé upcoming
func testChallenge() *model.Challenge {
	return &model.Challenge{
		ID:            7,
		Description:   "March pushup challenge",
		ScoringSystem: "1 point per pushup",
		Variant:       model.VariantPoints,
		StartDate:     time.Date(2025, time.March, 1, 0, 0, 0, 0, loc),
		EndDate:       time.Date(2025, time.March, 5, 0, 0, 0, 0, loc),
		Status:        model.StatusUpcoming,
	}
}

func at(day, hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, day, hour, 0, 0, 0, loc)
	}
}

func TestTickNoChallenge(t *testing.T) {
	store := newFakeStore(nil)
	n := &fakeNotifier{}
	s := New(store, n, at(1, 12))

	require.NoError(t, s.Tick(context.Background()))
	assert.Empty(t, n.sent)
}

func TestTickBeforeStartDoesNothing(t *testing.T) {
	store := newFakeStore(testChallenge())
	n := &fakeNotifier{}
	s := New(store, n, func() time.Time {
		return time.Date(2025, time.February, 25, 12, 0, 0, 0, loc)
	})

	require.NoError(t, s.Tick(context.Background()))
	assert.Empty(t, n.sent)
	assert.Equal(t, model.StatusUpcoming, store.challenge.Status)
}

func TestStartEventFiresOnce(t *testing.T) {
	store := newFakeStore(testChallenge())
	n := &fakeNotifier{}
	s := New(store, n, at(1, 12))
	ctx := context.Background()

	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, model.StatusActive, store.challenge.Status)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "Challenge Started!")
	assert.Contains(t, n.sent[0], "March pushup challenge")
	assert.Contains(t, n.sent[0], "01/03/2025 to 05/03/2025")

	// Deux ticks successifs sans avancée du temps: un seul message par clé
	require.NoError(t, s.Tick(ctx))
	assert.Len(t, n.sent, 1)
}

func TestEndingEventFiresOnceInGrace(t *testing.T) {
	store := newFakeStore(testChallenge())
	store.fired[firedKey{7, model.EventStart}] = true
	store.challenge.Status = model.StatusActive
	n := &fakeNotifier{}
	s := New(store, n, at(6, 12)) // 6 mars = jour de grâce
	ctx := context.Background()

	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, model.StatusGracePeriod, store.challenge.Status)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "Challenge Ending Soon!")

	require.NoError(t, s.Tick(ctx))
	assert.Len(t, n.sent, 1)
}

func TestFinalResultsAndCompletion(t *testing.T) {
	store := newFakeStore(testChallenge())
	store.fired[firedKey{7, model.EventStart}] = true
	store.fired[firedKey{7, model.EventEnding}] = true
	store.challenge.Status = model.StatusGracePeriod
	store.scores = []model.Score{
		{UserID: "a", ChallengeID: 7, Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), Points: 100},
	}
	n := &fakeNotifier{}
	s := New(store, n, at(7, 0)) // après la période de grâce
	ctx := context.Background()

	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, model.StatusCompleted, store.challenge.Status)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "Final Results Are In!")
	assert.Contains(t, n.sent[0], "🥇 Anna: 100 points")
	assert.Contains(t, n.sent[0], "all 1 participants")

	// Un tick ultérieur ne fait plus rien: le challenge est terminal
	require.NoError(t, s.Tick(ctx))
	assert.Len(t, n.sent, 1)
}

func TestFinalResultsNoScores(t *testing.T) {
	store := newFakeStore(testChallenge())
	store.challenge.Status = model.StatusGracePeriod
	n := &fakeNotifier{}
	s := New(store, n, at(7, 0))

	require.NoError(t, s.Tick(context.Background()))
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "No scores were submitted")
	assert.Equal(t, model.StatusCompleted, store.challenge.Status)
}

// Scénario complet: challenge du 1 au 5, 100 points le jour 3. Premier
// tick dans la grâce le 6 → ending une seule fois; tick du 7 → résultats
// finaux et completed; tick suivant inerte
func TestEndToEndLifecycle(t *testing.T) {
	store := newFakeStore(testChallenge())
	n := &fakeNotifier{}
	ctx := context.Background()

	require.NoError(t, New(store, n, at(1, 0)).Tick(ctx))   // start
	require.NoError(t, New(store, n, at(3, 12)).Tick(ctx))  // actif, rien de neuf
	store.scores = append(store.scores, model.Score{
		UserID: "a", ChallengeID: 7,
		Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), Points: 100,
	})
	require.NoError(t, New(store, n, at(6, 0)).Tick(ctx))   // grâce: ending
	require.NoError(t, New(store, n, at(6, 18)).Tick(ctx))  // toujours la grâce, rien
	require.NoError(t, New(store, n, at(7, 0)).Tick(ctx))   // ended: résultats finaux
	require.NoError(t, New(store, n, at(7, 12)).Tick(ctx))  // terminal, inerte

	require.Len(t, n.sent, 3)
	assert.Contains(t, n.sent[0], "Challenge Started!")
	assert.Contains(t, n.sent[1], "Challenge Ending Soon!")
	assert.Contains(t, n.sent[2], "🥇 Anna: 100 points")
	assert.Equal(t, model.StatusCompleted, store.challenge.Status)
}

func TestStatusPersistFailureAbortsTick(t *testing.T) {
	store := newFakeStore(testChallenge())
	store.failStatus = true
	n := &fakeNotifier{}
	s := New(store, n, at(1, 12))

	err := s.Tick(context.Background())
	require.Error(t, err)
	// Rien d'émis: la passe s'est arrêtée avant les événements
	assert.Empty(t, n.sent)
	assert.False(t, store.fired[firedKey{7, model.EventStart}])
}

func TestDeliveryFailureLeavesMarkerUnset(t *testing.T) {
	store := newFakeStore(testChallenge())
	n := &fakeNotifier{fail: true}
	s := New(store, n, at(1, 12))
	ctx := context.Background()

	require.Error(t, s.Tick(ctx))
	assert.False(t, store.fired[firedKey{7, model.EventStart}])

	// La cadence suivante réussit et émet exactement une fois
	n.fail = false
	require.NoError(t, s.Tick(ctx))
	require.Len(t, n.sent, 1)
	assert.True(t, store.fired[firedKey{7, model.EventStart}])
}

func TestFinalizeFailureRetriedNextTick(t *testing.T) {
	store := newFakeStore(testChallenge())
	store.challenge.Status = model.StatusGracePeriod
	store.failFinalize = true
	n := &fakeNotifier{}
	s := New(store, n, at(7, 0))
	ctx := context.Background()

	require.Error(t, s.Tick(ctx))
	// Le statut ended est persisté mais le challenge reste repris au tick
	// suivant, jusqu'à finalisation
	assert.Equal(t, model.StatusEnded, store.challenge.Status)

	store.failFinalize = false
	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, model.StatusCompleted, store.challenge.Status)
	// L'annonce est repartie au tick réussi
	assert.Equal(t, 2, len(n.sent))
	assert.True(t, strings.Contains(n.sent[1], "Final Results"))
}
