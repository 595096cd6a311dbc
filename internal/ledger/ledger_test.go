package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = time.FixedZone("UTC+2", 2*3600)

type fakeScore struct {
	userID string
	date   time.Time
	points int
}

// fakeStore est une implémentation mémoire du Store pour tester la
// politique du ledger sans base
type fakeStore struct {
	challenge   *model.Challenge
	scores      []fakeScore
	baselines   map[string]*model.BaselineRecord
	failReplace bool
	failInsert  bool
}

func newFakeStore(c *model.Challenge) *fakeStore {
	return &fakeStore{challenge: c, baselines: make(map[string]*model.BaselineRecord)}
}

func (f *fakeStore) GetChallengeByID(_ context.Context, id int64) (*model.Challenge, error) {
	if f.challenge != nil && f.challenge.ID == id {
		return f.challenge, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertScores(_ context.Context, userID string, _ int64, dates []time.Time, perDay int) error {
	if f.failInsert {
		return errors.New("insert failed")
	}
	for _, d := range dates {
		f.scores = append(f.scores, fakeScore{userID, d, perDay})
	}
	return nil
}

func (f *fakeStore) DeleteScores(_ context.Context, userID string, _ int64, dates []time.Time) (int64, error) {
	var kept []fakeScore
	var removed int64
	for _, s := range f.scores {
		match := s.userID == userID && containsDate(dates, s.date)
		if match {
			removed++
		} else {
			kept = append(kept, s)
		}
	}
	f.scores = kept
	return removed, nil
}

func (f *fakeStore) ReplaceScores(ctx context.Context, userID string, challengeID int64, dates []time.Time, perDay int) error {
	if f.failReplace {
		// Tout ou rien: un échec ne touche pas l'état
		return errors.New("replace failed")
	}
	if _, err := f.DeleteScores(ctx, userID, challengeID, dates); err != nil {
		return err
	}
	if perDay > 0 {
		return f.InsertScores(ctx, userID, challengeID, dates, perDay)
	}
	return nil
}

func (f *fakeStore) InsertBaseline(_ context.Context, userID string, challengeID int64, value float64) (bool, error) {
	if _, exists := f.baselines[userID]; exists {
		return false, nil
	}
	f.baselines[userID] = &model.BaselineRecord{
		UserID: userID, ChallengeID: challengeID,
		BaselineValue: value, CurrentValue: value,
	}
	return true, nil
}

func (f *fakeStore) GetBaseline(_ context.Context, userID string, _ int64) (*model.BaselineRecord, error) {
	return f.baselines[userID], nil
}

func (f *fakeStore) UpdateCurrentValue(_ context.Context, userID string, _ int64, value float64) (bool, error) {
	record, exists := f.baselines[userID]
	if !exists {
		return false, nil
	}
	record.CurrentValue = value
	return true, nil
}

func containsDate(dates []time.Time, d time.Time) bool {
	for _, x := range dates {
		if x.Equal(d) {
			return true
		}
	}
	return false
}

func (f *fakeStore) totalPoints(userID string) int {
	total := 0
	for _, s := range f.scores {
		if s.userID == userID {
			total += s.points
		}
	}
	return total
}

// Challenge points actif du 1 au 20 mars, "maintenant" le 10 mars
func activeChallenge() *model.Challenge {
	return &model.Challenge{
		ID:        1,
		Variant:   model.VariantPoints,
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2025, time.March, 20, 0, 0, 0, 0, loc),
		Status:    model.StatusActive,
	}
}

func changeChallenge() *model.Challenge {
	c := activeChallenge()
	c.Variant = model.VariantChange
	return c
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)
}

func TestAddScoresFloorDistribution(t *testing.T) {
	store := newFakeStore(activeChallenge())
	l := New(store, fixedNow)

	// T=10 sur N=3 jours: 3 par jour, 9 écrits, le reste 1 abandonné
	perDay, err := l.AddScores(context.Background(), "a", 1, []int{3, 4, 5}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, perDay)
	assert.Equal(t, 9, store.totalPoints("a"))
	assert.Len(t, store.scores, 3)
}

func TestAddScoresBounds(t *testing.T) {
	l := New(newFakeStore(activeChallenge()), fixedNow)
	ctx := context.Background()

	_, err := l.AddScores(ctx, "a", 1, []int{3}, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = l.AddScores(ctx, "a", 1, []int{3}, MaxTotalPoints+1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// 500 000 au total est permis, mais pas sur un seul jour
	_, err = l.AddScores(ctx, "a", 1, []int{3}, 500_000)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = l.AddScores(ctx, "a", 1, nil, 100)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Le même total réparti sur assez de jours passe
	perDay, err := l.AddScores(ctx, "a", 1, []int{1, 2, 3, 4, 5}, 500_000)
	require.NoError(t, err)
	assert.Equal(t, 100_000, perDay)
}

func TestMutationsRejectedOutsideActivePhases(t *testing.T) {
	ctx := context.Background()

	// Avant le début: upcoming
	l := New(newFakeStore(activeChallenge()), func() time.Time {
		return time.Date(2025, time.February, 20, 12, 0, 0, 0, loc)
	})
	_, err := l.AddScores(ctx, "a", 1, []int{3}, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindState))

	// Après la période de grâce: ended
	l = New(newFakeStore(activeChallenge()), func() time.Time {
		return time.Date(2025, time.March, 25, 12, 0, 0, 0, loc)
	})
	_, err = l.AddScores(ctx, "a", 1, []int{3}, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindState))
	_, err = l.RemoveScores(ctx, "a", 1, []int{3})
	assert.True(t, apperr.IsKind(err, apperr.KindState))
	_, err = l.EditScores(ctx, "a", 1, []int{3}, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindState))
}

func TestMutationsAllowedDuringGracePeriod(t *testing.T) {
	// Fin le 20 mars, le 21 est le jour de grâce
	store := newFakeStore(activeChallenge())
	l := New(store, func() time.Time {
		return time.Date(2025, time.March, 21, 10, 0, 0, 0, loc)
	})

	_, err := l.AddScores(context.Background(), "a", 1, []int{19}, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, store.totalPoints("a"))
}

func TestAddScoresUnknownChallenge(t *testing.T) {
	l := New(newFakeStore(activeChallenge()), fixedNow)
	_, err := l.AddScores(context.Background(), "a", 99, []int{3}, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestEditScoresReplaces(t *testing.T) {
	store := newFakeStore(activeChallenge())
	l := New(store, fixedNow)
	ctx := context.Background()

	_, err := l.AddScores(ctx, "a", 1, []int{3, 4}, 100)
	require.NoError(t, err)
	require.Equal(t, 100, store.totalPoints("a"))

	perDay, err := l.EditScores(ctx, "a", 1, []int{3, 4}, 60)
	require.NoError(t, err)
	assert.Equal(t, 30, perDay)
	assert.Equal(t, 60, store.totalPoints("a"))

	// Un nouveau total nul vaut suppression
	_, err = l.EditScores(ctx, "a", 1, []int{3, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, store.totalPoints("a"))
}

func TestEditScoresFailureLeavesStateIntact(t *testing.T) {
	store := newFakeStore(activeChallenge())
	l := New(store, fixedNow)
	ctx := context.Background()

	_, err := l.AddScores(ctx, "a", 1, []int{3, 4}, 100)
	require.NoError(t, err)

	store.failReplace = true
	_, err = l.EditScores(ctx, "a", 1, []int{3, 4}, 60)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindPersistence))
	// Rien de supprimé, rien de réinséré
	assert.Equal(t, 100, store.totalPoints("a"))
}

func TestRemoveScores(t *testing.T) {
	store := newFakeStore(activeChallenge())
	l := New(store, fixedNow)
	ctx := context.Background()

	_, err := l.AddScores(ctx, "a", 1, []int{3, 4, 5}, 30)
	require.NoError(t, err)

	removed, err := l.RemoveScores(ctx, "a", 1, []int{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Equal(t, 10, store.totalPoints("a"))
}

func TestSetBaselineFirstWriteWins(t *testing.T) {
	store := newFakeStore(changeChallenge())
	l := New(store, fixedNow)
	ctx := context.Background()

	inserted, err := l.SetBaseline(ctx, "a", 1, 80)
	require.NoError(t, err)
	assert.True(t, inserted)

	// La seconde écriture ne remplace pas la première
	inserted, err = l.SetBaseline(ctx, "a", 1, 90)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 80.0, store.baselines["a"].BaselineValue)
	assert.Equal(t, 80.0, store.baselines["a"].CurrentValue)
}

func TestSetBaselineRejectedOnPointsChallenge(t *testing.T) {
	l := New(newFakeStore(activeChallenge()), fixedNow)
	_, err := l.SetBaseline(context.Background(), "a", 1, 80)
	assert.True(t, apperr.IsKind(err, apperr.KindState))
}

func TestUpdateCurrentValue(t *testing.T) {
	store := newFakeStore(changeChallenge())
	l := New(store, fixedNow)
	ctx := context.Background()

	_, err := l.SetBaseline(ctx, "a", 1, 80)
	require.NoError(t, err)

	change, defined, err := l.UpdateCurrentValue(ctx, "a", 1, 100)
	require.NoError(t, err)
	assert.True(t, defined)
	assert.InDelta(t, 25.0, change, 1e-9)
	assert.Equal(t, 100.0, store.baselines["a"].CurrentValue)
}

func TestUpdateCurrentValueWithoutBaseline(t *testing.T) {
	l := New(newFakeStore(changeChallenge()), fixedNow)
	_, _, err := l.UpdateCurrentValue(context.Background(), "a", 1, 100)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestValueBounds(t *testing.T) {
	l := New(newFakeStore(changeChallenge()), fixedNow)
	ctx := context.Background()

	_, err := l.SetBaseline(ctx, "a", 1, MaxBaselineAbs+1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, _, err = l.UpdateCurrentValue(ctx, "a", 1, -(MaxBaselineAbs + 1))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
