package handler

import (
	"net/http"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/stats"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// loadChallenge charge un challenge par id d'URL, NotFound s'il n'existe pas
func loadChallenge(r *http.Request) (*model.Challenge, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	challenge, err := store.GetChallengeByID(r.Context(), id)
	if err != nil {
		return nil, apperr.Persistence(err, "could not load challenge")
	}
	if challenge == nil {
		return nil, apperr.NotFound("challenge not found")
	}
	return challenge, nil
}

// GetLeaderboard retourne le classement d'un challenge. Points: somme par
// participant, ?week=current|last restreint aux scores de la semaine ISO.
// Variation: classement par variation absolue
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	challenge, err := loadChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	names, err := store.DisplayNames(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load display names"))
		return
	}

	if challenge.Variant == model.VariantChange {
		baselines, err := store.ListBaselines(r.Context(), challenge.ID)
		if err != nil {
			utils.Fail(w, apperr.Persistence(err, "could not load baselines"))
			return
		}
		utils.Success(w, stats.BuildChangeStats(baselines, names).Leaderboard)
		return
	}

	var scores []model.Score
	switch r.URL.Query().Get("week") {
	case "":
		scores, err = store.ListScores(r.Context(), challenge.ID)
	case "current":
		monday, sunday := utils.WeekWindow(now(), 0)
		scores, err = store.ListScoresBetween(r.Context(), challenge.ID, monday, sunday)
	case "last":
		monday, sunday := utils.WeekWindow(now(), 1)
		scores, err = store.ListScoresBetween(r.Context(), challenge.ID, monday, sunday)
	default:
		utils.Fail(w, apperr.Validation("week must be current or last"))
		return
	}
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load scores"))
		return
	}

	utils.Success(w, stats.PointsLeaderboard(scores, names))
}

// GetChallengeStats retourne les statistiques complètes selon la variante
func GetChallengeStats(w http.ResponseWriter, r *http.Request) {
	challenge, err := loadChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	names, err := store.DisplayNames(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load display names"))
		return
	}

	scores, err := store.ListScores(r.Context(), challenge.ID)
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load scores"))
		return
	}
	baselines, err := store.ListBaselines(r.Context(), challenge.ID)
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load baselines"))
		return
	}

	utils.Success(w, stats.BuildChallengeStats(challenge, scores, baselines, names))
}

// changeBaselines charge les baselines d'un challenge variation, erreur
// d'état pour un challenge points
func changeBaselines(r *http.Request) ([]model.BaselineRecord, map[string]string, error) {
	challenge, err := loadChallenge(r)
	if err != nil {
		return nil, nil, err
	}
	if challenge.Variant != model.VariantChange {
		return nil, nil, apperr.State("this leaderboard only applies to change challenges")
	}

	baselines, err := store.ListBaselines(r.Context(), challenge.ID)
	if err != nil {
		return nil, nil, apperr.Persistence(err, "could not load baselines")
	}
	names, err := store.DisplayNames(r.Context())
	if err != nil {
		return nil, nil, apperr.Persistence(err, "could not load display names")
	}
	return baselines, names, nil
}

// GetChanges retourne le classement par variation absolue décroissante
func GetChanges(w http.ResponseWriter, r *http.Request) {
	baselines, names, err := changeBaselines(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, stats.BuildChangeStats(baselines, names).Leaderboard)
}

// GetGains retourne les plus fortes hausses
func GetGains(w http.ResponseWriter, r *http.Request) {
	baselines, names, err := changeBaselines(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, stats.GainsLeaderboard(baselines, names))
}

// GetLosses retourne les plus fortes baisses
func GetLosses(w http.ResponseWriter, r *http.Request) {
	baselines, names, err := changeBaselines(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, stats.LossesLeaderboard(baselines, names))
}
