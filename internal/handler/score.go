package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// scoreInput est le payload des mutations de scores. Days accepte un jour
// ("15") ou une plage ("6-10") du mois courant
type scoreInput struct {
	Days   string `json:"days"`
	Points int    `json:"points"`
}

// currentChallenge charge le challenge courant, erreur d'état s'il n'y en
// a pas
func currentChallenge(r *http.Request) (*model.Challenge, error) {
	challenge, err := store.GetCurrentChallenge(r.Context())
	if err != nil {
		return nil, apperr.Persistence(err, "could not load current challenge")
	}
	if challenge == nil {
		return nil, apperr.State("no challenge is currently running")
	}
	return challenge, nil
}

// AddScore distribue un total de points sur les jours donnés du challenge
// courant
func AddScore(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input scoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	days := utils.ParseDayInput(input.Days)
	if days == nil {
		utils.Fail(w, apperr.Validation("invalid days, use a day (15) or a range (6-10)"))
		return
	}

	challenge, err := currentChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	pointsPerDay, err := led.AddScores(r.Context(), userID, challenge.ID, days, input.Points)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Message(w, fmt.Sprintf("added %d points per day over %d days", pointsPerDay, len(days)))
}

// RemoveScore supprime les mesures du participant pour les jours donnés
func RemoveScore(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input scoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	days := utils.ParseDayInput(input.Days)
	if days == nil {
		utils.Fail(w, apperr.Validation("invalid days, use a day (15) or a range (6-10)"))
		return
	}

	challenge, err := currentChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	removed, err := led.RemoveScores(r.Context(), userID, challenge.ID, days)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	if removed == 0 {
		utils.Message(w, "no scores found for those days")
		return
	}
	utils.Message(w, fmt.Sprintf("removed %d score entries", removed))
}

// EditScore remplace les mesures des jours donnés par un nouveau total
// redistribué. Un total nul vaut suppression
func EditScore(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input scoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	days := utils.ParseDayInput(input.Days)
	if days == nil {
		utils.Fail(w, apperr.Validation("invalid days, use a day (15) or a range (6-10)"))
		return
	}

	challenge, err := currentChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	pointsPerDay, err := led.EditScores(r.Context(), userID, challenge.ID, days, input.Points)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	if pointsPerDay == 0 && input.Points == 0 {
		utils.Message(w, "scores cleared for those days")
		return
	}
	utils.Message(w, fmt.Sprintf("scores updated to %d points per day", pointsPerDay))
}
