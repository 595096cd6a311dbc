package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/status"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// parseChallengeInput valide le payload de création/édition et retourne
// les dates parsées dans le fuseau du bot
func parseChallengeInput(input model.ChallengeInput) (time.Time, time.Time, error) {
	description := strings.TrimSpace(input.Description)
	if len(description) < 10 || len(description) > 500 {
		return time.Time{}, time.Time{}, apperr.Validation("description must be 10-500 characters")
	}
	scoring := strings.TrimSpace(input.ScoringSystem)
	if len(scoring) < 5 || len(scoring) > 200 {
		return time.Time{}, time.Time{}, apperr.Validation("scoring system must be 5-200 characters")
	}

	startDate, err := utils.ParseDate(input.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid start date, use DD/MM/YYYY")
	}
	endDate, err := utils.ParseDate(input.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid end date, use DD/MM/YYYY")
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, apperr.Validation("start date must be before end date")
	}
	return startDate, endDate, nil
}

// GetCurrentChallenge retourne le challenge courant avec son statut
// résolu à l'instant de la requête
func GetCurrentChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := store.GetCurrentChallenge(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load current challenge"))
		return
	}
	if challenge == nil {
		utils.Fail(w, apperr.NotFound("no challenge is currently running"))
		return
	}

	resolved, message := status.Resolve(now(), challenge.StartDate, challenge.EndDate)
	utils.Success(w, model.ChallengeView{
		Challenge:     *challenge,
		Status:        resolved,
		StatusMessage: message,
	})
}

// GetChallengeByID retourne un challenge par identifiant, courant ou passé
func GetChallengeByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	challenge, err := store.GetChallengeByID(r.Context(), id)
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not load challenge"))
		return
	}
	if challenge == nil {
		utils.Fail(w, apperr.NotFound("challenge not found"))
		return
	}
	utils.Success(w, challenge)
}

// GetPastChallenges liste les challenges terminés, le plus récent d'abord
func GetPastChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := store.ListPastChallenges(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not list past challenges"))
		return
	}
	utils.Success(w, challenges)
}

// CreateChallenge crée un nouveau challenge. Tout challenge encore dans
// l'ensemble courant est force-complété dans la même transaction: il n'y
// a jamais deux challenges courants
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input model.ChallengeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	startDate, endDate, err := parseChallengeInput(input)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	variant := input.Variant
	if variant == "" {
		variant = model.VariantPoints
	}
	if variant != model.VariantPoints && variant != model.VariantChange {
		utils.Fail(w, apperr.Validation("variant must be points or change"))
		return
	}

	resolved, _ := status.Resolve(now(), startDate, endDate)
	if resolved != model.StatusUpcoming && resolved != model.StatusActive {
		utils.Fail(w, apperr.Validation("end date cannot be in the past"))
		return
	}

	challenge := &model.Challenge{
		Description:   strings.TrimSpace(input.Description),
		ScoringSystem: strings.TrimSpace(input.ScoringSystem),
		Variant:       variant,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        resolved,
		CreatedBy:     userID,
	}

	id, err := store.CreateChallenge(r.Context(), challenge)
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not create challenge"))
		return
	}
	challenge.ID = id
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: challenge})
}

// UpdateChallenge édite description, barème et dates. Le statut affiché se
// réajuste tout seul à la prochaine résolution; les notifications déjà
// émises ne sont jamais réarmées
func UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	var input model.ChallengeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	startDate, endDate, err := parseChallengeInput(input)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	err = store.UpdateChallenge(r.Context(), id, strings.TrimSpace(input.Description), strings.TrimSpace(input.ScoringSystem), startDate, endDate)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(w, apperr.NotFound("challenge not found"))
		return
	}
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not update challenge"))
		return
	}
	utils.Message(w, "challenge updated")
}

// DeleteChallenge supprime un challenge avec ses scores, baselines et
// marqueurs de notification
func DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	if err := store.DeleteChallenge(r.Context(), id); err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not delete challenge"))
		return
	}
	utils.Message(w, "challenge deleted")
}
