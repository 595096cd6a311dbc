package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

type registerInput struct {
	DisplayName string `json:"displayName"`
}

// RegisterUser enregistre ou met à jour le nom d'affichage du participant
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	name := strings.TrimSpace(input.DisplayName)
	if name == "" || len(name) > 32 {
		utils.Fail(w, apperr.Validation("display name must be 1-32 characters"))
		return
	}

	if err := store.UpsertParticipant(r.Context(), userID, name); err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not register user"))
		return
	}
	utils.Message(w, fmt.Sprintf("registered as %s", name))
}

// GetUsers liste les participants enregistrés
func GetUsers(w http.ResponseWriter, r *http.Request) {
	participants, err := store.ListParticipants(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not list users"))
		return
	}
	utils.Success(w, participants)
}
