package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

type adminInput struct {
	UserID string `json:"userId"`
}

// GetAdmins liste les administrateurs
func GetAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := store.ListAdmins(r.Context())
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not list admins"))
		return
	}
	utils.Success(w, admins)
}

// AddAdmin accorde le rôle admin à un utilisateur
func AddAdmin(w http.ResponseWriter, r *http.Request) {
	grantedBy, _ := middleware.GetUserID(r)

	var input adminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	if input.UserID == "" {
		utils.Fail(w, apperr.Validation("userId is required"))
		return
	}

	if err := store.AddAdmin(r.Context(), input.UserID, grantedBy); err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not add admin"))
		return
	}
	utils.Message(w, "admin added")
}

// RemoveAdmin retire le rôle admin
func RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	removed, err := store.RemoveAdmin(r.Context(), userID)
	if err != nil {
		utils.Fail(w, apperr.Persistence(err, "could not remove admin"))
		return
	}
	if !removed {
		utils.Fail(w, apperr.NotFound("admin not found"))
		return
	}
	utils.Message(w, "admin removed")
}
