package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

type baselineInput struct {
	Value float64 `json:"value"`
}

// SetBaseline enregistre la valeur de départ du participant sur le
// challenge courant. Première écriture gagnante: une baseline existante
// n'est jamais écrasée
func SetBaseline(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input baselineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	challenge, err := currentChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	inserted, err := led.SetBaseline(r.Context(), userID, challenge.ID, input.Value)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	if !inserted {
		utils.Message(w, "baseline already set, it cannot be changed")
		return
	}
	utils.Message(w, fmt.Sprintf("baseline set to %.2f", input.Value))
}

// UpdateCurrentValue met à jour la valeur courante et retourne la
// variation dérivée
func UpdateCurrentValue(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var input baselineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, apperr.Validation("invalid request body"))
		return
	}

	challenge, err := currentChallenge(r)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	change, defined, err := led.UpdateCurrentValue(r.Context(), userID, challenge.ID, input.Value)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	if !defined {
		utils.Message(w, fmt.Sprintf("current value updated to %.2f", input.Value))
		return
	}
	utils.Message(w, fmt.Sprintf("current value updated to %.2f (%+.1f%% from baseline)", input.Value, change))
}
