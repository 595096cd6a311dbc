// Package handler contient les handlers HTTP de l'API. Les lectures
// passent directement par le store, les mutations de scores et baselines
// par le ledger qui porte la politique.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Lucasbjorklund31/challengebot/internal/apperr"
	"github.com/Lucasbjorklund31/challengebot/internal/ledger"
)

var (
	led *ledger.Ledger
	loc *time.Location
)

// Init branche les dépendances partagées des handlers
func Init(l *ledger.Ledger, location *time.Location) {
	led = l
	loc = location
}

// now retourne l'heure courante dans le fuseau du bot
func now() time.Time {
	return time.Now().In(loc)
}

// pathID extrait l'identifiant numérique de l'URL
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid challenge id")
	}
	return id, nil
}
