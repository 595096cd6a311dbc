package handler

import (
	"net/http"

	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// RootHandler liste les endpoints de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]interface{}{
		"service": "challengebot",
		"endpoints": map[string]string{
			"GET /health":                       "health check",
			"GET /challenges/current":           "current challenge with resolved status",
			"GET /challenges":                   "past challenges",
			"GET /challenges/{id}":              "challenge by id",
			"GET /challenges/{id}/stats":        "full statistics",
			"GET /challenges/{id}/leaderboard":  "leaderboard (?week=current|last)",
			"GET /challenges/{id}/changes":      "change leaderboard",
			"GET /challenges/{id}/gains":        "biggest gains",
			"GET /challenges/{id}/losses":       "biggest losses",
			"GET /users":                        "registered participants",
			"GET /admins":                       "admins",
			"POST /users":                       "register display name",
			"POST /scores":                      "add scores (days, points)",
			"DELETE /scores":                    "remove scores (days)",
			"PUT /scores":                       "edit scores (days, points)",
			"POST /baselines":                   "set baseline value",
			"PUT /baselines":                    "update current value",
			"POST /challenges":                  "create challenge (admin)",
			"PUT /challenges/{id}":              "edit challenge (admin)",
			"DELETE /challenges/{id}":           "delete challenge (admin)",
			"POST /admins":                      "add admin (admin)",
			"DELETE /admins/{userID}":           "remove admin (admin)",
		},
	})
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
