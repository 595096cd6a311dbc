package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/Lucasbjorklund31/challengebot/internal/handler"
	"github.com/Lucasbjorklund31/challengebot/internal/logger"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Identity)
	r.Use(middleware.LoggerMiddleware)

	userRoutes := r.PathPrefix("/").Subrouter()
	userRoutes.Use(middleware.RequireUser)

	adminRoutes := r.PathPrefix("/").Subrouter()
	adminRoutes.Use(middleware.RequireAdmin)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Challenges (lecture)
	r.HandleFunc("/challenges/current", handler.GetCurrentChallenge).Methods(http.MethodGet)
	r.HandleFunc("/challenges", handler.GetPastChallenges).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id:[0-9]+}", handler.GetChallengeByID).Methods(http.MethodGet)

	// Statistiques et classements
	r.HandleFunc("/challenges/{id:[0-9]+}/stats", handler.GetChallengeStats).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id:[0-9]+}/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id:[0-9]+}/changes", handler.GetChanges).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id:[0-9]+}/gains", handler.GetGains).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id:[0-9]+}/losses", handler.GetLosses).Methods(http.MethodGet)

	// Participants
	r.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	userRoutes.HandleFunc("/users", handler.RegisterUser).Methods(http.MethodPost)

	// Scores (challenge courant)
	userRoutes.HandleFunc("/scores", handler.AddScore).Methods(http.MethodPost)
	userRoutes.HandleFunc("/scores", handler.RemoveScore).Methods(http.MethodDelete)
	userRoutes.HandleFunc("/scores", handler.EditScore).Methods(http.MethodPut)

	// Baselines (challenges variation)
	userRoutes.HandleFunc("/baselines", handler.SetBaseline).Methods(http.MethodPost)
	userRoutes.HandleFunc("/baselines", handler.UpdateCurrentValue).Methods(http.MethodPut)

	// Cycle de vie (admin)
	adminRoutes.HandleFunc("/challenges", handler.CreateChallenge).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/challenges/{id:[0-9]+}", handler.UpdateChallenge).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/challenges/{id:[0-9]+}", handler.DeleteChallenge).Methods(http.MethodDelete)

	// Administration
	r.HandleFunc("/admins", handler.GetAdmins).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/admins", handler.AddAdmin).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/admins/{userID}", handler.RemoveAdmin).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
