package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lucasbjorklund31/challengebot/internal/store"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// Context keys
type contextKey string

const userContextKey = contextKey("userID")

// Identity extrait l'identifiant opaque du participant depuis le header
// X-User-ID. La couche d'identité amont (passerelle de messagerie) est de
// confiance: le cœur ne revalide pas l'identité, seulement les politiques
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejette les requêtes sans identité
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetUserID(r); err != nil {
			utils.Error(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin vérifie le rôle persisté avant toute opération
// administrative de cycle de vie
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		isAdmin, err := store.IsAdmin(r.Context(), userID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not check admin role")
			return
		}
		if !isAdmin {
			utils.Error(w, http.StatusForbidden, "this operation is for admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID récupère l'identifiant du participant depuis le contexte
func GetUserID(r *http.Request) (string, error) {
	userID, ok := r.Context().Value(userContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}
