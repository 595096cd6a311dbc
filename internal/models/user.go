package model

import "time"

// Participant est une identité opaque fournie par la couche d'identité
// externe, avec un nom d'affichage pour le rendu
type Participant struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Admin est un rôle persisté explicitement; le premier admin est inséré
// au démarrage depuis la configuration, jamais codé en dur
type Admin struct {
	UserID  string    `json:"userId"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}
