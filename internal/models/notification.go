package model

import "time"

// Événements de cycle de vie, chacun émis au plus une fois par challenge
const (
	EventStart        = "start"
	EventEnding       = "ending"
	EventFinalResults = "final_results"
)

// NotificationRecord marque un événement comme émis. L'existence de la
// ligne fait foi; jamais supprimée
type NotificationRecord struct {
	ChallengeID int64     `json:"challengeId"`
	EventKind   string    `json:"eventKind"`
	SentAt      time.Time `json:"sentAt"`
}
