package model

import "time"

// Statuts de cycle de vie d'un challenge
const (
	StatusUpcoming    = "upcoming"
	StatusActive      = "active"
	StatusGracePeriod = "grace_period"
	StatusEnded       = "ended"
	StatusCompleted   = "completed"
)

// Variantes de challenge
const (
	VariantPoints = "points" // classement par somme de points
	VariantChange = "change" // classement par variation en % depuis une baseline
)

// ActiveStatuses regroupe les statuts pour lesquels un challenge est
// considéré comme "courant" (un seul challenge à la fois dans cet ensemble)
var ActiveStatuses = []string{StatusActive, StatusUpcoming, StatusGracePeriod}

type Challenge struct {
	ID            int64     `json:"id"`
	Description   string    `json:"description"`
	ScoringSystem string    `json:"scoringSystem"`
	Variant       string    `json:"variant"`
	StartDate     time.Time `json:"startDate"` // date calendaire, minuit
	EndDate       time.Time `json:"endDate"`   // inclusive jusqu'à 23:59:59
	Status        string    `json:"status"`    // cache du statut dérivé, réconcilié par le scheduler
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ChallengeView est la réponse "challenge courant": le record persisté
// plus le statut résolu à l'instant de la requête
type ChallengeView struct {
	Challenge     Challenge `json:"challenge"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"statusMessage"`
}

// ChallengeInput est le payload de création/édition d'un challenge
type ChallengeInput struct {
	Description   string `json:"description"`
	ScoringSystem string `json:"scoringSystem"`
	Variant       string `json:"variant"`
	StartDate     string `json:"startDate"` // format JJ/MM/AAAA
	EndDate       string `json:"endDate"`
}
