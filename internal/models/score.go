package model

import "time"

// Score est une mesure unitaire: plusieurs lignes peuvent exister pour le
// même (participant, date), le total est leur somme
type Score struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	ChallengeID int64     `json:"challengeId"`
	Date        time.Time `json:"date"` // date calendaire
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BaselineRecord est la ligne unique (participant, challenge) d'un
// challenge de type "change". La variation en % est toujours dérivée,
// jamais stockée
type BaselineRecord struct {
	UserID        string    `json:"userId"`
	ChallengeID   int64     `json:"challengeId"`
	BaselineValue float64   `json:"baselineValue"`
	CurrentValue  float64   `json:"currentValue"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// PercentChange retourne la variation en % et false si la baseline est
// nulle (variation indéfinie, exclue de tous les agrégats)
func (b BaselineRecord) PercentChange() (float64, bool) {
	if b.BaselineValue == 0 {
		return 0, false
	}
	change := (b.CurrentValue - b.BaselineValue) / abs(b.BaselineValue) * 100
	return change, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
