package model

import "time"

// LeaderboardEntry est une ligne du classement points
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Rank     int    `json:"rank"`
	Points   int    `json:"points"`
}

// ChangeEntry est une ligne du classement variation
type ChangeEntry struct {
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	Baseline      float64 `json:"baseline"`
	Current       float64 `json:"current"`
	PercentChange float64 `json:"percentChange"`
}

// DailyRecord est le meilleur total (participant, jour)
type DailyRecord struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Date     time.Time `json:"date"`
	Points   int       `json:"points"`
}

// WeeklyRecord est le meilleur total hebdomadaire (semaines ISO, lundi-dimanche)
type WeeklyRecord struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Week     string `json:"week"` // clé année-semaine, ex "2025-W03"
	Points   int    `json:"points"`
}

// DayTotal est le jour le plus actif tous participants confondus
type DayTotal struct {
	Date   time.Time `json:"date"`
	Points int       `json:"points"`
}

// PointsStats regroupe les statistiques d'un challenge points
type PointsStats struct {
	Leaderboard        []LeaderboardEntry `json:"leaderboard"`
	TotalPoints        int                `json:"totalPoints"`
	AvgPerActivePlayer int                `json:"avgPerActivePlayer"` // joueurs à total <= 0 exclus
	HighestDaily       *DailyRecord       `json:"highestDaily,omitempty"`
	HighestWeekly      *WeeklyRecord      `json:"highestWeekly,omitempty"`
	MostActiveDay      *DayTotal          `json:"mostActiveDay,omitempty"`
}

// ChangeStats regroupe les statistiques d'un challenge variation.
// Les baselines nulles sont exclues de tout
type ChangeStats struct {
	Leaderboard   []ChangeEntry `json:"leaderboard"` // trié par |variation| décroissante
	TopGains      []ChangeEntry `json:"topGains"`    // max 3, current > baseline
	TopLosses     []ChangeEntry `json:"topLosses"`   // max 3, current < baseline
	AvgChange     float64       `json:"avgChange"`
	BiggestChange *ChangeEntry  `json:"biggestChange,omitempty"`
}

// ChallengeStats est le payload complet; un seul des deux blocs est
// renseigné selon la variante
type ChallengeStats struct {
	ChallengeID int64        `json:"challengeId"`
	Variant     string       `json:"variant"`
	Points      *PointsStats `json:"points,omitempty"`
	Change      *ChangeStats `json:"change,omitempty"`
}

// FinalResult est une ligne du podium de l'annonce finale
type FinalResult struct {
	UserID   string  `json:"userId"`
	UserName string  `json:"userName"`
	Points   int     `json:"points,omitempty"`
	Percent  float64 `json:"percent,omitempty"`
}

// FinalResults est le payload de l'annonce de fin de challenge
type FinalResults struct {
	Top3             []FinalResult `json:"top3"`
	ParticipantCount int           `json:"participantCount"`
	Stats            ChallengeStats `json:"stats"`
}
