// Package stats réduit les mesures brutes d'un challenge en classements et
// statistiques dérivées. Aucune I/O: le store fournit les lignes, tout le
// calcul se fait ici, testable sans base.
package stats

import (
	"math"
	"sort"
	"time"

	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// changeLeaderboardLimit borne l'affichage du classement variation
const changeLeaderboardLimit = 20

// displayName retombe sur l'identifiant quand le participant n'a pas
// enregistré de nom
func displayName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok {
		return name
	}
	return userID
}

// PointsLeaderboard agrège les points par participant et trie par total
// décroissant. Les égalités gardent l'ordre naturel des lignes
// (somme puis tri, jamais dernière-écriture-gagnante)
func PointsLeaderboard(scores []model.Score, names map[string]string) []model.LeaderboardEntry {
	totals := make(map[string]int)
	var order []string
	for _, s := range scores {
		if _, seen := totals[s.UserID]; !seen {
			order = append(order, s.UserID)
		}
		totals[s.UserID] += s.Points
	}

	entries := make([]model.LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		entries = append(entries, model.LeaderboardEntry{
			UserID:   userID,
			UserName: displayName(names, userID),
			Points:   totals[userID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// BuildPointsStats calcule l'ensemble des statistiques d'un challenge points
func BuildPointsStats(scores []model.Score, names map[string]string) *model.PointsStats {
	ps := &model.PointsStats{
		Leaderboard: PointsLeaderboard(scores, names),
	}

	// Total général et moyenne par joueur actif (totaux <= 0 exclus:
	// participer sans marquer net ne compte pas dans la moyenne)
	activeSum, activeCount := 0, 0
	for _, e := range ps.Leaderboard {
		ps.TotalPoints += e.Points
		if e.Points > 0 {
			activeSum += e.Points
			activeCount++
		}
	}
	if activeCount > 0 {
		ps.AvgPerActivePlayer = int(math.Round(float64(activeSum) / float64(activeCount)))
	}

	ps.HighestDaily = highestDaily(scores, names)
	ps.HighestWeekly = highestWeekly(scores, names)
	ps.MostActiveDay = mostActiveDay(scores)

	return ps
}

type userDayKey struct {
	userID string
	day    string
}

// highestDaily retourne le meilleur total (participant, jour)
func highestDaily(scores []model.Score, names map[string]string) *model.DailyRecord {
	sums := make(map[userDayKey]int)
	dates := make(map[userDayKey]time.Time)
	var order []userDayKey
	for _, s := range scores {
		key := userDayKey{s.UserID, s.Date.Format("2006-01-02")}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
			dates[key] = s.Date
		}
		sums[key] += s.Points
	}

	var best *model.DailyRecord
	for _, key := range order {
		if best == nil || sums[key] > best.Points {
			best = &model.DailyRecord{
				UserID:   key.userID,
				UserName: displayName(names, key.userID),
				Date:     dates[key],
				Points:   sums[key],
			}
		}
	}
	return best
}

type userWeekKey struct {
	userID string
	week   string
}

// highestWeekly retourne le meilleur total hebdomadaire, semaines ISO
// ancrées au lundi
func highestWeekly(scores []model.Score, names map[string]string) *model.WeeklyRecord {
	sums := make(map[userWeekKey]int)
	var order []userWeekKey
	for _, s := range scores {
		key := userWeekKey{s.UserID, utils.WeekKey(s.Date)}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += s.Points
	}

	var best *model.WeeklyRecord
	for _, key := range order {
		if best == nil || sums[key] > best.Points {
			best = &model.WeeklyRecord{
				UserID:   key.userID,
				UserName: displayName(names, key.userID),
				Week:     key.week,
				Points:   sums[key],
			}
		}
	}
	return best
}

// mostActiveDay retourne le jour au plus gros total tous participants
// confondus
func mostActiveDay(scores []model.Score) *model.DayTotal {
	sums := make(map[string]int)
	dates := make(map[string]time.Time)
	var order []string
	for _, s := range scores {
		key := s.Date.Format("2006-01-02")
		if _, seen := sums[key]; !seen {
			order = append(order, key)
			dates[key] = s.Date
		}
		sums[key] += s.Points
	}

	var best *model.DayTotal
	for _, key := range order {
		if best == nil || sums[key] > best.Points {
			best = &model.DayTotal{Date: dates[key], Points: sums[key]}
		}
	}
	return best
}

// eligibleChanges convertit les lignes baseline en entrées de variation,
// en excluant les baselines nulles (variation indéfinie)
func eligibleChanges(baselines []model.BaselineRecord, names map[string]string) []model.ChangeEntry {
	var entries []model.ChangeEntry
	for _, b := range baselines {
		change, ok := b.PercentChange()
		if !ok {
			continue
		}
		entries = append(entries, model.ChangeEntry{
			UserID:        b.UserID,
			UserName:      displayName(names, b.UserID),
			Baseline:      b.BaselineValue,
			Current:       b.CurrentValue,
			PercentChange: change,
		})
	}
	return entries
}

// gains garde les variations positives, les plus fortes d'abord
func gains(eligible []model.ChangeEntry, limit int) []model.ChangeEntry {
	var out []model.ChangeEntry
	for _, e := range eligible {
		if e.Current > e.Baseline {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PercentChange > out[j].PercentChange
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// losses garde les variations négatives, les plus fortes d'abord
func losses(eligible []model.ChangeEntry, limit int) []model.ChangeEntry {
	var out []model.ChangeEntry
	for _, e := range eligible {
		if e.Current < e.Baseline {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PercentChange < out[j].PercentChange
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GainsLeaderboard retourne le classement des hausses pour l'affichage dédié
func GainsLeaderboard(baselines []model.BaselineRecord, names map[string]string) []model.ChangeEntry {
	return gains(eligibleChanges(baselines, names), 10)
}

// LossesLeaderboard retourne le classement des baisses pour l'affichage dédié
func LossesLeaderboard(baselines []model.BaselineRecord, names map[string]string) []model.ChangeEntry {
	return losses(eligibleChanges(baselines, names), 10)
}

// BuildChangeStats calcule l'ensemble des statistiques d'un challenge
// variation
func BuildChangeStats(baselines []model.BaselineRecord, names map[string]string) *model.ChangeStats {
	eligible := eligibleChanges(baselines, names)
	cs := &model.ChangeStats{}

	// Classement par variation absolue décroissante
	leaderboard := make([]model.ChangeEntry, len(eligible))
	copy(leaderboard, eligible)
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return math.Abs(leaderboard[i].PercentChange) > math.Abs(leaderboard[j].PercentChange)
	})
	if len(leaderboard) > changeLeaderboardLimit {
		leaderboard = leaderboard[:changeLeaderboardLimit]
	}
	cs.Leaderboard = leaderboard

	// Top 3 hausses et baisses
	cs.TopGains = gains(eligible, 3)
	cs.TopLosses = losses(eligible, 3)

	// Moyenne sur tous les éligibles, hausses et baisses confondues
	if len(eligible) > 0 {
		sum := 0.0
		for _, e := range eligible {
			sum += e.PercentChange
		}
		cs.AvgChange = sum / float64(len(eligible))
	}

	// Plus grosse variation en valeur absolue, signe ignoré
	for i, e := range eligible {
		if cs.BiggestChange == nil || math.Abs(e.PercentChange) > math.Abs(cs.BiggestChange.PercentChange) {
			cs.BiggestChange = &eligible[i]
		}
	}

	return cs
}

// BuildChallengeStats assemble le payload complet selon la variante
func BuildChallengeStats(challenge *model.Challenge, scores []model.Score, baselines []model.BaselineRecord, names map[string]string) model.ChallengeStats {
	result := model.ChallengeStats{
		ChallengeID: challenge.ID,
		Variant:     challenge.Variant,
	}
	if challenge.Variant == model.VariantChange {
		result.Change = BuildChangeStats(baselines, names)
	} else {
		result.Points = BuildPointsStats(scores, names)
	}
	return result
}

// BuildFinalResults construit le payload de l'annonce finale: podium top 3
// selon la métrique naturelle de la variante et nombre de participants
// (scoreurs distincts en points, lignes baseline en variation)
func BuildFinalResults(challenge *model.Challenge, scores []model.Score, baselines []model.BaselineRecord, names map[string]string) model.FinalResults {
	final := model.FinalResults{
		Stats: BuildChallengeStats(challenge, scores, baselines, names),
	}

	if challenge.Variant == model.VariantChange {
		for _, e := range final.Stats.Change.Leaderboard {
			if len(final.Top3) == 3 {
				break
			}
			final.Top3 = append(final.Top3, model.FinalResult{
				UserID:   e.UserID,
				UserName: e.UserName,
				Percent:  e.PercentChange,
			})
		}
		final.ParticipantCount = len(baselines)
		return final
	}

	for _, e := range final.Stats.Points.Leaderboard {
		if len(final.Top3) == 3 {
			break
		}
		final.Top3 = append(final.Top3, model.FinalResult{
			UserID:   e.UserID,
			UserName: e.UserName,
			Points:   e.Points,
		})
	}
	distinct := make(map[string]struct{})
	for _, s := range scores {
		distinct[s.UserID] = struct{}{}
	}
	final.ParticipantCount = len(distinct)
	return final
}
