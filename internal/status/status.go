// Package status résout le statut de cycle de vie d'un challenge à partir
// de l'horloge. Fonction pure, aucune I/O: le champ status persisté n'est
// qu'un cache de cette résolution, réconcilié par le scheduler.
package status

import (
	"fmt"
	"time"

	model "github.com/Lucasbjorklund31/challengebot/internal/models"
)

// Resolve calcule le statut réel d'un challenge et un message de temps
// restant. start et end sont des dates calendaires; end est inclusive
// jusqu'à sa dernière seconde, suivie d'un jour de grâce
func Resolve(now, startDate, endDate time.Time) (string, string) {
	loc := now.Location()
	startInstant := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	endInstant := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, loc)
	graceInstant := endInstant.Add(24 * time.Hour)

	switch {
	case now.Before(startInstant):
		return model.StatusUpcoming, fmt.Sprintf("Starts in %s", formatTimeRemaining(startInstant.Sub(now)))
	case !now.After(endInstant):
		return model.StatusActive, fmt.Sprintf("Active - %s remaining!", formatTimeRemaining(endInstant.Sub(now)))
	case !now.After(graceInstant):
		return model.StatusGracePeriod, fmt.Sprintf("Grace period - %s left to submit!", formatTimeRemaining(graceInstant.Sub(now)))
	default:
		return model.StatusEnded, "Challenge has ended"
	}
}

// formatTimeRemaining formate un délai de façon lisible: jours entiers à
// partir de 2 jours, sinon heures puis minutes
func formatTimeRemaining(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	if days > 1 {
		return fmt.Sprintf("%d days", days)
	}
	if days == 1 {
		return "1 day"
	}

	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60

	if hours > 0 {
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	}
	if minutes > 0 {
		return fmt.Sprintf("%d %s", minutes, plural("minute", minutes))
	}
	return "less than a minute"
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
