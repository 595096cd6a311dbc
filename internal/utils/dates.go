package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat est le format d'affichage des dates dans les messages
const DateFormat = "02/01/2006"

// ParseDayInput parse une saisie de jour(s) du mois: "15" ou "6-10".
// Retourne la liste des jours, ou nil si la saisie est invalide
func ParseDayInput(input string) []int {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if strings.Contains(input, "-") {
		parts := strings.SplitN(input, "-", 2)
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return nil
		}
		if start < 1 || end > 31 || start > end {
			return nil
		}
		days := make([]int, 0, end-start+1)
		for d := start; d <= end; d++ {
			days = append(days, d)
		}
		return days
	}

	day, err := strconv.Atoi(input)
	if err != nil || day < 1 || day > 31 {
		return nil
	}
	return []int{day}
}

// DaysToDates convertit des jours du mois en dates calendaires du mois
// courant de now
func DaysToDates(now time.Time, days []int) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		dates = append(dates, time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location()))
	}
	return dates
}

// ParseDate parse une date JJ/MM/AAAA dans le fuseau donné
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(input), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected dd/mm/yyyy", input)
	}
	return t, nil
}

// WeekWindow retourne le lundi et le dimanche de la semaine courante
// (offset 0) ou d'une semaine précédente (offset 1 = semaine dernière)
func WeekWindow(now time.Time, offset int) (time.Time, time.Time) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -daysSinceMonday-7*offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeekKey retourne la clé de semaine ISO (année + numéro, lundi ancré)
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SameDate teste l'égalité calendaire de deux instants
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
