package scheduler

import (
	"fmt"
	"strings"

	model "github.com/Lucasbjorklund31/challengebot/internal/models"
	"github.com/Lucasbjorklund31/challengebot/internal/utils"
)

// StartMessage annonce le lancement d'un challenge
func StartMessage(c *model.Challenge) string {
	return fmt.Sprintf(
		"🎯 Challenge Started! 🎯\n\n"+
			"%s\n\n"+
			"Scoring: %s\n"+
			"Period: %s to %s\n\n"+
			"Good luck to all participants! 🍀",
		c.Description, c.ScoringSystem,
		c.StartDate.Format(utils.DateFormat), c.EndDate.Format(utils.DateFormat),
	)
}

// EndingMessage rappelle le dernier jour de soumission (période de grâce)
func EndingMessage(c *model.Challenge) string {
	return fmt.Sprintf(
		"⏰ Challenge Ending Soon! ⏰\n\n"+
			"%s\n\n"+
			"Challenge has ended! Please submit your final scores before midnight to get them included. ⏰",
		c.Description,
	)
}

var medals = []string{"🥇", "🥈", "🥉"}

// FinalResultsMessage construit l'annonce finale: podium, bloc de
// statistiques selon la variante, nombre de participants
func FinalResultsMessage(c *model.Challenge, final model.FinalResults) string {
	if len(final.Top3) == 0 {
		return fmt.Sprintf(
			"🏁 Challenge Complete! 🏁\n\n%s\n\nNo scores were submitted for this challenge.",
			c.Description,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Final Results Are In! 🏁\n\n%s\n\n", c.Description)
	b.WriteString("🏆 Winners 🏆\n")

	if c.Variant == model.VariantChange {
		for i, r := range final.Top3 {
			fmt.Fprintf(&b, "%s %s: %s%%\n", medals[i], r.UserName, signedPercent(r.Percent))
		}
		writeChangeStats(&b, final.Stats.Change)
	} else {
		for i, r := range final.Top3 {
			fmt.Fprintf(&b, "%s %s: %d points\n", medals[i], r.UserName, r.Points)
		}
		writePointsStats(&b, final.Stats.Points)
	}

	fmt.Fprintf(&b, "\n🎉 Congratulations to all %d participants who competed! 🎉\n", final.ParticipantCount)
	b.WriteString("Thank you for making this challenge amazing! 🙌")
	return b.String()
}

func writePointsStats(b *strings.Builder, ps *model.PointsStats) {
	if ps == nil {
		return
	}
	b.WriteString("\n📊 Challenge Stats 📊\n")
	fmt.Fprintf(b, "Total Points Earned: %d\n", ps.TotalPoints)
	if ps.AvgPerActivePlayer > 0 {
		fmt.Fprintf(b, "Average per Player: %d points\n", ps.AvgPerActivePlayer)
	}
	if ps.HighestDaily != nil {
		fmt.Fprintf(b, "Best Single Day: %s - %d pts (%s)\n",
			ps.HighestDaily.UserName, ps.HighestDaily.Points, ps.HighestDaily.Date.Format(utils.DateFormat))
	}
	if ps.HighestWeekly != nil {
		fmt.Fprintf(b, "Best Weekly Total: %s - %d pts\n", ps.HighestWeekly.UserName, ps.HighestWeekly.Points)
	}
	if ps.MostActiveDay != nil {
		fmt.Fprintf(b, "Most Active Day: %s (%d total pts)\n",
			ps.MostActiveDay.Date.Format(utils.DateFormat), ps.MostActiveDay.Points)
	}
}

func writeChangeStats(b *strings.Builder, cs *model.ChangeStats) {
	if cs == nil {
		return
	}
	b.WriteString("\n📊 Challenge Stats 📊\n")
	fmt.Fprintf(b, "Average Change: %s%%\n", signedPercent(cs.AvgChange))
	if cs.BiggestChange != nil {
		fmt.Fprintf(b, "Biggest Change: %s - %.2f%%\n", cs.BiggestChange.UserName, cs.BiggestChange.PercentChange)
	}
	if len(cs.TopGains) > 0 {
		b.WriteString("\n📈 Top Gains:\n")
		for _, e := range cs.TopGains {
			fmt.Fprintf(b, "• %s: +%.2f%%\n", e.UserName, e.PercentChange)
		}
	}
	if len(cs.TopLosses) > 0 {
		b.WriteString("\n📉 Top Losses:\n")
		for _, e := range cs.TopLosses {
			fmt.Fprintf(b, "• %s: %.2f%%\n", e.UserName, e.PercentChange)
		}
	}
}

func signedPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
