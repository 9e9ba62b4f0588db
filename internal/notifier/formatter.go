package notifier

import (
	"fmt"
	"strings"
	"time"

	"MinerSim/internal/model"
)

// FormatPoolStatus formats the system-wide pool view.
func FormatPoolStatus(sum model.Summary, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📦 <b>Pool status</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Users: %d | Miners: %d\n", sum.UserCount, sum.MinerTotal))
	b.WriteString(fmt.Sprintf("Star pool: %.2f\n", sum.StarPool))
	b.WriteString(fmt.Sprintf("Starry pool: %.2f\n", sum.StarryPool))
	b.WriteString(fmt.Sprintf("Starry minted: %.2f\n", sum.StarryTotal))
	b.WriteString(fmt.Sprintf("Mining power: %.2f\n", sum.MiningPowerAccumulated))
	b.WriteString(fmt.Sprintf("Platform profit: %.2f\n", sum.PlatformProfit))
	b.WriteString(fmt.Sprintf("Reward rate: %.4f starry/h\n", sum.RewardRate))
	return b.String()
}

// FormatUserStats formats one user's statistics.
func FormatUserStats(name string, st model.UserStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👤 <b>%s</b>\n\n", name))
	b.WriteString(fmt.Sprintf("Miners: %d\n", st.TotalMiners))
	b.WriteString(fmt.Sprintf("Investment: %.2f\n", st.TotalInvestment))
	b.WriteString(fmt.Sprintf("Total reward: %.2f\n", st.TotalReward))
	b.WriteString(fmt.Sprintf("Average ROI: %.2f%%\n", st.AverageROI*100))
	b.WriteString(fmt.Sprintf("Est. daily reward: %.2f\n", st.EstimatedDailyReward))

	vs := st.VotingStats
	b.WriteString(fmt.Sprintf("Votes: %d (%d ok, %.0f%%), rewards %.2f\n",
		vs.TotalVotes, vs.SuccessfulVotes, vs.SuccessRate*100, vs.TotalVotingRewards))

	if len(st.MinerStats) > 0 {
		b.WriteString("\n⛏ <b>Miners:</b>\n")
		for _, m := range st.MinerStats {
			b.WriteString(fmt.Sprintf("  %s [%s] age %.1fd, reward %.2f, ROI %.2f, renewals %d, renew in %.1fd\n",
				shortID(m.ID), m.Type, m.Age, m.Reward, m.ROI, m.RenewalCount, m.TimeUntilRenewal))
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
