package batch

import (
	"github.com/pwaudit/pwaudit/score"
)

// WeakThreshold is the numeric score below which a password counts as weak.
const WeakThreshold = 40

type Summary struct {
	Total    int     `json:"total"`
	Average  float64 `json:"average_score"`
	Strong   int     `json:"strong"`
	Breached int     `json:"breached"`
	Weak     int     `json:"weak"`
	Unknown  int     `json:"unknown_breach_status"`
}

func Summarize(verdicts []score.Verdict) Summary {
	summary := Summary{Total: len(verdicts)}
	if summary.Total == 0 {
		return summary
	}

	sum := 0
	for _, verdict := range verdicts {
		sum += verdict.NumericScore

		if verdict.NumericScore >= score.SecureThreshold {
			summary.Strong++
		}
		if verdict.NumericScore < WeakThreshold {
			summary.Weak++
		}
		if verdict.Breach.Breached {
			summary.Breached++
		} else if verdict.Breach.Degraded() {
			summary.Unknown++
		}
	}

	summary.Average = float64(sum) / float64(summary.Total)

	return summary
}
