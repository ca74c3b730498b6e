package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pwaudit/pwaudit/batch"
	"github.com/pwaudit/pwaudit/complexity"
	"github.com/pwaudit/pwaudit/score"
)

const barWidth = 20

var checkDescriptions = map[string]string{
	"length_ok":         fmt.Sprintf("at least %d characters", complexity.MinLength),
	"has_upper":         "contains uppercase letters",
	"has_lower":         "contains lowercase letters",
	"has_digit":         "contains digits",
	"has_special":       "contains special characters",
	"no_spaces":         "contains no spaces",
	"no_common_pattern": "free of obvious patterns",
}

// mask hides a password, revealing only roughly how long it is.
func mask(password string) string {
	n := utf8.RuneCountInString(password)
	if n > 10 {
		return strings.Repeat("*", 11)
	}
	return strings.Repeat("*", n)
}

func bar(numeric int) string {
	filled := numeric * barWidth / score.Max
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func writeVerdict(w io.Writer, verdict score.Verdict) {
	result := verdict.Complexity
	fmt.Fprintf(w, "%s %s (%d/%d)\n", bold("Complexity:"), result.Strength, result.Score, complexity.MaxScore)
	for _, check := range result.Checks.List() {
		status := green("[PASS]")
		if !check.Passed {
			status = red("[FAIL]")
		}
		fmt.Fprintf(w, "  %s %s\n", status, checkDescriptions[check.Name])
	}

	fmt.Fprintln(w)
	writeBreach(w, verdict)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d/%d [%s] %s\n", bold("Score:"), verdict.NumericScore, score.Max, bar(verdict.NumericScore), score.Label(verdict.NumericScore))

	estimate := verdict.Estimate
	fmt.Fprintf(w, "%s %s (%.1f bits, cracked in %s)\n", bold("Guessability:"), estimate.Describe(), estimate.Bits, estimate.CrackTime)

	fmt.Fprintln(w)
	if verdict.IsSecure {
		fmt.Fprintln(w, green("This password looks secure."))
		return
	}

	fmt.Fprintln(w, bold("Recommendations:"))
	for i, rec := range verdict.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
}

func writeBreach(w io.Writer, verdict score.Verdict) {
	result := verdict.Breach

	fmt.Fprintln(w, bold("Breach check:"))
	fmt.Fprintf(w, "  source: %s\n", result.Source)
	fmt.Fprintf(w, "  result: %s\n", result.Message)

	switch {
	case result.Breached:
		fmt.Fprintf(w, "  %s this password has been compromised; replace it immediately\n", red("[BREACHED]"))
	case result.Degraded():
		fmt.Fprintf(w, "  %s breach status unknown; only local checks were applied\n", yellow("[WARN]"))
	}
}

func writeBrief(w io.Writer, index, total int, password string, verdict score.Verdict) {
	line := fmt.Sprintf("[%d/%d] %-11s %3d/%d %s", index, total, mask(password), verdict.NumericScore, score.Max, verdict.Complexity.Strength)

	switch {
	case verdict.Breach.Breached:
		line += " " + red("[BREACHED]")
	case verdict.Breach.Degraded():
		line += " " + yellow("[UNKNOWN]")
	}

	fmt.Fprintln(w, line)
}

func writeSummary(w io.Writer, summary batch.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Summary:"))
	fmt.Fprintf(w, "  checked:        %d\n", summary.Total)
	fmt.Fprintf(w, "  average score:  %.1f/%d\n", summary.Average, score.Max)
	fmt.Fprintf(w, "  strong (>=%d):  %d\n", score.SecureThreshold, summary.Strong)
	fmt.Fprintf(w, "  breached:       %d\n", summary.Breached)
	fmt.Fprintf(w, "  weak (<%d):     %d\n", batch.WeakThreshold, summary.Weak)
	fmt.Fprintf(w, "  status unknown: %d\n", summary.Unknown)

	if summary.Breached > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %d password(s) must be replaced\n", red("[BREACHED]"), summary.Breached)
	}
}
