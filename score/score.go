// Package score combines the complexity checks, the breach lookup and a
// 0-100 strength estimate into a single verdict.
package score

import (
	"strings"
	"unicode"

	"github.com/pwaudit/pwaudit/breach"
	"github.com/pwaudit/pwaudit/complexity"
	"github.com/pwaudit/pwaudit/complexity/matchers"
	"github.com/pwaudit/pwaudit/denylist"
	"github.com/pwaudit/pwaudit/entropy"
)

const (
	Max = 100

	// SecureThreshold is the lowest numeric score a secure password may have.
	SecureThreshold = 70

	// SecureComplexity is the lowest complexity score a secure password may have.
	SecureComplexity = 6
)

var tripleRun = matchers.Repeat(3)

// Score rates password from 0 to 100. It depends only on the password.
func Score(password string) int {
	if password == "" {
		return 0
	}

	runes := []rune(password)
	length := len(runes)

	total := 0.0

	switch {
	case length >= 12:
		total += 30
	case length >= 8:
		total += 20
	case length >= 6:
		total += 10
	}

	total += 10 * float64(classes(password))

	unique := map[rune]struct{}{}
	for _, r := range runes {
		unique[r] = struct{}{}
	}
	variety := float64(len(unique)) / float64(length) * 30
	if variety > 30 {
		variety = 30
	}
	total += variety

	if match, _, _ := tripleRun.Match([]byte(password)); match {
		total -= 20
	}

	if allOf(password, unicode.IsDigit) || allOf(password, unicode.IsLetter) {
		total -= 15
	}

	if denylist.IsCommon(strings.ToLower(password)) {
		total = 0
	}

	return clamp(int(total))
}

// classes counts the character classes present among ASCII lowercase, ASCII
// uppercase, digits and anything that is not an ASCII letter or digit.
func classes(password string) int {
	var lower, upper, digit, other bool

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
			if unicode.IsDigit(r) {
				digit = true
			}
		}
	}

	n := 0
	for _, present := range []bool{lower, upper, digit, other} {
		if present {
			n++
		}
	}
	return n
}

func allOf(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > Max {
		return Max
	}
	return n
}

type Verdict struct {
	Complexity      complexity.Result `json:"complexity"`
	Breach          breach.Result     `json:"breach_check"`
	NumericScore    int               `json:"strength_score"`
	IsSecure        bool              `json:"is_secure"`
	Recommendations []string          `json:"recommendations"`
	Estimate        entropy.Estimate  `json:"estimate"`
}

// Evaluate combines the analysis results for password into a Verdict.
func Evaluate(password string, result complexity.Result, breachResult breach.Result) Verdict {
	numeric := Score(password)

	verdict := Verdict{
		Complexity:   result,
		Breach:       breachResult,
		NumericScore: numeric,
		IsSecure:     result.Score >= SecureComplexity && !breachResult.Breached && numeric >= SecureThreshold,
		Estimate:     entropy.Measure(password),
	}

	if !verdict.IsSecure {
		verdict.Recommendations = Recommendations(result, breachResult)
	}

	return verdict
}

// Label describes a numeric score in words.
func Label(numeric int) string {
	switch {
	case numeric >= 80:
		return "excellent"
	case numeric >= 60:
		return "good"
	case numeric >= 40:
		return "acceptable"
	case numeric >= 20:
		return "weak"
	default:
		return "very weak"
	}
}
