package score

import (
	"github.com/pwaudit/pwaudit/breach"
	"github.com/pwaudit/pwaudit/complexity"
)

const (
	RecommendLength   = "increase the length to 12 or more characters"
	RecommendUpper    = "add uppercase letters"
	RecommendLower    = "add lowercase letters"
	RecommendDigit    = "add digits"
	RecommendSpecial  = "add special characters"
	RecommendSpaces   = "remove spaces"
	RecommendPatterns = "avoid obvious patterns and common words"
	RecommendReplace  = "replace this password immediately"
	RecommendVerify   = "breach status could not be verified; check again later"
)

// Recommendations lists what would improve a password, in a fixed order.
func Recommendations(result complexity.Result, breachResult breach.Result) []string {
	var recs []string

	checks := result.Checks
	if !checks.LengthOK {
		recs = append(recs, RecommendLength)
	}
	if !checks.HasUpper {
		recs = append(recs, RecommendUpper)
	}
	if !checks.HasLower {
		recs = append(recs, RecommendLower)
	}
	if !checks.HasDigit {
		recs = append(recs, RecommendDigit)
	}
	if !checks.HasSpecial {
		recs = append(recs, RecommendSpecial)
	}
	if !checks.NoSpaces {
		recs = append(recs, RecommendSpaces)
	}
	if !checks.NoCommonPattern {
		recs = append(recs, RecommendPatterns)
	}

	if breachResult.Breached {
		recs = append(recs, RecommendReplace)
	} else if breachResult.Degraded() {
		recs = append(recs, RecommendVerify)
	}

	return recs
}
