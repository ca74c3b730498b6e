// Package complexity checks a password against a fixed set of composition
// rules and rates it by how many of them it satisfies.
package complexity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinLength = 8

	// Specials is the punctuation that satisfies the special-character check.
	Specials = `!@#$%^&*(),.?":{}|<>`
)

type Strength string

const (
	VeryStrong Strength = "very strong"
	Medium     Strength = "medium"
	Weak       Strength = "weak"
	VeryWeak   Strength = "very weak"
)

// Checks holds the outcome of every rule. A true value means the password
// satisfies the rule.
type Checks struct {
	LengthOK        bool `json:"length_ok"`
	HasUpper        bool `json:"has_upper"`
	HasLower        bool `json:"has_lower"`
	HasDigit        bool `json:"has_digit"`
	HasSpecial      bool `json:"has_special"`
	NoSpaces        bool `json:"no_spaces"`
	NoCommonPattern bool `json:"no_common_pattern"`
}

// Check is a single named rule outcome.
type Check struct {
	Name   string
	Passed bool
}

// List returns the checks in a stable order.
func (c Checks) List() []Check {
	return []Check{
		{Name: "length_ok", Passed: c.LengthOK},
		{Name: "has_upper", Passed: c.HasUpper},
		{Name: "has_lower", Passed: c.HasLower},
		{Name: "has_digit", Passed: c.HasDigit},
		{Name: "has_special", Passed: c.HasSpecial},
		{Name: "no_spaces", Passed: c.NoSpaces},
		{Name: "no_common_pattern", Passed: c.NoCommonPattern},
	}
}

// Passed counts the satisfied checks.
func (c Checks) Passed() int {
	n := 0
	for _, check := range c.List() {
		if check.Passed {
			n++
		}
	}
	return n
}

type Result struct {
	Checks   Checks   `json:"checks"`
	Score    int      `json:"score"`
	Strength Strength `json:"strength"`
}

// MaxScore is the number of checks.
const MaxScore = 7

// Analyze runs every check against password. It performs no I/O and always
// returns the same Result for the same input.
func Analyze(password string) Result {
	if password == "" {
		return Result{Strength: VeryWeak}
	}

	checks := Checks{
		LengthOK:        utf8.RuneCountInString(password) >= MinLength,
		HasUpper:        strings.IndexFunc(password, isUpper) >= 0,
		HasLower:        strings.IndexFunc(password, isLower) >= 0,
		HasDigit:        strings.IndexFunc(password, isDigit) >= 0,
		HasSpecial:      strings.ContainsAny(password, Specials),
		NoSpaces:        !strings.Contains(password, " "),
		NoCommonPattern: !HasCommonPattern(password),
	}

	score := checks.Passed()

	return Result{
		Checks:   checks,
		Score:    score,
		Strength: strengthFor(score),
	}
}

func strengthFor(score int) Strength {
	switch {
	case score >= 6:
		return VeryStrong
	case score >= 4:
		return Medium
	case score >= 2:
		return Weak
	default:
		return VeryWeak
	}
}

func isLatinOrCyrillic(r rune) bool {
	return unicode.In(r, unicode.Latin, unicode.Cyrillic)
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) && isLatinOrCyrillic(r)
}

func isLower(r rune) bool {
	return unicode.IsLower(r) && isLatinOrCyrillic(r)
}

// isDigit accepts any Unicode decimal digit, matching how passwords are
// scored.
func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}
