package complexity

import (
	"strings"
	"unicode/utf8"

	"github.com/pwaudit/pwaudit/complexity/matchers"
	"github.com/pwaudit/pwaudit/denylist"
)

// MinDistinct is the fewest distinct characters a password may use before it
// counts as a pattern.
const MinDistinct = 4

// minDigitsOnly is the length below which an all-digit password counts as a
// pattern.
const minDigitsOnly = 12

var commonWords = []string{
	"password", "123456", "qwerty", "admin", "welcome",
	"monkey", "letmein", "dragon", "baseball", "football",
	"master", "hello", "freedom", "whatever", "qazwsx",
	"password1", "superman", "1q2w3e4r", "1qaz2wsx",
}

var commonWordMatcher = matchers.LowercasedMulti(matchers.Exact(commonWords...))

var defaultPatternMatcher = matchers.Multi(
	matchers.Repeat(4),
	matchers.Substring("0123"),
	matchers.Substring("1234"),
	matchers.Substring("2345"),
	matchers.Substring("3456"),
	matchers.Substring("4567"),
	matchers.Substring("5678"),
	matchers.Substring("6789"),
	matchers.Substring("7890"),
	matchers.LowercasedMulti(
		matchers.Exact(commonWords...),
		matchers.Substring("qwer"),
		matchers.Substring("asdf"),
		matchers.Substring("zxcv"),
		matchers.Substring("йцук"),
		matchers.Substring("фыва"),
		matchers.Substring("ячсм"),
	),
)

// HasCommonPattern reports whether password is, or is built around, an
// obviously guessable pattern.
func HasCommonPattern(password string) bool {
	if match, _, _ := defaultPatternMatcher.Match([]byte(password)); match {
		return true
	}

	if distinctRunes(password) < MinDistinct {
		return true
	}

	if isAllDigits(password) && utf8.RuneCountInString(password) < minDigitsOnly {
		return true
	}

	return hasDenylistedCore(password)
}

// hasDenylistedCore strips the digits and punctuation people usually bolt on
// to a common password ("Password123!") and checks what is left.
func hasDenylistedCore(password string) bool {
	core := strings.TrimFunc(password, func(r rune) bool {
		return isDigit(r) || strings.ContainsRune(Specials, r) || r == ' '
	})

	if utf8.RuneCountInString(core) < MinDistinct {
		return false
	}

	if denylist.IsCommon(core) {
		return true
	}

	match, _, _ := commonWordMatcher.Match([]byte(core))
	return match
}

func distinctRunes(s string) int {
	seen := map[rune]struct{}{}
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
