package matchers

import "unicode/utf8"

type repeatMatcher struct {
	n int
}

// Repeat matches a run of at least n identical consecutive runes.
func Repeat(n int) Matcher {
	return &repeatMatcher{
		n: n,
	}
}

func (m *repeatMatcher) Match(candidate []byte) (bool, int, int) {
	if m.n <= 0 {
		return false, 0, 0
	}

	var (
		prev     rune = utf8.RuneError
		runStart int
		run      int
	)

	for i, r := range string(candidate) {
		if run > 0 && r == prev {
			run++
		} else {
			prev = r
			runStart = i
			run = 1
		}

		if run >= m.n {
			return true, runStart, i + utf8.RuneLen(r)
		}
	}

	return false, 0, 0
}
