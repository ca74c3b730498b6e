package matchers

import "bytes"

// Multi reports the first match of any of its matchers.
func Multi(matchers ...Matcher) Matcher {
	return &multi{
		matchers: matchers,
	}
}

// LowercasedMulti lowercases the candidate (Unicode-aware) before handing it
// to each matcher, so the matchers themselves should be written in lowercase.
func LowercasedMulti(matchers ...Matcher) Matcher {
	return &multi{
		matchers:  matchers,
		lowercase: true,
	}
}

type multi struct {
	matchers  []Matcher
	lowercase bool
}

func (m *multi) Match(candidate []byte) (bool, int, int) {
	if m.lowercase {
		candidate = bytes.ToLower(candidate)
	}

	for _, matcher := range m.matchers {
		if match, start, end := matcher.Match(candidate); match {
			return true, start, end
		}
	}

	return false, 0, 0
}
