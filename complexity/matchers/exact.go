package matchers

type exactMatcher struct {
	words map[string]struct{}
}

// Exact matches a candidate that is equal to one of words in its entirety.
func Exact(words ...string) Matcher {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return &exactMatcher{
		words: set,
	}
}

func (m *exactMatcher) Match(candidate []byte) (bool, int, int) {
	if _, found := m.words[string(candidate)]; found {
		return true, 0, len(candidate)
	}

	return false, 0, 0
}
