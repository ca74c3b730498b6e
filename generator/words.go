package generator

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed passphrase_words.txt
var passphraseWordsRaw string

var passphraseWords = strings.Fields(passphraseWordsRaw)

var memorableWords = []string{
	"apple", "amber", "arrow", "badge", "beach", "berry", "bloom", "brave",
	"brick", "cabin", "candle", "castle", "cedar", "cloud", "clover", "coral",
	"crane", "delta", "dream", "eagle", "ember", "falcon", "feather", "field",
	"flame", "forest", "frost", "garden", "ginger", "glacier", "globe", "grape",
	"harbor", "hazel", "honey", "island", "ivory", "jasmine", "jungle", "kettle",
	"lantern", "lemon", "maple", "marble", "meadow", "melon", "mirror", "moss",
	"nectar", "noble", "ocean", "olive", "orbit", "otter", "palace", "panda",
	"pebble", "pepper", "pilot", "planet", "plum", "prairie", "quartz", "quiet",
	"rabbit", "raven", "ribbon", "river", "rocket", "saddle", "salmon", "sierra",
	"silver", "spark", "spruce", "stone", "storm", "summit", "sunset", "tiger",
	"timber", "topaz", "tulip", "velvet", "violet", "walnut", "willow", "winter",
	"wizard", "yellow", "zebra", "zephyr",
}

const (
	MinWords = 1
	MaxWords = 12

	DefaultMemorableWords  = 3
	DefaultPassphraseWords = 5
	DefaultSeparator       = "-"
)

var ErrWordCount = fmt.Errorf("word count must be between %d and %d", MinWords, MaxWords)

var errEmptyList = errors.New("word list is empty")

type MemorableOptions struct {
	Words      int
	Capitalize bool
	Number     bool
	Separator  string
}

func DefaultMemorableOptions() MemorableOptions {
	return MemorableOptions{
		Words:      DefaultMemorableWords,
		Capitalize: true,
		Number:     true,
		Separator:  DefaultSeparator,
	}
}

func Memorable(opts MemorableOptions) (string, error) {
	return defaultGenerator.Memorable(opts)
}

func Passphrase(words int) (string, error) {
	return defaultGenerator.Passphrase(words)
}

// Memorable joins distinct dictionary words, optionally capitalised and
// followed by a two-digit number.
func (g *Generator) Memorable(opts MemorableOptions) (string, error) {
	if opts.Words < MinWords || opts.Words > MaxWords {
		return "", ErrWordCount
	}

	words, err := g.sample(memorableWords, opts.Words)
	if err != nil {
		return "", err
	}

	if opts.Capitalize {
		for i, word := range words {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	if opts.Number {
		n, err := g.intn(100)
		if err != nil {
			return "", err
		}
		words = append(words, fmt.Sprintf("%02d", n))
	}

	return strings.Join(words, opts.Separator), nil
}

// Passphrase joins distinct words from the larger passphrase list with
// spaces.
func (g *Generator) Passphrase(count int) (string, error) {
	if count < MinWords || count > MaxWords {
		return "", ErrWordCount
	}

	words, err := g.sample(passphraseWords, count)
	if err != nil {
		return "", err
	}

	return strings.Join(words, " "), nil
}

// sample draws n distinct entries from list without modifying it.
func (g *Generator) sample(list []string, n int) ([]string, error) {
	if len(list) == 0 {
		return nil, errEmptyList
	}
	if n > len(list) {
		n = len(list)
	}

	pool := append([]string(nil), list...)
	for i := 0; i < n; i++ {
		j, err := g.intn(len(pool) - i)
		if err != nil {
			return nil, err
		}
		pool[i], pool[i+j] = pool[i+j], pool[i]
	}

	return pool[:n], nil
}
