// Package generator produces random passwords, memorable passwords and
// passphrases. All randomness comes from a cryptographically secure source.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Special   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

const (
	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16

	MinCount = 1
	MaxCount = 20

	// runs of this many identical characters are redrawn
	maxRun = 3

	maxDraws = 1000
)

var (
	ErrTooShort     = fmt.Errorf("password length must be at least %d", MinLength)
	ErrTooLong      = fmt.Errorf("password length must be at most %d", MaxLength)
	ErrCount        = fmt.Errorf("count must be between %d and %d", MinCount, MaxCount)
	ErrNoCandidates = errors.New("could not draw a password without repeated runs")
)

// Policy selects the character classes of a generated password. Lowercase
// letters are always included.
type Policy struct {
	Length  int
	Upper   bool
	Digits  bool
	Special bool
}

func DefaultPolicy() Policy {
	return Policy{
		Length:  DefaultLength,
		Upper:   true,
		Digits:  true,
		Special: true,
	}
}

func (p Policy) Validate() error {
	if p.Length < MinLength {
		return ErrTooShort
	}
	if p.Length > MaxLength {
		return ErrTooLong
	}
	return nil
}

func (p Policy) classes() []string {
	classes := []string{Lowercase}
	if p.Upper {
		classes = append(classes, Uppercase)
	}
	if p.Digits {
		classes = append(classes, Digits)
	}
	if p.Special {
		classes = append(classes, Special)
	}
	return classes
}

type Generator struct {
	random io.Reader
}

// New returns a Generator drawing from random. Pass crypto/rand.Reader
// outside of tests.
func New(random io.Reader) *Generator {
	return &Generator{random: random}
}

var defaultGenerator = New(rand.Reader)

func Generate(policy Policy) (string, error) {
	return defaultGenerator.Generate(policy)
}

func GenerateMany(count int, policy Policy) ([]string, error) {
	return defaultGenerator.GenerateMany(count, policy)
}

// Generate draws one mandatory character from every enabled class, fills the
// rest from their union and shuffles the result.
func (g *Generator) Generate(policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}

	classes := policy.classes()
	union := ""
	for _, class := range classes {
		union += class
	}

	for draw := 0; draw < maxDraws; draw++ {
		chars := make([]byte, 0, policy.Length)

		for _, class := range classes {
			c, err := g.pick(class)
			if err != nil {
				return "", err
			}
			chars = append(chars, c)
		}

		for len(chars) < policy.Length {
			c, err := g.pick(union)
			if err != nil {
				return "", err
			}
			chars = append(chars, c)
		}

		if err := g.shuffle(len(chars), func(i, j int) {
			chars[i], chars[j] = chars[j], chars[i]
		}); err != nil {
			return "", err
		}

		if !hasRun(chars, maxRun) {
			return string(chars), nil
		}
	}

	return "", ErrNoCandidates
}

func (g *Generator) GenerateMany(count int, policy Policy) ([]string, error) {
	if count < MinCount || count > MaxCount {
		return nil, ErrCount
	}

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		password, err := g.Generate(policy)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, password)
	}

	return passwords, nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

func (g *Generator) pick(set string) (byte, error) {
	i, err := g.intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle over n elements.
func (g *Generator) shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

func hasRun(chars []byte, n int) bool {
	run := 1
	for i := 1; i < len(chars); i++ {
		if chars[i] == chars[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
