// Package entropy estimates how guessable a password is using zxcvbn.
package entropy

import (
	"github.com/nbutton23/zxcvbn-go"
)

// zxcvbn slows down sharply on long inputs, so only a prefix is measured.
const maxMeasuredLength = 50

// Guessability scores as reported by zxcvbn.
const (
	TooGuessable      = 0
	VeryGuessable     = 1
	SomewhatGuessable = 2
	SafelyUnguessable = 3
	VeryUnguessable   = 4
)

type Estimate struct {
	Bits      float64 `json:"entropy_bits"`
	CrackTime string  `json:"crack_time"`
	Score     int     `json:"guessability"`
}

func Measure(password string) Estimate {
	if password == "" {
		return Estimate{CrackTime: "instant", Score: TooGuessable}
	}

	runes := []rune(password)
	if len(runes) > maxMeasuredLength {
		runes = runes[:maxMeasuredLength]
	}

	match := zxcvbn.PasswordStrength(string(runes), nil)

	return Estimate{
		Bits:      match.Entropy,
		CrackTime: match.CrackTimeDisplay,
		Score:     match.Score,
	}
}

func (e Estimate) Describe() string {
	switch e.Score {
	case VeryUnguessable:
		return "very unguessable"
	case SafelyUnguessable:
		return "safely unguessable"
	case SomewhatGuessable:
		return "somewhat guessable"
	case VeryGuessable:
		return "very guessable"
	default:
		return "too guessable"
	}
}
