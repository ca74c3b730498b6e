package generator_test

import (
	"errors"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/pwaudit/pwaudit/generator"
	"github.com/pwaudit/pwaudit/score"
)

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy pool exhausted")
}

func containsAny(s, chars string) bool {
	return strings.ContainsAny(s, chars)
}

var _ = Describe("Generate", func() {
	It("draws from every class with the default policy", func() {
		for i := 0; i < 10000; i++ {
			password, err := generator.Generate(generator.DefaultPolicy())
			Expect(err).NotTo(HaveOccurred())

			Expect(password).To(HaveLen(generator.DefaultLength))
			Expect(containsAny(password, generator.Lowercase)).To(BeTrue())
			Expect(containsAny(password, generator.Uppercase)).To(BeTrue())
			Expect(containsAny(password, generator.Digits)).To(BeTrue())
			Expect(containsAny(password, generator.Special)).To(BeTrue())
			Expect(score.Score(password)).To(BeNumerically(">=", score.SecureThreshold))
		}
	})

	It("leaves out disabled classes", func() {
		policy := generator.Policy{Length: 20}

		for i := 0; i < 200; i++ {
			password, err := generator.Generate(policy)
			Expect(err).NotTo(HaveOccurred())

			Expect(password).To(HaveLen(20))
			Expect(strings.Trim(password, generator.Lowercase)).To(BeEmpty())
		}
	})

	It("honours each class individually", func() {
		policy := generator.Policy{Length: 8, Digits: true}

		for i := 0; i < 200; i++ {
			password, err := generator.Generate(policy)
			Expect(err).NotTo(HaveOccurred())

			Expect(containsAny(password, generator.Digits)).To(BeTrue())
			Expect(containsAny(password, generator.Uppercase)).To(BeFalse())
			Expect(containsAny(password, generator.Special)).To(BeFalse())
		}
	})

	It("never emits three identical characters in a row", func() {
		policy := generator.Policy{Length: generator.MaxLength}

		for i := 0; i < 500; i++ {
			password, err := generator.Generate(policy)
			Expect(err).NotTo(HaveOccurred())

			for j := 2; j < len(password); j++ {
				Expect(password[j] == password[j-1] && password[j] == password[j-2]).To(BeFalse())
			}
		}
	})

	It("does not place mandatory characters at fixed positions", func() {
		firstIsLower := 0
		for i := 0; i < 500; i++ {
			password, err := generator.Generate(generator.Policy{Length: 8, Upper: true, Digits: true, Special: true})
			Expect(err).NotTo(HaveOccurred())

			if strings.ContainsRune(generator.Lowercase, rune(password[0])) {
				firstIsLower++
			}
		}

		Expect(firstIsLower).To(BeNumerically(">", 50))
		Expect(firstIsLower).To(BeNumerically("<", 450))
	})

	It("rejects short lengths", func() {
		_, err := generator.Generate(generator.Policy{Length: 7})
		Expect(err).To(MatchError(generator.ErrTooShort))
	})

	It("rejects long lengths", func() {
		_, err := generator.Generate(generator.Policy{Length: generator.MaxLength + 1})
		Expect(err).To(MatchError(generator.ErrTooLong))
	})

	It("reports a failing random source", func() {
		_, err := generator.New(brokenReader{}).Generate(generator.DefaultPolicy())
		Expect(err).To(MatchError(ContainSubstring("entropy pool exhausted")))
	})
})

var _ = Describe("GenerateMany", func() {
	It("returns distinct passwords", func() {
		passwords, err := generator.GenerateMany(generator.MaxCount, generator.DefaultPolicy())
		Expect(err).NotTo(HaveOccurred())

		Expect(passwords).To(HaveLen(generator.MaxCount))

		seen := map[string]bool{}
		for _, password := range passwords {
			Expect(seen).NotTo(HaveKey(password))
			seen[password] = true
		}
	})

	It("bounds the count", func() {
		_, err := generator.GenerateMany(0, generator.DefaultPolicy())
		Expect(err).To(MatchError(generator.ErrCount))

		_, err = generator.GenerateMany(generator.MaxCount+1, generator.DefaultPolicy())
		Expect(err).To(MatchError(generator.ErrCount))
	})

	It("validates the policy", func() {
		_, err := generator.GenerateMany(3, generator.Policy{Length: 4})
		Expect(err).To(MatchError(generator.ErrTooShort))
	})
})

var _ = Describe("Memorable", func() {
	It("joins capitalised words and a number", func() {
		password, err := generator.Memorable(generator.DefaultMemorableOptions())
		Expect(err).NotTo(HaveOccurred())

		parts := strings.Split(password, "-")
		Expect(parts).To(HaveLen(4))
		for _, word := range parts[:3] {
			Expect(word).To(MatchRegexp(`^[A-Z][a-z]+$`))
		}
		Expect(parts[3]).To(MatchRegexp(`^[0-9]{2}$`))
	})

	It("does not repeat words", func() {
		for i := 0; i < 200; i++ {
			password, err := generator.Memorable(generator.MemorableOptions{Words: 6, Separator: " "})
			Expect(err).NotTo(HaveOccurred())

			words := strings.Fields(password)
			Expect(words).To(HaveLen(6))

			seen := map[string]bool{}
			for _, word := range words {
				Expect(seen).NotTo(HaveKey(word))
				seen[word] = true
			}
		}
	})

	It("can leave words lowercase and skip the number", func() {
		password, err := generator.Memorable(generator.MemorableOptions{Words: 2, Separator: "."})
		Expect(err).NotTo(HaveOccurred())

		Expect(password).To(MatchRegexp(`^[a-z]+\.[a-z]+$`))
	})

	It("bounds the word count", func() {
		_, err := generator.Memorable(generator.MemorableOptions{Words: 0})
		Expect(err).To(MatchError(generator.ErrWordCount))
	})
})

var _ = Describe("Passphrase", func() {
	It("joins the requested number of words with spaces", func() {
		phrase, err := generator.Passphrase(generator.DefaultPassphraseWords)
		Expect(err).NotTo(HaveOccurred())

		words := strings.Split(phrase, " ")
		Expect(words).To(HaveLen(generator.DefaultPassphraseWords))
		for _, word := range words {
			Expect(word).To(MatchRegexp(`^[a-z]+$`))
		}
	})

	It("is long enough to pass the length check", func() {
		phrase, err := generator.Passphrase(4)
		Expect(err).NotTo(HaveOccurred())

		Expect(utf8.RuneCountInString(phrase)).To(BeNumerically(">=", 8))
	})

	It("bounds the word count", func() {
		_, err := generator.Passphrase(generator.MaxWords + 1)
		Expect(err).To(MatchError(generator.ErrWordCount))
	})

	It("reports a failing random source", func() {
		_, err := generator.New(brokenReader{}).Passphrase(3)
		Expect(err).To(HaveOccurred())
	})
})
