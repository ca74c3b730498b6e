package score_test

import (
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/pwaudit/pwaudit/breach"
	"github.com/pwaudit/pwaudit/complexity"
	"github.com/pwaudit/pwaudit/score"
)

var _ = Describe("Score", func() {
	table.DescribeTable("numeric scores",
		func(password string, expected int) {
			Expect(score.Score(password)).To(Equal(expected))
		},
		table.Entry("empty", "", 0),
		table.Entry("built-in common password", "password", 0),
		table.Entry("common password in another case", "PASSWORD", 0),
		table.Entry("short repeated letters", "aaa", 0),
		table.Entry("lowercase with digits", "password123", 67),
		table.Entry("four classes, one repeat", "Tr0ub4dor&3xyz", 97),
		table.Entry("four classes, all unique", "Abcdefg1!", 90),
		table.Entry("long digits only", "12345678901234", 46),
		table.Entry("repeating block", "Aa1!Aa1!Aa1!", 80),
		table.Entry("cyrillic letters count as other", "пароль", 35),
	)

	It("penalises three identical characters in a row", func() {
		Expect(score.Score("Abcdef1!xyz")).To(BeNumerically(">", score.Score("Abcddd1!xyz")))
		Expect(score.Score("Abcdef1!xyz") - score.Score("Abcddd1!xyz")).To(BeNumerically(">=", 20))
	})

	It("stays within bounds", func() {
		for _, password := range []string{"a", "1", "!!!!!!!", "Zz9#Zz9#Zz9#Zz9#Zz9#Zz9#", "Ab1!Cd2@Ef3#Gh4$"} {
			Expect(score.Score(password)).To(BeNumerically(">=", 0))
			Expect(score.Score(password)).To(BeNumerically("<=", score.Max))
		}
	})
})

var _ = Describe("Evaluate", func() {
	clean := breach.Result{Source: breach.SourceRemoteAPI}

	It("accepts a strong clean password", func() {
		password := "Tr0ub4dor&3xyz"
		verdict := score.Evaluate(password, complexity.Analyze(password), clean)

		Expect(verdict.IsSecure).To(BeTrue())
		Expect(verdict.NumericScore).To(Equal(97))
		Expect(verdict.Recommendations).To(BeEmpty())
		Expect(verdict.Estimate.Bits).To(BeNumerically(">", 0))
	})

	It("rejects a password built around a common word", func() {
		password := "password123"
		verdict := score.Evaluate(password, complexity.Analyze(password), clean)

		Expect(verdict.IsSecure).To(BeFalse())
		Expect(verdict.Recommendations).To(Equal([]string{
			score.RecommendUpper,
			score.RecommendSpecial,
			score.RecommendPatterns,
		}))
	})

	It("rejects a breached password however strong it looks", func() {
		password := "Tr0ub4dor&3xyz"
		breached := breach.Result{Breached: true, Count: 12, Source: breach.SourceRemoteAPI}

		verdict := score.Evaluate(password, complexity.Analyze(password), breached)

		Expect(verdict.IsSecure).To(BeFalse())
		Expect(verdict.Recommendations).To(Equal([]string{score.RecommendReplace}))
	})

	It("does not treat an unknown breach status as a breach", func() {
		password := "Tr0ub4dor&3xyz"
		unknown := breach.Result{Source: breach.SourceTimeout}

		verdict := score.Evaluate(password, complexity.Analyze(password), unknown)

		Expect(verdict.IsSecure).To(BeTrue())
		Expect(verdict.Breach.Known()).To(BeFalse())
	})

	It("asks for a retry when an insecure password could not be looked up", func() {
		password := "abcdefgh"
		unknown := breach.Result{Source: breach.SourceRateLimited}

		verdict := score.Evaluate(password, complexity.Analyze(password), unknown)

		Expect(verdict.IsSecure).To(BeFalse())
		Expect(verdict.Recommendations).To(ContainElement(score.RecommendVerify))
	})

	It("needs a high enough numeric score", func() {
		password := "Abcdefg1!"
		result := complexity.Analyze(password)
		Expect(result.Score).To(Equal(complexity.MaxScore))

		verdict := score.Evaluate(password, result, clean)
		Expect(verdict.IsSecure).To(BeTrue())

		password = "Aaa1!bbb"
		verdict = score.Evaluate(password, complexity.Analyze(password), clean)
		Expect(verdict.NumericScore).To(BeNumerically("<", score.SecureThreshold))
		Expect(verdict.IsSecure).To(BeFalse())
	})
})

var _ = Describe("Label", func() {
	table.DescribeTable("labels",
		func(numeric int, label string) {
			Expect(score.Label(numeric)).To(Equal(label))
		},
		table.Entry("top", 100, "excellent"),
		table.Entry("excellent boundary", 80, "excellent"),
		table.Entry("good", 60, "good"),
		table.Entry("acceptable", 40, "acceptable"),
		table.Entry("weak", 20, "weak"),
		table.Entry("bottom", 0, "very weak"),
	)
})
