package complexity_test

import (
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/pwaudit/pwaudit/complexity"
)

var _ = Describe("Analyze", func() {
	It("rates the empty string as very weak without passing any check", func() {
		result := complexity.Analyze("")
		Expect(result).To(Equal(complexity.Result{Strength: complexity.VeryWeak}))
		Expect(result.Checks.Passed()).To(Equal(0))
	})

	It("is deterministic", func() {
		for _, pw := range []string{"", "password123", "Tr0ub4dor&3", "Пароль-2024!"} {
			Expect(complexity.Analyze(pw)).To(Equal(complexity.Analyze(pw)))
		}
	})

	It("flags password123 as a common pattern", func() {
		result := complexity.Analyze("password123")

		Expect(result.Checks.HasLower).To(BeTrue())
		Expect(result.Checks.HasDigit).To(BeTrue())
		Expect(result.Checks.HasUpper).To(BeFalse())
		Expect(result.Checks.HasSpecial).To(BeFalse())
		Expect(result.Checks.NoCommonPattern).To(BeFalse())
		Expect(result.Score).To(BeNumerically("<", 6))
	})

	It("passes every check for a strong password", func() {
		result := complexity.Analyze("Gv7#mQ2!pL9x")

		Expect(result.Checks).To(Equal(complexity.Checks{
			LengthOK:        true,
			HasUpper:        true,
			HasLower:        true,
			HasDigit:        true,
			HasSpecial:      true,
			NoSpaces:        true,
			NoCommonPattern: true,
		}))
		Expect(result.Score).To(Equal(complexity.MaxScore))
		Expect(result.Strength).To(Equal(complexity.VeryStrong))
	})

	It("recognises cyrillic letter cases", func() {
		result := complexity.Analyze("Жук")
		Expect(result.Checks.HasUpper).To(BeTrue())
		Expect(result.Checks.HasLower).To(BeTrue())
	})

	It("does not treat letters outside latin and cyrillic as cased", func() {
		result := complexity.Analyze("ΣσΣσ")
		Expect(result.Checks.HasUpper).To(BeFalse())
		Expect(result.Checks.HasLower).To(BeFalse())
	})

	It("counts runes for the length check", func() {
		Expect(complexity.Analyze("пароль12").Checks.LengthOK).To(BeTrue())
		Expect(complexity.Analyze("пароль1").Checks.LengthOK).To(BeFalse())
	})

	It("accepts decimal digits from any script", func() {
		Expect(complexity.Analyze("Xkqmwz٣!Pt").Checks.HasDigit).To(BeTrue())
		Expect(complexity.Analyze("Xkqmwz!Pt").Checks.HasDigit).To(BeFalse())
	})

	It("fails the space check when a space is present", func() {
		Expect(complexity.Analyze("correct horse").Checks.NoSpaces).To(BeFalse())
	})

	table.DescribeTable("strength labels",
		func(password string, score int, strength complexity.Strength) {
			result := complexity.Analyze(password)
			Expect(result.Score).To(Equal(score))
			Expect(result.Strength).To(Equal(strength))
		},
		table.Entry("all seven", "Gv7#mQ2!pL9x", 7, complexity.VeryStrong),
		table.Entry("no special", "Gv7kmQ2rpL9x", 6, complexity.VeryStrong),
		table.Entry("short, no special", "Gv7kmQ", 5, complexity.Medium),
		table.Entry("lowercase only", "gvkmqrpl", 4, complexity.Medium),
		table.Entry("common word", "qwerty", 2, complexity.Weak),
		table.Entry("spaces only", "    ", 0, complexity.VeryWeak),
	)
})

var _ = Describe("HasCommonPattern", func() {
	table.DescribeTable("patterns",
		func(password string, expected bool) {
			Expect(complexity.HasCommonPattern(password)).To(Equal(expected))
		},
		table.Entry("common word", "Password", true),
		table.Entry("common word with suffix", "Dragon2024!", true),
		table.Entry("built-in denylist core", "sunshine99", true),
		table.Entry("few distinct characters", "abababab", true),
		table.Entry("four identical in a row", "xk9Paaaa!", true),
		table.Entry("digit sequence", "xk1234Pq!", true),
		table.Entry("keyboard row", "xkASDFq9!", true),
		table.Entry("cyrillic keyboard row", "зФЫВАq9!", true),
		table.Entry("short digits only", "90817263", true),
		table.Entry("short arabic-indic digits only", "٩٠٨١٧٢٦٣", true),
		table.Entry("long digits only", "908172635401", false),
		table.Entry("three identical in a row", "xk9Paaa!", false),
		table.Entry("random", "Gv7#mQ2!pL9x", false),
	)
})
