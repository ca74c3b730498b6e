package denylist

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("the built-in list", func() {
	It("ships roughly a hundred lowercase passwords", func() {
		Expect(len(commonPasswords)).To(BeNumerically(">=", 90))

		for pw := range commonPasswords {
			Expect(pw).To(Equal(strings.ToLower(pw)))
			Expect(IsCommon(pw)).To(BeTrue(), pw)
		}
	})
})
