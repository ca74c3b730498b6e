package matchers_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/pwaudit/pwaudit/complexity/matchers"
)

var _ = Describe("Substring", func() {
	var matcher matchers.Matcher

	BeforeEach(func() {
		matcher = matchers.Substring("1234")
	})

	It("returns the bounds of the first occurrence", func() {
		matched, start, end := matcher.Match([]byte("abc12345"))
		Expect(matched).To(BeTrue())
		Expect(start).To(Equal(3))
		Expect(end).To(Equal(7))
	})

	It("returns false when the substring is absent", func() {
		matched, _, _ := matcher.Match([]byte("abc123"))
		Expect(matched).To(BeFalse())
	})
})

var _ = Describe("Exact", func() {
	It("only matches the whole candidate", func() {
		matcher := matchers.Exact("admin", "hello")

		matched, _, end := matcher.Match([]byte("hello"))
		Expect(matched).To(BeTrue())
		Expect(end).To(Equal(5))

		matched, _, _ = matcher.Match([]byte("hello!"))
		Expect(matched).To(BeFalse())
	})
})
