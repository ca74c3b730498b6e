package denylist_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/lagertest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/pwaudit/pwaudit/denylist"
)

var _ = Describe("Cache", func() {
	var (
		logger  *lagertest.TestLogger
		tempDir string
		path    string
		cache   *denylist.Cache
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("denylist")

		var err error
		tempDir, err = ioutil.TempDir("", "denylist-cache")
		Expect(err).NotTo(HaveOccurred())

		path = filepath.Join(tempDir, "breached.txt")
	})

	JustBeforeEach(func() {
		cache = denylist.NewCache(path)
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Context("when the store does not exist", func() {
		It("loads as empty", func() {
			Expect(cache.Load(logger)).To(Succeed())
			Expect(cache.Len()).To(Equal(0))
			Expect(cache.Contains(logger, "anything")).To(BeFalse())
		})

		It("creates the store on the first append", func() {
			Expect(cache.Add(logger, "hunter22")).To(Succeed())

			contents, err := ioutil.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("hunter22\n"))
		})
	})

	Context("when the store has entries", func() {
		BeforeEach(func() {
			err := ioutil.WriteFile(path, []byte("first\r\n\nsecond\n"), 0600)
			Expect(err).NotTo(HaveOccurred())
		})

		It("loads them lazily", func() {
			Expect(cache.Contains(logger, "first")).To(BeTrue())
			Expect(cache.Contains(logger, "second")).To(BeTrue())
			Expect(cache.Len()).To(Equal(2))
		})

		It("is case sensitive", func() {
			Expect(cache.Contains(logger, "FIRST")).To(BeFalse())
		})

		It("appends rather than rewriting", func() {
			Expect(cache.Add(logger, "third")).To(Succeed())

			contents, err := ioutil.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("first\r\n\nsecond\nthird\n"))
		})

		It("does not append a password it already holds", func() {
			Expect(cache.Add(logger, "second")).To(Succeed())

			contents, err := ioutil.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("first\r\n\nsecond\n"))
		})

		It("sees appended passwords in a fresh cache", func() {
			Expect(cache.Add(logger, "third")).To(Succeed())

			reloaded := denylist.NewCache(path)
			Expect(reloaded.Contains(logger, "third")).To(BeTrue())
		})
	})

	Context("when the store cannot be written", func() {
		BeforeEach(func() {
			path = filepath.Join(tempDir, "not-a-dir", "breached.txt")
			Expect(ioutil.WriteFile(filepath.Join(tempDir, "not-a-dir"), []byte("file"), 0600)).To(Succeed())
		})

		It("returns the error but still remembers the password", func() {
			Expect(cache.Add(logger, "hunter22")).NotTo(Succeed())
			Expect(cache.Contains(logger, "hunter22")).To(BeTrue())
		})
	})

	Context("without a store", func() {
		BeforeEach(func() {
			path = ""
		})

		It("keeps entries in memory", func() {
			Expect(cache.Add(logger, "hunter22")).To(Succeed())
			Expect(cache.Contains(logger, "hunter22")).To(BeTrue())
		})
	})

	It("refuses passwords that would break the line format", func() {
		Expect(cache.Add(logger, "two\nlines")).NotTo(Succeed())
		Expect(cache.Add(logger, "")).NotTo(Succeed())
	})
})
