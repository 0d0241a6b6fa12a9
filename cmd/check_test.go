package cmd_test

import (
	"os"
	"path/filepath"

	"fibonacci/cmd"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const recursiveSource = `package sample

import "fmt"

func Fibonacci(n int) int {
	if n < 1 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return Fibonacci(n-1) + Fibonacci(n-2)
}

func Print(n int) {
	fmt.Println(Fibonacci(n))
}
`

var _ = Describe("Check", func() {
	var dir, source string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		source = filepath.Join(dir, "sample.go")
		Expect(os.WriteFile(source, []byte(recursiveSource), 0644)).To(Succeed())
	})

	It("finds the recursive function", func() {
		lines, run, err := cmd.CheckFile(source)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(ConsistOf(source + ":5:6: function Fibonacci calls itself recursively"))
		Expect(run.Results).To(HaveLen(1))
	})

	It("writes a SARIF report from the command", func() {
		report := filepath.Join(dir, "report.sarif")
		out, err := execute("", "check", "-f", source, "-o", report)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Found 1 recursive functions"))
		Expect(out).To(ContainSubstring("SARIF file written to " + report))

		raw, err := os.ReadFile(report)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring("FIB_RECURSION_001"))
	})

	It("needs an input file", func() {
		_, err := execute("", "check", "-f", "", "-o", "")
		Expect(err).To(MatchError(ContainSubstring("please provide an input file")))
	})

	It("fails on files that do not parse", func() {
		broken := filepath.Join(dir, "broken.go")
		Expect(os.WriteFile(broken, []byte("package broken\nfunc {"), 0644)).To(Succeed())
		_, _, err := cmd.CheckFile(broken)
		Expect(err).To(MatchError(ContainSubstring("parsing")))
	})
})
