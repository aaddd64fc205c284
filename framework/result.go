package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
	Group   bool // true if the test ran subtests of its own
}

// counted is false for groups that only contained other tests, so that summaries count tests
// rather than tree nodes. A group that failed in its own right is still counted.
func (r TestResult) counted() bool {
	return !r.Group || len(r.Errors) > 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest of this test.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func countResults(results []TestResult) int {
	n := 0
	for _, r := range results {
		if r.counted() {
			n++
		}
	}
	return n
}

// PrintResults writes a summary of a test run: the number of tests that ran, and the ID and
// errors of every test that failed. Groups are not counted unless they failed themselves.
func PrintResults(w io.Writer, results Results) {
	skipped := countResults(results.Skipped)
	ran := countResults(results.Tests) - skipped
	if results.OK() {
		color.New(color.FgGreen).Fprintf(w, "All tests passed (%d run, %d skipped)\n", ran, skipped)
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(w, "FAILED TESTS (%d of %d run, %d skipped):\n",
		countResults(results.Failures), ran, skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(w, "  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
}
