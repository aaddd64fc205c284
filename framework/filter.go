package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by name the same way "go test -run" and "go test -skip" do: each
// pattern is split on slashes, and the Nth element must match the Nth element of the test path.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatchPrefix(id.Path)) &&
		!r.MustNotMatch.anyMatchFull(id.Path)
}

type RegexList struct {
	sources  []string
	patterns [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, s := range r.sources {
		ss = append(ss, `"`+s+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	var elements []*regexp.Regexp
	for _, part := range strings.Split(value, "/") {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		elements = append(elements, rx)
	}
	r.sources = append(r.sources, value)
	r.patterns = append(r.patterns, elements)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// anyMatchPrefix is true if some pattern matches every element of path that it has an element for.
// A test group therefore runs if any of its subtests could match.
func (r RegexList) anyMatchPrefix(path []string) bool {
	for _, elements := range r.patterns {
		matched := true
		for i, name := range path {
			if i >= len(elements) {
				break
			}
			if !elements[i].MatchString(name) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// anyMatchFull is true if some pattern has all of its elements matched by path.
func (r RegexList) anyMatchFull(path []string) bool {
	for _, elements := range r.patterns {
		if len(path) < len(elements) {
			continue
		}
		matched := true
		for i, rx := range elements {
			if !rx.MatchString(path[i]) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func PrintFilterDescription(w io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(w)
	}
}
