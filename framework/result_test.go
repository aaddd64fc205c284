package framework

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintResults(t *testing.T) {
	color.NoColor = true

	t.Run("all passed", func(t *testing.T) {
		var buf bytes.Buffer
		PrintResults(&buf, Results{
			Tests:   []TestResult{{TestID: id("a")}, {TestID: id("b"), Skipped: true}},
			Skipped: []TestResult{{TestID: id("b"), Skipped: true}},
		})
		assert.Equal(t, "All tests passed (1 run, 1 skipped)\n", buf.String())
	})

	t.Run("failures", func(t *testing.T) {
		var buf bytes.Buffer
		failure := TestResult{TestID: id("story/edit story"), Errors: []error{errors.New("line 1\nline 2")}}
		PrintResults(&buf, Results{
			Tests:    []TestResult{{TestID: id("story/create story")}, failure},
			Failures: []TestResult{failure},
		})
		assert.Equal(t, "FAILED TESTS (1 of 2 run, 0 skipped):\n"+
			"  * story/edit story\n"+
			"      line 1\n"+
			"      line 2\n", buf.String())
	})

	t.Run("groups are not counted", func(t *testing.T) {
		var buf bytes.Buffer
		PrintResults(&buf, Results{
			Tests: []TestResult{
				{TestID: id("story/create story")},
				{TestID: id("story/edit story")},
				{TestID: id("story"), Group: true},
				{TestID: id("error paths"), Skipped: true},
			},
			Skipped: []TestResult{{TestID: id("error paths"), Skipped: true}},
		})
		assert.Equal(t, "All tests passed (2 run, 1 skipped)\n", buf.String())
	})

	t.Run("group that failed itself is counted", func(t *testing.T) {
		var buf bytes.Buffer
		group := TestResult{TestID: id("story"), Group: true, Errors: []error{errors.New("broken")}}
		PrintResults(&buf, Results{
			Tests:    []TestResult{{TestID: id("story/create story")}, group},
			Failures: []TestResult{group},
		})
		assert.Equal(t, "FAILED TESTS (1 of 2 run, 0 skipped):\n"+
			"  * story\n"+
			"      broken\n", buf.String())
	})
}

func TestCapturedOutputDump(t *testing.T) {
	when := time.Date(2026, 1, 2, 3, 4, 5, 6000000, time.UTC)
	output := CapturedOutput{{Time: when, Message: "hello"}}
	var buf bytes.Buffer
	output.Dump(&buf, "  DEBUG ")
	assert.Equal(t, "  DEBUG [2026-01-02 03:04:05.006] hello\n", buf.String())
}

func TestWithPrefix(t *testing.T) {
	var target CapturingLogger
	WithPrefix(&target, "[mock] ").Printf("got %d", 3)
	out := target.Output()
	if assert.Len(t, out, 1) {
		assert.Equal(t, "[mock] got 3", out[0].Message)
	}
}
