package framework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.events = append(r.events, fmt.Sprintf("finished %s failed=%t debug=%d", id, failed, len(debugOutput)))
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+": "+reason)
}

func resultIDs(results []TestResult) []string {
	var ret []string
	for _, r := range results {
		ret = append(ret, r.TestID.String())
	}
	return ret
}

func TestRunRecordsResultsInDeclaredOrder(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("one", func(c *Context) {})
			c.Run("two", func(c *Context) {
				c.Debug("something %d", 2)
			})
		})
		c.Run("b", func(c *Context) {})
	})

	assert.True(t, results.OK())
	assert.Equal(t, []string{"a/one", "a/two", "a", "b"}, resultIDs(results.Tests))
	assert.True(t, results.Tests[2].Group)
	assert.False(t, results.Tests[3].Group)
	assert.Equal(t, []string{
		"started a",
		"started a/one",
		"finished a/one failed=false debug=0",
		"started a/two",
		"finished a/two failed=false debug=1",
		"finished a failed=false debug=0",
		"started b",
		"finished b failed=false debug=0",
	}, logger.events)
}

func TestErrorfDoesNotStopTestButFailNowDoes(t *testing.T) {
	var reachedAfterErrorf, reachedAfterFailNow, siblingRan bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("failing", func(c *Context) {
			assert.Equal(c, 1, 2)
			reachedAfterErrorf = true
			require.Equal(c, 1, 2)
			reachedAfterFailNow = true
		})
		c.Run("sibling", func(c *Context) {
			siblingRan = true
		})
	})

	assert.True(t, reachedAfterErrorf)
	assert.False(t, reachedAfterFailNow)
	assert.True(t, siblingRan)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "failing", results.Failures[0].TestID.String())
	assert.Len(t, results.Failures[0].Errors, 2)
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent", func(c *Context) {
			c.FailNow()
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestUnexpectedPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	var reachedAfterSkip bool
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
			reachedAfterSkip = true
		})
	})

	assert.False(t, reachedAfterSkip)
	assert.True(t, results.OK())
	assert.Equal(t, []string{"skipped"}, resultIDs(results.Skipped))
	assert.Contains(t, logger.events, "skipped skipped: not today")
}

func TestFilterExcludesTests(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "a/excluded" }
	results := Run(filter, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("included", func(c *Context) { ran = append(ran, "included") })
			c.Run("excluded", func(c *Context) { ran = append(ran, "excluded") })
		})
	})

	assert.Equal(t, []string{"included"}, ran)
	assert.Equal(t, []string{"a/excluded"}, resultIDs(results.Skipped))
}

func TestDeferredFunctionsRunInReverseOrderEvenOnFailure(t *testing.T) {
	var order []string
	Run(nil, nil, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { order = append(order, "first") })
			c.Defer(func() { order = append(order, "second") })
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestTestIDPlusDoesNotShareBackingArray(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 10)}
	parent.Path[0] = "parent"
	a := parent.Plus("a")
	b := parent.Plus("b")
	assert.Equal(t, "parent/a", a.String())
	assert.Equal(t, "parent/b", b.String())
}

func TestReformatErrorDropsTestifyTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\tapi.go:12\n\t            \t\t\t\tsuite.go:30\n" +
		"\tError:      \tNot equal: \n\t            \texpected: 200\n\t            \tactual  : 404\n" +
		"\tMessages:   \twrong status\n")
	assert.Equal(t, "Error:      \tNot equal:\nexpected: 200\nactual  : 404\nMessages:   \twrong status",
		reformatError(err).Error())
}
