package framework

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single test or group of tests. It implements require.TestingT, so
// assertions from testify's assert and require packages can be made against it directly.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	subtests    int
	errors      []error
	cleanups    []func()
}

// Run executes a tree of tests and returns the accumulated results. The action is called with a
// root Context whose ID is empty; it should call Context.Run for each test.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		c.runCleanups()
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped, Group: c.subtests > 0}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
		if c.skipped {
			c.env.results.Skipped = append(c.env.results.Skipped, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
}

// Run runs a subtest. Subtests always run in the order they are declared, and a failure in one
// does not prevent the next one from running.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)
	c.subtests++

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		reason := "excluded by filter parameters"
		result := TestResult{TestID: id, Skipped: true}
		c.env.results.Tests = append(c.env.results.Tests, result)
		c.env.results.Skipped = append(c.env.results.Skipped, result)
		c.env.testLogger.TestSkipped(id, reason)
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := reformatError(fmt.Errorf(format, args...))
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow stops the test immediately. The methods in testify's require package call it.
func (c *Context) FailNow() {
	panic(c)
}

// Skip stops the test immediately and reports it as skipped rather than failed.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test ends, whether or not it failed. Deferred
// functions run in reverse order.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

var testifyLabel = regexp.MustCompile(`^(Error Trace|Error|Test|Messages):`)

// reformatError strips testify's "Error Trace" section, which only ever points into the suite's
// own helper methods, and the indentation testify puts before each line.
func reformatError(err error) error {
	var kept []string
	inTrace := false
	for _, line := range strings.Split(err.Error(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := testifyLabel.FindStringSubmatch(trimmed); m != nil {
			inTrace = m[1] == "Error Trace"
		}
		if inTrace {
			continue
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == 0 {
		return err
	}
	return errors.New(strings.Join(kept, "\n"))
}
