package storytests

import (
	"github.com/storyspoiler/story-contract-tests/client"
	"github.com/storyspoiler/story-contract-tests/config"
	"github.com/storyspoiler/story-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

// session is the state shared by every test in one run of the suite. The story ID is written
// by the story creation test and read by the tests after it, which is why the tests must run in
// the order they are declared.
type session struct {
	client  *client.APIClient
	config  config.Config
	storyID string
	deleted bool
}

// T represents a test or subtest in the Story API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T, or the Story-specific assertion methods on T.
type T struct {
	context *framework.Context
	session *session
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T, except that subtests
// share the session of their parent.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, session: t.session})
	})
}

// Defer schedules a function to run when the test ends, even if the test failed. It must not call
// assertions; a cleanup that fails should only log with Debug.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// SkipWithReason stops the test immediately and reports it as skipped.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Config() config.Config {
	return t.session.config
}

// Client returns the API client, set up to write its request log to this test's debug output.
func (t *T) Client() *client.APIClient {
	return t.session.client.WithLogger(t.context.DebugLogger())
}

func (t *T) setStoryID(id string) {
	t.Debug("Captured story ID %q", id)
	t.session.storyID = id
	t.session.deleted = false
}

// RequireStoryID returns the ID of the story created earlier in the run. If there is none,
// because creation failed or was skipped, the test fails and immediately exits.
func (t *T) RequireStoryID() string {
	require.NotEmpty(t, t.session.storyID, "story ID should not be empty; was the story created?")
	return t.session.storyID
}

// Get, Post, Put and Delete send a request to the API. A transport error fails the test and
// immediately exits; any HTTP status is returned for the test to check.

func (t *T) Get(path string) client.Response {
	resp, err := t.Client().Get(path)
	require.NoError(t, err)
	return resp
}

func (t *T) Post(path string, body interface{}) client.Response {
	resp, err := t.Client().Post(path, body)
	require.NoError(t, err)
	return resp
}

func (t *T) Put(path string, body interface{}) client.Response {
	resp, err := t.Client().Put(path, body)
	require.NoError(t, err)
	return resp
}

func (t *T) Delete(path string) client.Response {
	resp, err := t.Client().Delete(path)
	require.NoError(t, err)
	return resp
}
