// Package framework contains the test harness infrastructure that is not specific to the
// Story API.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a hierarchical test identifier and to accumulate
// success/failure results, outside of the Go test runner.
//
// 2. Tests run strictly in the order they are declared. A test that fails does not stop its
// siblings from running, so tests may build on state left behind by earlier ones.
//
// 3. Each test has its own debug logger, whose output is handed to the TestLogger when the
// test finishes so that it can be shown only for failed tests.
//
// The domain-specific code that knows what is being tested is responsible for the requests it
// sends and for a domain-specific test API on top of the test context.
package framework
