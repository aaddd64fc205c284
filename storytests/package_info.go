// Package storytests contains the Story API contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the Story API, such as test contexts,
// filtering, and result reporting, is in the lower-level framework package.
package storytests
