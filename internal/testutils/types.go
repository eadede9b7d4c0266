// Package testutils holds helpers shared by the asset driven tests.
package testutils

// TestingT is the subset of testing.TB the helpers need.
type TestingT interface {
	Helper()
	Logf(format string, args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
}
