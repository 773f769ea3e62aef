// Package framework runs test bodies outside of the Go test runner.
//
// The general model is:
//
// 1. Run creates a root Context and calls a function with it. That function calls
// Context.Run for each test, which may in turn call Run for subtests. Tests run one at a
// time, in the order they are started.
//
// 2. A Context is similar to Go's *testing.T. It can be passed to testify's assert and
// require functions, to predicate.Require, and to fixture.Fixture.In so that the fixture is
// torn down when the test ends.
//
// 3. A fatal failure stops only the current test body. It is recorded in the Results, and
// the enclosing test continues with its next subtest.
package framework
