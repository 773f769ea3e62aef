// Package selftest is a suite that runs the fixture and predicate packages through the
// framework package, the same way a project's own test suite would use them.
//
// It doubles as a usage reference: every test here is written as a caller of the public API.
package selftest
