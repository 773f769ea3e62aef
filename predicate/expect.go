package predicate

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Failure is the error produced when a predicate evaluates to false.
type Failure struct {
	Filename   string
	Line       int
	Expression string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("Predicate failure in %s at line %d: %s", f.Filename, f.Line, f.Expression)
}

// Expect evaluates p and returns a *Failure describing it if it is false, or nil if it is
// true. The filename and line are reported as given.
func Expect(p Predicate, filename string, line int) error {
	if Eval(p) {
		return nil
	}
	return &Failure{
		Filename:   filename,
		Line:       line,
		Expression: Render(p),
	}
}

// Require checks p and, if it is false, fails the test and stops it immediately, the same
// way the methods of testify's require package do. The reported location is the line that
// called Require.
func Require(t require.TestingT, p Predicate, msgAndArgs ...interface{}) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	filename, line := caller()
	if err := Expect(p, filename, line); err != nil {
		require.Fail(t, err.Error(), msgAndArgs...)
	}
}

// Check is like Require, but lets the test continue after a failure. It returns whether p
// was true.
func Check(t assert.TestingT, p Predicate, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	filename, line := caller()
	if err := Expect(p, filename, line); err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	return true
}

// caller returns the location of the function that called Require or Check.
func caller() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}
