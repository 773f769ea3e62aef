package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest of t. It never shares the Path slice with t.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// AllFailures flattens the errors of every failed test into TestFailures.
func (r Results) AllFailures() []TestFailure {
	var ret []TestFailure
	for _, f := range r.Failures {
		for _, err := range f.Errors {
			ret = append(ret, TestFailure{ID: f.TestID, Err: err})
		}
	}
	return ret
}
