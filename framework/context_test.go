package framework

import (
	"fmt"
	"strings"
	"testing"

	"github.com/luno-testing/luno/fixture"
	"github.com/luno-testing/luno/logging"
	"github.com/luno-testing/luno/predicate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
	debug  map[string]logging.CapturedOutput
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput logging.CapturedOutput) {
	r.events = append(r.events, fmt.Sprintf("finished %s failed=%t", id, failed))
	if r.debug == nil {
		r.debug = make(map[string]logging.CapturedOutput)
	}
	r.debug[id.String()] = debugOutput
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+" "+reason)
}

func TestPassingSubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("b", func(c *Context) {})
		})
	})

	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 3)
	assert.Equal(t, []string{
		"started a",
		"started a/b",
		"finished a/b failed=false",
		"finished a failed=false",
	}, logger.events)
}

func TestRequireStopsOnlyTheCurrentTest(t *testing.T) {
	var reachedAfterFailure, ranNextTest bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("failing", func(c *Context) {
			predicate.Require(c, predicate.And(1, 0))
			reachedAfterFailure = true
		})
		c.Run("next", func(c *Context) {
			ranNextTest = true
		})
	})

	assert.False(t, reachedAfterFailure)
	assert.True(t, ranNextTest)
	require.Len(t, results.Failures, 1)
	failure := results.Failures[0]
	assert.Equal(t, "failing", failure.TestID.String())
	require.Len(t, failure.Errors, 1)
	assert.Contains(t, failure.Errors[0].Error(), "Predicate failure in context_test.go at line")
	assert.Contains(t, failure.Errors[0].Error(), "( 1 && 0 )")
}

func TestErrorfDoesNotStopTheTest(t *testing.T) {
	var continued bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("soft", func(c *Context) {
			assert.True(c, false)
			continued = true
			assert.True(c, c.Failed())
		})
	})

	assert.True(t, continued)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
}

func TestUnexpectedPanicIsRecorded(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic("oops")
		})
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.True(t, strings.HasPrefix(results.Failures[0].Errors[0].Error(), "unexpected panic in test: oops"))
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent", func(c *Context) { c.FailNow() })
	})

	require.Len(t, results.Failures, 1)
	assert.EqualError(t, results.Failures[0].Errors[0], "test failed with no failure message")
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
			c.Errorf("should not get here")
		})
	})

	assert.True(t, results.OK())
	assert.Contains(t, logger.events, "skipped skipped not today")
	var skipped []string
	for _, r := range results.Tests {
		if r.Skipped {
			skipped = append(skipped, r.TestID.String())
		}
	}
	assert.Equal(t, []string{"skipped"}, skipped)
}

func TestFilter(t *testing.T) {
	var ran []string
	logger := &recordingTestLogger{}
	filter := func(id TestID) bool { return id.String() != "b" }
	Run(filter, logger, func(c *Context) {
		for _, name := range []string{"a", "b", "c"} {
			c.Run(name, func(c *Context) { ran = append(ran, c.ID().String()) })
		}
	})

	assert.Equal(t, []string{"a", "c"}, ran)
	assert.Contains(t, logger.events, "skipped b excluded by filter parameters")
}

func TestCleanupsRunInReverseOrderAfterFailure(t *testing.T) {
	var order []string
	Run(nil, nil, func(c *Context) {
		c.Run("t", func(c *Context) {
			c.Cleanup(func() { order = append(order, "first") })
			c.Cleanup(func() { order = append(order, "second") })
			c.FailNow()
		})
		order = append(order, "after")
	})

	assert.Equal(t, []string{"second", "first", "after"}, order)
}

func TestPanickingCleanupIsRecorded(t *testing.T) {
	var laterCleanupRan bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("t", func(c *Context) {
			c.Cleanup(func() { laterCleanupRan = true })
			c.Cleanup(func() { panic("cleanup broke") })
		})
	})

	assert.True(t, laterCleanupRan)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in cleanup: cleanup broke")
}

func TestFixtureTornDownWhenTestEnds(t *testing.T) {
	var tornDown []int
	results := Run(nil, nil, func(c *Context) {
		c.Run("uses fixture", func(c *Context) {
			f := fixture.NewWithTeardown(
				func() (int, error) { return 1, nil },
				func(v *int) error {
					tornDown = append(tornDown, *v)
					return nil
				},
			).In(c)
			*f.MustGet(c) = 3
			assert.Empty(c, tornDown)
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, []int{3}, tornDown)
}

func TestFixtureSharedAcrossSubtests(t *testing.T) {
	setups := 0
	var seen []int
	Run(nil, nil, func(c *Context) {
		f := fixture.New(func() (int, error) {
			setups++
			return 1, nil
		}).In(c)
		c.Run("modifies", func(c *Context) {
			seen = append(seen, *f.MustGet(c))
			*f.MustGet(c) = 3
		})
		c.Run("follows", func(c *Context) {
			seen = append(seen, *f.MustGet(c))
		})
	})

	assert.Equal(t, 1, setups)
	assert.Equal(t, []int{1, 3}, seen)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	Run(nil, logger, func(c *Context) {
		c.Run("chatty", func(c *Context) {
			c.Debug("value is %d", 5)
			c.DebugLogger().Printf("done")
		})
	})

	out := logger.debug["chatty"]
	require.Len(t, out, 2)
	assert.Equal(t, "value is 5", out[0].Message)
	assert.Equal(t, "done", out[1].Message)
}

func TestAllFailures(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Errorf("one")
			c.Errorf("two")
		})
	})

	failures := results.AllFailures()
	require.Len(t, failures, 2)
	assert.Equal(t, "[x]: one", failures[0].Error())
	assert.Equal(t, "[x]: two", failures[1].Error())
}

func TestTestIDPlusDoesNotAlias(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 4)}
	parent.Path[0] = "p"
	a := parent.Plus("a")
	b := parent.Plus("b")
	assert.Equal(t, "p/a", a.String())
	assert.Equal(t, "p/b", b.String())
}
