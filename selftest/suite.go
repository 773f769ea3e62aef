package selftest

import (
	"github.com/luno-testing/luno/framework"
)

// RunSuite runs every self test that passes filter.
func RunSuite(
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Run("fixture", DoFixtureTests)
		c.Run("predicate", DoPredicateTests)
	})
}
