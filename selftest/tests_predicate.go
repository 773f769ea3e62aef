package selftest

import (
	"errors"
	"fmt"

	"github.com/luno-testing/luno/framework"
	"github.com/luno-testing/luno/predicate"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe is an operand that counts how often it is evaluated.
type probe struct {
	value bool
	seen  int
}

func (p *probe) Bool() bool {
	p.seen++
	return p.value
}

func (p *probe) String() string { return fmt.Sprint(p.value) }

func DoPredicateTests(c *framework.Context) {
	c.Run("truth tables", func(c *framework.Context) {
		for _, left := range []bool{true, false} {
			for _, right := range []bool{true, false} {
				l, r := &probe{value: left}, &probe{value: right}
				assert.Equal(c, left && right, predicate.Eval(predicate.And(l, r)), "%v && %v", left, right)
				assert.Equal(c, left || right, predicate.Eval(predicate.Or(l, r)), "%v || %v", left, right)
				assert.Equal(c, 2, l.seen)
				assert.Equal(c, 2, r.seen, "right side must be evaluated even when left is %v", left)
			}
		}
	})

	c.Run("rendering", func(c *framework.Context) {
		assert.Equal(c, "( 1 && 2 )", predicate.Render(predicate.And(1, 2)))
		assert.Equal(c, "( ( 1 || 0 ) && true )", predicate.Render(predicate.And(predicate.Or(1, 0), true)))
	})

	c.Run("JSON operands", func(c *framework.Context) {
		doc := ldvalue.Parse([]byte(`{"enabled":true,"count":0,"name":"x"}`))
		c.Debug("document: %s", doc)

		predicate.Require(c, predicate.And(doc.GetByKey("enabled"), doc.GetByKey("name")))
		err := predicate.Expect(predicate.And(doc.GetByKey("enabled"), doc.GetByKey("count")), "document.json", 1)
		require.Error(c, err)
		assert.Equal(c, "Predicate failure in document.json at line 1: ( true && 0 )", err.Error())
	})

	c.Run("failure message", func(c *framework.Context) {
		assert.NoError(c, predicate.Expect(predicate.And(1, 2), "main.go", 7))

		err := predicate.Expect(predicate.And(1, 0), "main.go", 7)
		var failure *predicate.Failure
		require.True(c, errors.As(err, &failure))
		assert.Equal(c, "main.go", failure.Filename)
		assert.Equal(c, 7, failure.Line)
		assert.Equal(c, "Predicate failure in main.go at line 7: ( 1 && 0 )", err.Error())
	})
}
