package selftest

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/luno-testing/luno/fixture"
	"github.com/luno-testing/luno/framework"
	"github.com/luno-testing/luno/predicate"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoFixtureTests(c *framework.Context) {
	c.Run("setup runs once", func(c *framework.Context) {
		setups := 0
		f := fixture.New(func() (int, error) {
			setups++
			return 1, nil
		}).In(c)

		first := f.MustGet(c)
		second := f.MustGet(c)
		assert.Same(c, first, second)
		assert.Equal(c, 1, setups)
	})

	c.Run("fixed value", func(c *framework.Context) {
		f := fixture.Of(2).In(c)
		assert.Equal(c, 2, *f.MustGet(c))

		vector := fixture.Of([]int{1, 2, 3, 4}).In(c)
		assert.Equal(c, []int{1, 2, 3, 4}, *vector.MustGet(c))
	})

	c.Run("mutation persists", func(c *framework.Context) {
		f := fixture.New(func() (int, error) { return 1, nil }).In(c)
		*f.MustGet(c) = 3
		assert.Equal(c, 3, *f.MustGet(c))
	})

	c.Run("shared between tests", func(c *framework.Context) {
		var tornDown []int
		f := fixture.NewWithTeardown(
			func() (int, error) { return 1, nil },
			func(v *int) error {
				tornDown = append(tornDown, *v)
				return nil
			},
		).Named("shared").WithLogger(c.DebugLogger())

		c.Run("modifies", func(c *framework.Context) {
			assert.Equal(c, 1, *f.MustGet(c))
			*f.MustGet(c) = 3
		})
		c.Run("sees modification", func(c *framework.Context) {
			assert.Equal(c, 3, *f.MustGet(c))
		})

		require.NoError(c, f.Close())
		assert.Equal(c, []int{3}, tornDown)
	})

	c.Run("clone is independent", func(c *framework.Context) {
		f := fixture.New(func() (int, error) { return 1, nil }).In(c)
		*f.MustGet(c) = 5
		clone := f.Clone().In(c)
		assert.Equal(c, 1, *clone.MustGet(c))
		assert.Equal(c, 5, *f.MustGet(c))
	})

	c.Run("unused fixture is not torn down", func(c *framework.Context) {
		tornDown := false
		f := fixture.NewWithTeardown(
			func() (int, error) { return 1, nil },
			func(*int) error {
				tornDown = true
				return nil
			},
		)
		require.NoError(c, f.Close())
		assert.False(c, tornDown)
	})

	c.Run("setup error", func(c *framework.Context) {
		setupErr := errors.New("unavailable")
		f := fixture.New(func() (string, error) { return "", setupErr })
		_, err := f.Get()
		assert.Equal(c, setupErr, err)
		assert.Equal(c, fixture.Uninitialized, f.State())
	})

	c.Run("HTTP server", func(c *framework.Context) {
		handler, requestsCh := httphelpers.RecordingHandler(
			httphelpers.HandlerWithResponse(http.StatusOK, nil, []byte("hello")),
		)
		server := fixture.NewWithTeardown(
			func() (*httptest.Server, error) { return httptest.NewServer(handler), nil },
			func(s **httptest.Server) error {
				(*s).Close()
				return nil
			},
		).Named("server").WithLogger(c.DebugLogger()).In(c)

		for i := 0; i < 3; i++ {
			resp, err := http.Get((*server.MustGet(c)).URL)
			require.NoError(c, err)
			resp.Body.Close()
			predicate.Require(c, predicate.And(resp.StatusCode == http.StatusOK, resp.ContentLength))
		}
		assert.Equal(c, 3, len(requestsCh))
	})
}
