package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID { return TestID{Path: path} }

func TestRegexFiltersWithNoPatternsAcceptEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(id("anything", "at all")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^fixture/"))

	assert.True(t, f.AsFilter(id("fixture", "memoization")))
	assert.False(t, f.AsFilter(id("predicate", "and")))
}

func TestRegexFiltersMustNotMatchWins(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("fixture"))
	require.NoError(t, f.MustNotMatch.Set("server"))

	assert.True(t, f.AsFilter(id("fixture", "clone")))
	assert.False(t, f.AsFilter(id("fixture", "server")))
}

func TestRegexListInvalidPattern(t *testing.T) {
	var r RegexList
	err := r.Set("(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex")
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var r RegexList
	require.NoError(t, r.Set("a"))
	require.NoError(t, r.Set("b+"))
	assert.Equal(t, `"a" or "b+"`, r.String())
	assert.Equal(t, []string{"a", "b+"}, r.Patterns())
	assert.Equal(t, "regex", r.Type())
}

func TestRegexFiltersDescribe(t *testing.T) {
	var buf bytes.Buffer
	var f RegexFilters
	f.Describe(&buf)
	assert.Empty(t, buf.String())

	require.NoError(t, f.MustNotMatch.Set("slow"))
	f.Describe(&buf)
	assert.Contains(t, buf.String(), `skip any matching "slow"`)
	assert.NotContains(t, buf.String(), "not matching")
}
