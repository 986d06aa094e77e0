package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	for _, in := range []string{"", "   ", "?x=1", "#frag", "/", "http://example.com", "http://example.com/?q=1#top", "./"} {
		got, err := Resolve(in)
		require.NoError(t, err, in)
		assert.Equal(t, DefaultPage, got, in)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	for _, in := range []string{
		"../x",
		"..",
		"../../etc/passwd",
		"a/../../b",
		"a/../../etc/passwd",
		"/../secret.html",
		"http://example.com/../../etc/passwd",
		"%2e%2e/secret.html",
		"foo:../secret.html",
	} {
		_, err := Resolve(in)
		assert.ErrorIs(t, err, ErrInvalidPath, in)
	}
}

func TestResolvePaths(t *testing.T) {
	cases := map[string]string{
		"http://example.com/foo/bar.html?x=1":      "foo/bar.html",
		"https://host:8080/generated/p.html#frag": "generated/p.html",
		"generated/page-1.html":                    "generated/page-1.html",
		"generated/page-123.html":                  "generated/page-123.html",
		"/playground.html":                         "playground.html",
		"///a//b/./c.html":                         "a/b/c.html",
		"a/../b.html":                              "b.html",
		"  index.html?v=2  ":                       "index.html",
		"..foo.html":                               "..foo.html",
		"a%3Fb.html":                               "a?b.html",
		"foo%23x.html?y=1":                         "foo#x.html",
		"/docs/my%20page.html":                     "docs/my page.html",
		"foo:bar.html":                             "bar.html",
	}
	for in, want := range cases {
		got, err := Resolve(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestResolveIdempotent(t *testing.T) {
	for _, in := range []string{"foo/bar.html", "http://example.com/a/./b.html", "", "x//y.html"} {
		first, err := Resolve(in)
		require.NoError(t, err)
		second, err := Resolve(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
