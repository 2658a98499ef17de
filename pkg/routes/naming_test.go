package routes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

func TestLocaleRouteName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strategy locale.Strategy
		code     string
		expected string
	}{
		{name: "non default", strategy: locale.PrefixAndDefault, code: "fr", expected: "about___fr"},
		{name: "default under prefix_and_default", strategy: locale.PrefixAndDefault, code: "en", expected: "about___en___default"},
		{name: "default under prefix_except_default", strategy: locale.PrefixExceptDefault, code: "en", expected: "about___en"},
		{name: "default under prefix", strategy: locale.Prefix, code: "en", expected: "about___en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, routes.LocaleRouteName("about", tt.code, baseOptions(tt.strategy)))
		})
	}

	opts := baseOptions(locale.PrefixAndDefault)
	opts.RoutesNameSeparator = "--"
	opts.DefaultLocaleRouteNameSuffix = "root"
	require.Equal(t, "about--en--root", routes.LocaleRouteName("about", "en", opts))
}

func TestBaseNameAndLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		locale string
	}{
		{name: "blog-slug___fr", base: "blog-slug", locale: "fr"},
		{name: "index___en___default", base: "index", locale: "en"},
		{name: "plain", base: "plain", locale: ""},
		{name: "", base: "", locale: ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.base, routes.BaseName(tt.name, "___"), tt.name)
		require.Equal(t, tt.locale, routes.LocaleFromName(tt.name, "___"), tt.name)
	}

	require.True(t, routes.IsDefaultVariant("index___en___default", "___", "default"))
	require.False(t, routes.IsDefaultVariant("index___en", "___", "default"))
}

func TestLoadNodes(t *testing.T) {
	t.Parallel()

	src := `
- name: index
  path: /
- name: about
  path: /about
  alias: /about-us
  meta:
    title: About
- name: users
  path: /users
  alias: [/people, /members]
  children:
    - name: users-id
      path: ":id()"
- name: old
  path: /old
  redirect: /about
`
	nodes, err := routes.LoadNodes(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	require.Equal(t, routes.Aliases{"/about-us"}, nodes[1].Alias)
	require.Equal(t, "About", nodes[1].Meta["title"])
	require.Equal(t, routes.Aliases{"/people", "/members"}, nodes[2].Alias)
	require.Equal(t, ":id()", nodes[2].Children[0].Path)
	require.Equal(t, "/about", nodes[3].Redirect)

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		nodes, err := routes.LoadNodes(strings.NewReader(`[{"name":"index","path":"/","children":[{"name":"child","path":"c"}]}]`))
		require.NoError(t, err)
		require.Equal(t, "c", nodes[0].Children[0].Path)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		nodes, err := routes.LoadNodes(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, nodes)
	})

	t.Run("bad alias", func(t *testing.T) {
		t.Parallel()
		_, err := routes.LoadNodes(strings.NewReader("- path: /a\n  alias: {x: y}\n"))
		require.Error(t, err)
	})
}
