package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Laravel", cfg.Title)
	assert.Equal(t, "/tutorial-laravel/", cfg.Base)
	assert.Equal(t, "es-ES", cfg.RootLang())
	require.Len(t, cfg.Locales, 1)

	require.Len(t, cfg.ThemeConfig.Nav, 2)
	assert.Equal(t, NavItem{Text: "Guía", Link: "/"}, cfg.ThemeConfig.Nav[0])
	assert.True(t, cfg.ThemeConfig.Nav[1].IsExternal())

	assert.Equal(t, []string{
		"/", "/bases-datos/", "/auth/", "/vue/",
		"/trucos/", "/db-relacional/", "/factorias/", "/api-rest/",
	}, cfg.ThemeConfig.Sidebar)
}

func TestCloneIsDeep(t *testing.T) {
	orig := Default()
	clone := orig.Clone()

	clone.Locales["/en/"] = Locale{Lang: "en-US"}
	clone.ThemeConfig.Nav[0].Text = "Guide"
	clone.ThemeConfig.Sidebar[1] = "/changed/"

	assert.Len(t, orig.Locales, 1)
	assert.Equal(t, "Guía", orig.ThemeConfig.Nav[0].Text)
	assert.Equal(t, "/bases-datos/", orig.ThemeConfig.Sidebar[1])
}

func TestLocalePrefixesSorted(t *testing.T) {
	cfg := Config{Locales: map[string]Locale{
		"/zh/": {Lang: "zh-CN"},
		"/":    {Lang: "es-ES"},
		"/en/": {Lang: "en-US"},
	}}
	assert.Equal(t, []string{"/", "/en/", "/zh/"}, cfg.LocalePrefixes())
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		base, path, expected string
	}{
		{"/tutorial-laravel/", "/", "/tutorial-laravel/"},
		{"/tutorial-laravel/", "/auth/", "/tutorial-laravel/auth/"},
		{"/", "/vue/", "/vue/"},
		{"", "/vue/", "/vue/"},
	}

	for _, tt := range tests {
		cfg := Config{Base: tt.base}
		assert.Equal(t, tt.expected, cfg.PageURL(tt.path), "base=%q path=%q", tt.base, tt.path)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"js", FormatJS, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("docs/.vuepress/config.js")
	require.NoError(t, err)
	assert.Equal(t, FormatJS, f)
	assert.Equal(t, "config.js", f.Filename())

	f, err = FormatFromPath("site.yml")
	require.NoError(t, err)
	assert.Equal(t, "config.yml", f.Filename())

	_, err = FormatFromPath("Makefile")
	assert.Error(t, err)
}
