package parser

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdwit/sitecfg/internal/site"
	"github.com/mdwit/sitecfg/internal/validate"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseVuePressConfig(t *testing.T) {
	cfg, err := Parse(context.Background(), filepath.Join("testdata", "config.js"), nil)
	require.NoError(t, err)

	if diff := cmp.Diff(site.Default(), *cfg); diff != "" {
		t.Errorf("config.js mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `title: Laravel
description: Aprende a utilizar Laravel en tus proyectos web
base: /tutorial-laravel/
locales:
  /:
    lang: es-ES
themeConfig:
  nav:
    - text: Guía
      link: /
  sidebar:
    - /
    - /bases-datos/
`)

	cfg, err := Parse(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/tutorial-laravel/", cfg.Base)
	assert.Equal(t, []string{"/", "/bases-datos/"}, cfg.ThemeConfig.Sidebar)
	require.Len(t, cfg.Locales, 1)
	assert.Equal(t, "es-ES", cfg.Locales["/"].Lang)
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, "site.json", `{
		"title": "Laravel",
		"description": "",
		"base": "/tutorial-laravel/",
		"locales": {"/": {"lang": "es-ES"}},
		"themeConfig": {
			"nav": [{"text": "Youtube", "link": "https://youtube.com/bluuweb"}],
			"sidebar": ["/", "/bases-datos/"]
		}
	}`)

	cfg, err := Parse(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/bluuweb", cfg.ThemeConfig.Nav[0].Link)
	assert.Len(t, cfg.ThemeConfig.Sidebar, 2)
}

func TestParseFormatOverride(t *testing.T) {
	path := writeFile(t, "siteconfig", `{"title":"T","description":"","base":"/","locales":{},"themeConfig":{"nav":[],"sidebar":["/"]}}`)

	_, err := Parse(context.Background(), path, nil)
	assert.Error(t, err)

	cfg, err := Parse(context.Background(), path, &ParseOptions{Format: site.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, "T", cfg.Title)
}

func TestParseFromURL(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "config.js"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config":
			w.Header().Set("Content-Type", "application/javascript")
			_, _ = w.Write(body)
		case "/huge.json":
			_, _ = w.Write(bytes.Repeat([]byte(" "), maxRemoteSize+1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg, err := Parse(context.Background(), srv.URL+"/config", nil)
	require.NoError(t, err)
	assert.Equal(t, "Laravel", cfg.Title)

	_, err = Parse(context.Background(), srv.URL+"/missing.js", nil)
	assert.ErrorContains(t, err, "404")

	// ровно на байт больше лимита
	_, err = Parse(context.Background(), srv.URL+"/huge.json", nil)
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)
}

func TestParseRejectsUnknownField(t *testing.T) {
	data := []byte(`{"title":"T","description":"","base":"/","locales":{},"themeConfig":{"nav":[],"sidebar":[]},"dest":"dist"}`)

	_, err := ParseBytes(data, site.FormatJSON, nil)
	assert.Error(t, err)

	_, err = ParseBytes(data, site.FormatJSON, &ParseOptions{SkipValidation: true})
	assert.Error(t, err, "strict decoding applies even without validation")
}

func TestParseReportsInvariantViolations(t *testing.T) {
	// по схеме документ корректен, но тег языка не существует
	data := []byte(`{"title":"T","description":"","base":"/","locales":{"/":{"lang":"xx-notalang"}},"themeConfig":{"nav":[],"sidebar":["/"]}}`)

	_, err := ParseBytes(data, site.FormatJSON, nil)
	require.Error(t, err)

	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `locales["/"].lang`, verr.Errors()[0].Field)

	cfg, err := ParseBytes(data, site.FormatJSON, &ParseOptions{SkipValidation: true})
	require.NoError(t, err)
	assert.Equal(t, "xx-notalang", cfg.RootLang())
}

func TestParseYAMLMultipleDocuments(t *testing.T) {
	_, err := ParseBytes([]byte("title: a\n---\ntitle: b\n"), site.FormatYAML, nil)
	assert.ErrorContains(t, err, "multiple documents")
}

func TestExampleScenario(t *testing.T) {
	src := `module.exports = {
  title: 'Laravel',
  description: '',
  base: '/tutorial-laravel/',
  locales: { '/': { lang: 'es-ES' } },
  themeConfig: { nav: [], sidebar: ['/', '/bases-datos/'] },
}`
	cfg, err := ParseBytes([]byte(src), site.FormatJS, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/bases-datos/"}, cfg.ThemeConfig.Sidebar)
	assert.Equal(t, map[string]site.Locale{"/": {Lang: "es-ES"}}, cfg.Locales)
	assert.Equal(t, "/tutorial-laravel/", cfg.Base)
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://example.com/config.js", true},
		{"http://localhost:8080/config.yml", true},
		{"./docs/.vuepress/config.js", false},
		{"/path/to/config.json", false},
		{"config.js", false},
	}

	for _, tt := range tests {
		result := isURL(tt.input)
		if result != tt.expected {
			t.Errorf("isURL(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}
