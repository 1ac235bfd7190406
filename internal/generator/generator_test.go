package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mdwit/sitecfg/internal/config"
	"github.com/mdwit/sitecfg/internal/content"
	"github.com/mdwit/sitecfg/internal/parser"
	"github.com/mdwit/sitecfg/internal/site"
)

func TestGenerate(t *testing.T) {
	s := site.Default()
	tmpDir := t.TempDir()
	cfg := &config.Config{
		Output:      tmpDir,
		Format:      "js",
		DocsBaseURL: "https://bluuweb.github.io/",
		LLMs:        true,
	}

	pages := []content.Page{
		{Path: "/", Title: "Guía"},
		{Path: "/bases-datos/", Title: "Bases de datos"},
	}

	gen := New(cfg, &s, pages)
	if err := gen.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Проверяем что файлы созданы
	configPath := filepath.Join(tmpDir, "config.js")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config.js not created")
	}

	llmsPath := filepath.Join(tmpDir, "llms.txt")
	llmsContent, err := os.ReadFile(llmsPath)
	if err != nil {
		t.Fatalf("Failed to read llms.txt: %v", err)
	}
	llms := string(llmsContent)

	for _, want := range []string{
		"# Laravel\n",
		"> Aprende a utilizar Laravel en tus proyectos web",
		"Language: es-ES",
		"Base URL: `https://bluuweb.github.io/tutorial-laravel/`",
		"- [Guía](https://bluuweb.github.io/tutorial-laravel/)\n",
		"- [Bases de datos](https://bluuweb.github.io/tutorial-laravel/bases-datos/)\n",
		"## Links\n\n- [Youtube](https://youtube.com/bluuweb)\n",
	} {
		if !strings.Contains(llms, want) {
			t.Errorf("llms.txt missing %q\n%s", want, llms)
		}
	}
}

func TestGenerateWithoutLLMs(t *testing.T) {
	s := site.Default()
	tmpDir := t.TempDir()
	cfg := &config.Config{Output: filepath.Join(tmpDir, "nested", ".vuepress"), Format: "yaml"}

	if err := New(cfg, &s, nil).Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Output, "config.yml")); err != nil {
		t.Errorf("config.yml not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output, "llms.txt")); !os.IsNotExist(err) {
		t.Error("llms.txt must not be written when disabled")
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	s := site.Default()
	cfg := &config.Config{Output: t.TempDir(), Format: "toml"}
	if err := New(cfg, &s, nil).Generate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLLMsUsesSidebarTitlesWithoutDocs(t *testing.T) {
	s := site.Default()
	cfg := &config.Config{}
	gen := New(cfg, &s, nil)

	result := gen.generateLLMs()

	if !strings.Contains(result, "- [Db Relacional](/tutorial-laravel/db-relacional/)") {
		t.Errorf("Missing derived page title:\n%s", result)
	}
	if !strings.Contains(result, "Base URL: `/tutorial-laravel/`") {
		t.Errorf("Missing relative base URL:\n%s", result)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	want := site.Default()
	want.Locales["/en/"] = site.Locale{Lang: "en-US"}
	want.ThemeConfig.Nav = append(want.ThemeConfig.Nav, site.NavItem{Text: "It's \"quoted\"\\", Link: "/docs/"})

	for _, format := range site.Formats {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Render(want, format)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			got, err := parser.ParseBytes(data, format, nil)
			if err != nil {
				t.Fatalf("ParseBytes failed: %v\n%s", err, data)
			}
			if diff := cmp.Diff(want, *got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderEmptyCollections(t *testing.T) {
	s := site.Config{Title: "T", Base: "/"}

	for _, format := range site.Formats {
		data, err := Render(s, format)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", format, err)
		}
		if strings.Contains(string(data), "null") {
			t.Errorf("Render(%s) emitted null:\n%s", format, data)
		}
		if _, err := parser.ParseBytes(data, format, nil); err != nil {
			t.Errorf("ParseBytes(%s) failed: %v\n%s", format, err, data)
		}
	}
}

func TestRenderJS(t *testing.T) {
	data, err := Render(site.Default(), site.FormatJS)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `module.exports = {
  title: 'Laravel',
  description: 'Aprende a utilizar Laravel en tus proyectos web',
  base: '/tutorial-laravel/',
  locales: {
    '/': {
      lang: 'es-ES'
    }
  },
  themeConfig: {
    nav: [
      { text: 'Guía', link: '/' },
      { text: 'Youtube', link: 'https://youtube.com/bluuweb' }
    ],
    sidebar: [
      '/',
      '/bases-datos/',
      '/auth/',
      '/vue/',
      '/trucos/',
      '/db-relacional/',
      '/factorias/',
      '/api-rest/'
    ]
  }
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("config.js mismatch (-want +got):\n%s", diff)
	}
}

func TestJSString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", `'plain'`},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"two\nlines", `'two\nlines'`},
		{"Guía", `'Guía'`},
		{"bell\a", `'bell\u0007'`},
	}

	for _, tt := range tests {
		result := jsString(tt.input)
		if result != tt.expected {
			t.Errorf("jsString(%q) = %s, expected %s", tt.input, result, tt.expected)
		}
	}
}
