package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mdwit/sitecfg/internal/site"
)

// Render сериализует конфигурацию в заданный формат.
// Порядок nav и sidebar сохраняется, ключи locales сортируются.
func Render(cfg site.Config, format site.Format) ([]byte, error) {
	switch format {
	case site.FormatJS:
		return renderJS(cfg), nil
	case site.FormatJSON:
		return renderJSON(cfg)
	case site.FormatYAML:
		return renderYAML(cfg)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func renderJSON(cfg site.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func renderYAML(cfg site.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize заменяет nil-коллекции пустыми, чтобы в выводе были {} и [], а не null
func normalize(cfg site.Config) site.Config {
	out := cfg.Clone()
	if out.Locales == nil {
		out.Locales = map[string]site.Locale{}
	}
	if out.ThemeConfig.Nav == nil {
		out.ThemeConfig.Nav = []site.NavItem{}
	}
	if out.ThemeConfig.Sidebar == nil {
		out.ThemeConfig.Sidebar = []string{}
	}
	return out
}

// renderJS пишет модуль в том виде, в каком его читает VuePress (.vuepress/config.js)
func renderJS(cfg site.Config) []byte {
	var sb strings.Builder

	sb.WriteString("module.exports = {\n")
	sb.WriteString("  title: " + jsString(cfg.Title) + ",\n")
	sb.WriteString("  description: " + jsString(cfg.Description) + ",\n")
	sb.WriteString("  base: " + jsString(cfg.Base) + ",\n")

	// Локали
	prefixes := cfg.LocalePrefixes()
	if len(prefixes) == 0 {
		sb.WriteString("  locales: {},\n")
	} else {
		sb.WriteString("  locales: {\n")
		for i, prefix := range prefixes {
			sb.WriteString("    " + jsString(prefix) + ": {\n")
			sb.WriteString("      lang: " + jsString(cfg.Locales[prefix].Lang) + "\n")
			sb.WriteString("    }" + comma(i, len(prefixes)) + "\n")
		}
		sb.WriteString("  },\n")
	}

	sb.WriteString("  themeConfig: {\n")

	// Навигация
	nav := cfg.ThemeConfig.Nav
	if len(nav) == 0 {
		sb.WriteString("    nav: [],\n")
	} else {
		sb.WriteString("    nav: [\n")
		for i, item := range nav {
			sb.WriteString(fmt.Sprintf("      { text: %s, link: %s }%s\n",
				jsString(item.Text), jsString(item.Link), comma(i, len(nav))))
		}
		sb.WriteString("    ],\n")
	}

	// Сайдбар
	sidebar := cfg.ThemeConfig.Sidebar
	if len(sidebar) == 0 {
		sb.WriteString("    sidebar: []\n")
	} else {
		sb.WriteString("    sidebar: [\n")
		for i, p := range sidebar {
			sb.WriteString("      " + jsString(p) + comma(i, len(sidebar)) + "\n")
		}
		sb.WriteString("    ]\n")
	}

	sb.WriteString("  }\n")
	sb.WriteString("}\n")
	return []byte(sb.String())
}

func comma(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

// jsString возвращает строковый литерал JS в одинарных кавычках
func jsString(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			sb.WriteString(fmt.Sprintf(`\u%04x`, r))
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
