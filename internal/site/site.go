package site

import (
	"sort"
	"strings"
)

// Config представляет конфигурацию документационного сайта
type Config struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Base        string            `json:"base" yaml:"base"`
	Locales     map[string]Locale `json:"locales" yaml:"locales"`
	ThemeConfig ThemeConfig       `json:"themeConfig" yaml:"themeConfig"`
}

// Locale описывает язык для префикса пути
type Locale struct {
	Lang string `json:"lang" yaml:"lang"`
}

// ThemeConfig содержит навигацию и сайдбар
type ThemeConfig struct {
	Nav     []NavItem `json:"nav" yaml:"nav"`
	Sidebar []string  `json:"sidebar" yaml:"sidebar"`
}

// NavItem представляет пункт верхней навигации
type NavItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// IsExternal сообщает, ведёт ли ссылка за пределы сайта
func (n NavItem) IsExternal() bool {
	return strings.Contains(n.Link, "://")
}

// Clone возвращает глубокую копию конфигурации
func (c Config) Clone() Config {
	out := c
	if c.Locales != nil {
		out.Locales = make(map[string]Locale, len(c.Locales))
		for k, v := range c.Locales {
			out.Locales[k] = v
		}
	}
	if c.ThemeConfig.Nav != nil {
		out.ThemeConfig.Nav = append([]NavItem(nil), c.ThemeConfig.Nav...)
	}
	if c.ThemeConfig.Sidebar != nil {
		out.ThemeConfig.Sidebar = append([]string(nil), c.ThemeConfig.Sidebar...)
	}
	return out
}

// LocalePrefixes возвращает префиксы локалей в отсортированном порядке
func (c Config) LocalePrefixes() []string {
	prefixes := make([]string, 0, len(c.Locales))
	for prefix := range c.Locales {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// RootLang возвращает язык корневой локали ("/"), если она задана
func (c Config) RootLang() string {
	if loc, ok := c.Locales["/"]; ok {
		return loc.Lang
	}
	return ""
}

// PageURL склеивает base и путь страницы: "/tutorial-laravel/" + "/auth/" -> "/tutorial-laravel/auth/"
func (c Config) PageURL(path string) string {
	base := c.Base
	if base == "" {
		base = "/"
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
