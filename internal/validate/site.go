package validate

import (
	"fmt"

	"github.com/mdwit/sitecfg/internal/site"
)

// Site проверяет конфигурацию целиком и возвращает все найденные нарушения.
// Порядок ошибок детерминирован: title, base, locales (по ключу), nav, sidebar.
func Site(cfg site.Config) error {
	v := New()

	v.NotEmpty("title", cfg.Title)
	v.Base("base", cfg.Base)

	for _, prefix := range cfg.LocalePrefixes() {
		loc := cfg.Locales[prefix]
		v.PathPrefix(fmt.Sprintf("locales[%q]", prefix), prefix)
		v.LanguageTag(fmt.Sprintf("locales[%q].lang", prefix), loc.Lang)
	}

	for i, item := range cfg.ThemeConfig.Nav {
		v.NotEmpty(fmt.Sprintf("themeConfig.nav[%d].text", i), item.Text)
		v.Link(fmt.Sprintf("themeConfig.nav[%d].link", i), item.Link)
	}

	for i, path := range cfg.ThemeConfig.Sidebar {
		v.InternalPath(fmt.Sprintf("themeConfig.sidebar[%d]", i), path)
	}

	return v.Err()
}
