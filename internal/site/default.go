package site

// Default возвращает конфигурацию сайта туториала по Laravel.
//
// Пункт навигации "Guia" (/docs/) отключён и в конфигурацию не входит.
func Default() Config {
	return Config{
		Title:       "Laravel",
		Description: "Aprende a utilizar Laravel en tus proyectos web",
		Base:        "/tutorial-laravel/",
		Locales: map[string]Locale{
			"/": {Lang: "es-ES"},
		},
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{
				{Text: "Guía", Link: "/"},
				{Text: "Youtube", Link: "https://youtube.com/bluuweb"},
			},
			Sidebar: []string{
				"/",
				"/bases-datos/",
				"/auth/",
				"/vue/",
				"/trucos/",
				"/db-relacional/",
				"/factorias/",
				"/api-rest/",
			},
		},
	}
}
