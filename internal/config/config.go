package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mdwit/sitecfg/internal/site"
)

// EnvPrefix префикс переменных окружения (SITECFG_OUTPUT, SITECFG_FORMAT, ...)
const EnvPrefix = "SITECFG"

// Config настройки инструмента (не путать с конфигурацией сайта)
type Config struct {
	Source         string `json:"source" mapstructure:"source"`                 // файл или URL конфигурации сайта; если пусто, встроенная
	Output         string `json:"output" mapstructure:"output"`                 // каталог для config.* и llms.txt
	Format         string `json:"format" mapstructure:"format"`                 // js, json, yaml
	DocsDir        string `json:"docsDir" mapstructure:"docsDir"`               // каталог markdown-страниц
	DocsBaseURL    string `json:"docsBaseUrl" mapstructure:"docsBaseUrl"`       // хост сайта для абсолютных ссылок в llms.txt
	LogLevel       string `json:"logLevel" mapstructure:"logLevel"`             // debug, info, warn, error
	SkipValidation bool   `json:"skipValidation" mapstructure:"skipValidation"` // пропустить проверку схемы и инвариантов
	LLMs           bool   `json:"llms" mapstructure:"llms"`                     // генерировать llms.txt вместе с конфигом
}

func DefaultConfig() *Config {
	return &Config{
		Output:   "docs/.vuepress",
		Format:   string(site.FormatJS),
		LogLevel: "info",
	}
}

// Load читает настройки: значения по умолчанию -> файл -> переменные окружения.
// Если path пуст, ищется sitecfg.{json,yaml,yml} в текущем каталоге; его отсутствие не ошибка.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("source", def.Source)
	v.SetDefault("output", def.Output)
	v.SetDefault("format", def.Format)
	v.SetDefault("docsDir", def.DocsDir)
	v.SetDefault("docsBaseUrl", def.DocsBaseURL)
	v.SetDefault("logLevel", def.LogLevel)
	v.SetDefault("skipValidation", def.SkipValidation)
	v.SetDefault("llms", def.LLMs)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitecfg")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

// SiteFormat возвращает формат экспорта
func (c *Config) SiteFormat() (site.Format, error) {
	f, err := site.ParseFormat(c.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	return f, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return ErrOutputRequired
	}
	if _, err := c.SiteFormat(); err != nil {
		return err
	}
	return nil
}
