package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/mdwit/sitecfg/internal/config"
	"github.com/mdwit/sitecfg/internal/content"
	"github.com/mdwit/sitecfg/internal/log"
	"github.com/mdwit/sitecfg/internal/site"
)

// LLMsFilename имя индексного файла для LLM-агентов
const LLMsFilename = "llms.txt"

// Generator пишет конфигурацию сайта и llms.txt в выходной каталог
type Generator struct {
	cfg   *config.Config
	site  *site.Config
	pages []content.Page
}

// New создаёт новый генератор. Если pages пуст, страницы строятся из сайдбара.
func New(cfg *config.Config, s *site.Config, pages []content.Page) *Generator {
	if len(pages) == 0 {
		pages = content.FromSidebar(*s)
	}
	return &Generator{cfg: cfg, site: s, pages: pages}
}

// Generate пишет файл конфигурации и, если включено, llms.txt
func (g *Generator) Generate() error {
	if _, err := g.WriteConfig(); err != nil {
		return err
	}
	if g.cfg.LLMs {
		if _, err := g.WriteLLMs(); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfig пишет конфигурацию в формате cfg.Format и возвращает путь к файлу
func (g *Generator) WriteConfig() (string, error) {
	format, err := g.cfg.SiteFormat()
	if err != nil {
		return "", err
	}

	data, err := Render(*g.site, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(g.cfg.Output, format.Filename())
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger := log.WithComponent("generator")
	logger.Info().
		Str("path", path).
		Str("format", format.String()).
		Msg("wrote site config")
	return path, nil
}

// WriteLLMs пишет llms.txt и возвращает путь к файлу
func (g *Generator) WriteLLMs() (string, error) {
	path := filepath.Join(g.cfg.Output, LLMsFilename)
	if err := writeFile(path, []byte(g.generateLLMs())); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", LLMsFilename, err)
	}

	logger := log.WithComponent("generator")
	logger.Info().
		Str("path", path).
		Int("pages", len(g.pages)).
		Msg("wrote llms.txt")
	return path, nil
}

func (g *Generator) generateLLMs() string {
	var sb strings.Builder

	// Заголовок
	sb.WriteString("# " + g.site.Title + "\n\n")

	// Описание
	if g.site.Description != "" {
		sb.WriteString("> " + g.site.Description + "\n\n")
	}

	if lang := g.site.RootLang(); lang != "" {
		sb.WriteString("Language: " + lang + "\n\n")
	}
	sb.WriteString("Base URL: `" + g.pageLink("/") + "`\n\n")

	// Страницы в порядке сайдбара
	sb.WriteString("## Docs\n\n")
	for _, p := range g.pages {
		sb.WriteString(fmt.Sprintf("- [%s](%s)\n", p.Title, g.pageLink(p.Path)))
	}

	// Внешние ссылки из навигации
	var external []site.NavItem
	for _, item := range g.site.ThemeConfig.Nav {
		if item.IsExternal() {
			external = append(external, item)
		}
	}
	if len(external) > 0 {
		sb.WriteString("\n## Links\n\n")
		for _, item := range external {
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", item.Text, item.Link))
		}
	}

	return sb.String()
}

// pageLink возвращает ссылку на страницу с учётом base и docsBaseUrl
func (g *Generator) pageLink(path string) string {
	return strings.TrimSuffix(g.cfg.DocsBaseURL, "/") + g.site.PageURL(path)
}

// writeFile пишет файл атомарно: временный файл, fsync, rename
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger := log.WithComponent("generator")
			logger.Debug().Err(err).Str("path", path).Msg("cleanup pending file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace file: %w", err)
	}
	return nil
}
