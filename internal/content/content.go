// Package content сопоставляет пути сайдбара с markdown-страницами в каталоге документации.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mdwit/sitecfg/internal/site"
	"github.com/mdwit/sitecfg/internal/validate"
)

// ErrOutsideRoot возвращается для путей, выходящих за пределы каталога документации
var ErrOutsideRoot = errors.New("path escapes docs directory")

// ErrNotFound возвращается, если для пути нет markdown-файла
var ErrNotFound = errors.New("content page not found")

// indexFiles имена файлов, которые обслуживают путь вида "/dir/"
var indexFiles = []string{"README.md", "index.md"}

// Page страница, на которую ссылается сайдбар
type Page struct {
	Path  string // путь из сайдбара, например "/auth/"
	File  string // markdown-файл на диске
	Title string
}

// FileFor возвращает markdown-файл для пути сайта:
// "/" и "/dir/" -> dir/README.md или dir/index.md, "/page" и "/page.html" -> page.md
func FileFor(dir, sitePath string) (string, error) {
	for _, seg := range strings.Split(sitePath, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%s: %w", sitePath, ErrOutsideRoot)
		}
	}

	clean := path.Clean("/" + sitePath)
	if strings.HasSuffix(sitePath, "/") && clean != "/" {
		clean += "/"
	}

	var candidates []string
	if strings.HasSuffix(clean, "/") {
		for _, name := range indexFiles {
			candidates = append(candidates, path.Join(clean, name))
		}
	} else {
		base := strings.TrimSuffix(clean, ".html")
		base = strings.TrimSuffix(base, ".md")
		candidates = append(candidates, base+".md")
	}

	for _, candidate := range candidates {
		file, err := confine(dir, candidate)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(file)
		if err == nil && info.Mode().IsRegular() {
			return file, nil
		}
	}
	return "", fmt.Errorf("%s: %w (looked for %s)", sitePath, ErrNotFound, strings.Join(candidates, ", "))
}

// confine склеивает rel с root и проверяет, что результат не выходит за root
func confine(root, rel string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	r, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rel, err)
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", rel, ErrOutsideRoot)
	}
	return target, nil
}

// Resolve находит страницу для каждого пути сайдбара.
// Отсутствующие страницы собираются в validate.ValidationError; найденные возвращаются в любом случае.
func Resolve(dir string, cfg site.Config) ([]Page, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("docs directory %s is not a directory", dir)
	}

	caser := cases.Title(rootTag(cfg))
	v := validate.New()
	pages := make([]Page, 0, len(cfg.ThemeConfig.Sidebar))

	for i, p := range cfg.ThemeConfig.Sidebar {
		field := fmt.Sprintf("themeConfig.sidebar[%d]", i)

		file, err := FileFor(dir, p)
		if err != nil {
			v.AddError(field, err.Error(), p)
			continue
		}

		title, err := Title(file)
		if err != nil {
			v.AddError(field, err.Error(), p)
			continue
		}
		if title == "" {
			title = titleFromPath(caser, p, cfg.Title)
		}

		pages = append(pages, Page{Path: p, File: file, Title: title})
	}

	return pages, v.Err()
}

// FromSidebar строит страницы без обращения к диску, заголовки берутся из путей
func FromSidebar(cfg site.Config) []Page {
	caser := cases.Title(rootTag(cfg))
	pages := make([]Page, 0, len(cfg.ThemeConfig.Sidebar))
	for _, p := range cfg.ThemeConfig.Sidebar {
		pages = append(pages, Page{Path: p, Title: titleFromPath(caser, p, cfg.Title)})
	}
	return pages
}

// Title читает заголовок страницы: title из front matter, иначе первый заголовок первого уровня.
// Пустая строка означает, что заголовка нет.
func Title(file string) (string, error) {
	// #nosec G304 -- файл найден внутри каталога документации
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	var matter struct {
		Title string `yaml:"title" toml:"title" json:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		// битый front matter не мешает взять заголовок из текста
		body = data
	}
	if t := strings.TrimSpace(matter.Title); t != "" {
		return t, nil
	}

	return firstHeading(body), nil
}

func firstHeading(source []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(h.Text(source)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func titleFromPath(caser cases.Caser, p, fallback string) string {
	name := path.Base(strings.TrimSuffix(strings.TrimSuffix(p, "/"), ".html"))
	if name == "" || name == "/" || name == "." {
		return fallback
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return caser.String(name)
}

func rootTag(cfg site.Config) language.Tag {
	tag, err := language.Parse(cfg.RootLang())
	if err != nil {
		return language.Und
	}
	return tag
}
