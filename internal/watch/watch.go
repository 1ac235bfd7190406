// Package watch следит за файлами конфигурации и документации
// и вызывает обработчик после серии изменений.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mdwit/sitecfg/internal/log"
)

// DefaultDebounce пауза после последнего события перед вызовом обработчика
const DefaultDebounce = 500 * time.Millisecond

// Watcher вызывает OnChange, когда отслеживаемые пути перестают меняться на Debounce
type Watcher struct {
	Paths    []string // файлы и каталоги (каталоги отслеживаются рекурсивно)
	Debounce time.Duration
	OnChange func(event fsnotify.Event)
}

// Run блокируется до отмены ctx. OnChange вызывается из горутины Run,
// поэтому вызовы никогда не пересекаются.
func (w *Watcher) Run(ctx context.Context) error {
	logger := log.WithComponent("watch")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	var roots []root
	for _, p := range w.Paths {
		r, err := newRoot(p)
		if err != nil {
			return err
		}
		if err := addRecursive(fw, p); err != nil {
			return err
		}
		roots = append(roots, r)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// fire хранит не больше одного отложенного события
	fire := make(chan fsnotify.Event, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-fire:
			w.OnChange(ev)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !matches(roots, event.Name) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addRecursive(fw, event.Name); err != nil {
					logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
				}
			}

			if timer != nil {
				timer.Stop()
			}
			ev := event
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- ev:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// root отслеживаемый путь: файл совпадает только сам с собой,
// каталог со всем своим содержимым.
type root struct {
	path  string
	isDir bool
}

func newRoot(p string) (root, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return root{}, fmt.Errorf("cannot watch %s: %w", p, err)
	}
	return root{path: abs, isDir: isDir(abs)}, nil
}

func matches(roots []root, name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, r := range roots {
		if abs == r.path {
			return true
		}
		if !r.isDir {
			continue
		}
		rel, err := filepath.Rel(r.path, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addRecursive добавляет файл или каталог со всеми подкаталогами.
// Для файла отслеживается его каталог: редакторы часто заменяют файл переименованием,
// лишние события отсекает matches.
func addRecursive(fw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fw.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
