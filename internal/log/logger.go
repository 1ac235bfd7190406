// Package log настраивает zerolog для CLI.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config параметры глобального логгера
type Config struct {
	Level  string    // debug, info, warn, error; если пусто, SITECFG_LOGLEVEL или info
	Output io.Writer // по умолчанию os.Stderr
	Pretty bool      // человекочитаемый вывод вместо JSON
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Configure (пере)настраивает глобальный логгер
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv("SITECFG_LOGLEVEL")
	}
	if name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly}
	}

	l := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

// Base возвращает текущий логгер
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent возвращает дочерний логгер с полем component
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
