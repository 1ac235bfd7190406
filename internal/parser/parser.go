package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mdwit/sitecfg/internal/schema"
	"github.com/mdwit/sitecfg/internal/site"
	"github.com/mdwit/sitecfg/internal/validate"
)

// maxRemoteSize ограничивает размер конфигурации, скачиваемой по URL
const maxRemoteSize = 1 << 20

// ErrTooLarge возвращается, если удалённая конфигурация больше maxRemoteSize
var ErrTooLarge = errors.New("config too large")

// ParseOptions опции парсинга
type ParseOptions struct {
	Format         site.Format // если пусто, определяется по расширению или Content-Type
	SkipValidation bool
}

// Parse парсит конфигурацию сайта из файла или URL
func Parse(ctx context.Context, source string, opts *ParseOptions) (*site.Config, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}

	var (
		data   []byte
		format site.Format
		err    error
	)

	if isURL(source) {
		data, format, err = loadFromURL(ctx, source)
	} else {
		data, format, err = loadFromFile(source)
	}
	if err != nil {
		if opts.Format == "" || data == nil {
			return nil, err
		}
	}
	if opts.Format != "" {
		format = opts.Format
	}

	cfg, err := ParseBytes(data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// ParseBytes парсит конфигурацию в заданном формате.
// Документ проверяется по схеме, декодируется строго (неизвестные поля запрещены)
// и проверяется на инварианты, если не задан SkipValidation.
func ParseBytes(data []byte, format site.Format, opts *ParseOptions) (*site.Config, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}

	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s config: %w", format, err)
		}
		if err := schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("%w\n\nUse --skip-validation to ignore validation errors", err)
		}
	}

	var cfg site.Config
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s config: %w", format, err)
	}

	if !opts.SkipValidation {
		if err := validate.Site(cfg); err != nil {
			return nil, fmt.Errorf("invalid site config: %w\n\nUse --skip-validation to ignore validation errors", err)
		}
	}

	return &cfg, nil
}

// toJSON приводит документ любого поддерживаемого формата к JSON
func toJSON(data []byte, format site.Format) ([]byte, error) {
	switch format {
	case site.FormatJSON:
		if !json.Valid(data) {
			var v any
			err := json.Unmarshal(data, &v)
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return data, nil

	case site.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return []byte("null"), nil
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config file contains multiple documents or trailing content")
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("unsupported YAML content: %w", err)
		}
		return out, nil

	case site.FormatJS:
		out, err := jsToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("invalid JS config: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func loadFromFile(path string) ([]byte, site.Format, error) {
	// #nosec G304 -- путь к конфигурации задаёт пользователь
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	format, err := site.FormatFromPath(path)
	if err != nil {
		return data, "", err
	}
	return data, format, nil
}

func loadFromURL(ctx context.Context, rawURL string) ([]byte, site.Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > maxRemoteSize {
		return nil, "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, rawURL, maxRemoteSize)
	}

	// Определяем формат по расширению или Content-Type
	if format, err := site.FormatFromPath(u.Path); err == nil {
		return data, format, nil
	}
	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "yaml"):
		return data, site.FormatYAML, nil
	case strings.Contains(contentType, "json"):
		return data, site.FormatJSON, nil
	case strings.Contains(contentType, "javascript"):
		return data, site.FormatJS, nil
	}
	return data, "", fmt.Errorf("cannot detect config format of %s (Content-Type %q)", rawURL, contentType)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
