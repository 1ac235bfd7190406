package site

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format формат файла конфигурации
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats перечисляет поддерживаемые форматы
var Formats = []Format{FormatJS, FormatJSON, FormatYAML}

// ParseFormat разбирает имя формата (js, json, yaml, yml)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js", "javascript", "mjs", "cjs":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected js, json or yaml)", s)
}

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Filename возвращает имя файла, под которым генератор сайта ищет конфигурацию
func (f Format) Filename() string {
	switch f {
	case FormatJSON:
		return "config.json"
	case FormatYAML:
		return "config.yml"
	default:
		return "config.js"
	}
}

func (f Format) String() string {
	return string(f)
}
