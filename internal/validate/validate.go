// Package validate проверяет инварианты конфигурации сайта.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Error описывает одну ошибку валидации
type Error struct {
	Field   string // поле, не прошедшее проверку
	Value   any    // некорректное значение
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Validator накапливает ошибки валидации
type Validator struct {
	errors []Error
}

// ValidationError объединяет несколько ошибок валидации в одну
type ValidationError struct {
	errors []Error
}

// New создаёт новый валидатор
func New() *Validator {
	return &Validator{errors: make([]Error, 0)}
}

// AddError добавляет ошибку
func (v *Validator) AddError(field, message string, value any) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// IsValid возвращает true, если ошибок нет
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors возвращает накопленные ошибки
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err превращает накопленные ошибки в error (nil, если ошибок нет)
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors возвращает отдельные ошибки
func (e ValidationError) Errors() []Error {
	return e.errors
}

func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}
	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// NotEmpty проверяет, что строка не пустая
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "must not be empty", value)
	}
}

// Base проверяет корневой путь сайта: непустой, начинается и заканчивается на "/"
func (v *Validator) Base(field, value string) {
	if value == "" {
		v.AddError(field, "base cannot be empty", value)
		return
	}
	if !strings.HasPrefix(value, "/") || !strings.HasSuffix(value, "/") {
		v.AddError(field, "base must start and end with \"/\"", value)
	}
}

// PathPrefix проверяет ключ локали: префикс пути вида "/" или "/en/"
func (v *Validator) PathPrefix(field, value string) {
	if !strings.HasPrefix(value, "/") || !strings.HasSuffix(value, "/") {
		v.AddError(field, "locale key must be a path prefix starting and ending with \"/\"", value)
		return
	}
	if strings.Contains(value, "//") {
		v.AddError(field, "locale key must not contain empty segments", value)
	}
}

// LanguageTag проверяет, что значение является корректным тегом BCP-47
func (v *Validator) LanguageTag(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "language tag cannot be empty", value)
		return
	}
	if _, err := language.Parse(value); err != nil {
		v.AddError(field, fmt.Sprintf("invalid language tag: %v", err), value)
	}
}

// InternalPath проверяет путь внутри сайта: начинается с "/", не протокол-относительный
func (v *Validator) InternalPath(field, value string) {
	if value == "" {
		v.AddError(field, "path cannot be empty", value)
		return
	}
	if !strings.HasPrefix(value, "/") {
		v.AddError(field, "path must start with \"/\"", value)
		return
	}
	if strings.HasPrefix(value, "//") {
		v.AddError(field, "path must not be protocol-relative", value)
		return
	}
	if _, err := url.Parse(value); err != nil {
		v.AddError(field, fmt.Sprintf("invalid path: %v", err), value)
	}
}

// URL проверяет абсолютный внешний адрес вида scheme://host/...
func (v *Validator) URL(field, value string) {
	if value == "" {
		v.AddError(field, "URL cannot be empty", value)
		return
	}
	if !strings.Contains(value, "://") {
		v.AddError(field, "URL must be absolute (scheme://...)", value)
		return
	}

	u, err := url.Parse(value)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid URL: %v", err), value)
		return
	}
	if u.Scheme == "" {
		v.AddError(field, "URL must have a scheme", value)
		return
	}
	if u.Host == "" {
		v.AddError(field, "URL must have a host", value)
	}
}

// Link проверяет ссылку навигации: внутренний путь или абсолютный URL
func (v *Validator) Link(field, value string) {
	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		v.InternalPath(field, value)
		return
	}
	if strings.Contains(value, "://") {
		v.URL(field, value)
		return
	}
	v.AddError(field, "link must be an internal path (\"/...\") or an absolute URL (\"scheme://...\")", value)
}
