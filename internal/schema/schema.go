// Package schema описывает структуру конфигурации сайта как OpenAPI-схему
// и проверяет по ней сырые документы до декодирования в site.Config.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// RootSchema имя компонента, описывающего конфигурацию целиком
const RootSchema = "SiteConfig"

//go:embed site.yaml
var document []byte

var (
	loadOnce sync.Once
	root     *openapi3.Schema
	loadErr  error
)

// Document возвращает исходный текст схемы (OpenAPI 3, YAML)
func Document() []byte {
	return append([]byte(nil), document...)
}

func load() (*openapi3.Schema, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(document)
		if err != nil {
			loadErr = fmt.Errorf("failed to load site schema: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			loadErr = fmt.Errorf("invalid site schema: %w", err)
			return
		}
		if doc.Components == nil {
			loadErr = fmt.Errorf("site schema has no components")
			return
		}

		ref, ok := doc.Components.Schemas[RootSchema]
		if !ok || ref == nil || ref.Value == nil {
			loadErr = fmt.Errorf("site schema has no %s component", RootSchema)
			return
		}
		root = ref.Value
	})
	return root, loadErr
}

// Validate проверяет документ, декодированный в JSON-совместимые значения
// (map[string]any, []any, string, float64, bool, nil), и возвращает все нарушения сразу.
func Validate(doc any) error {
	s, err := load()
	if err != nil {
		return err
	}

	if err := s.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("configuration does not match schema: %w", err)
	}
	return nil
}
