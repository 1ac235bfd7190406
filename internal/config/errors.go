package config

import "errors"

var (
	// ErrOutputRequired выходной каталог не задан
	ErrOutputRequired = errors.New("output directory is required")
	// ErrUnknownFormat формат экспорта не поддерживается
	ErrUnknownFormat = errors.New("unknown export format")
)
