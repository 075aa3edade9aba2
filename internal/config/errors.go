package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда файл конфигурации не найден
	ErrConfigNotFound = errors.New("config: file not found")

	// ErrParseConfig возвращается при ошибке разбора TOML
	ErrParseConfig = errors.New("config: failed to parse file")

	// ErrParseEnv возвращается при ошибке разбора переменных окружения
	ErrParseEnv = errors.New("config: failed to parse environment")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
