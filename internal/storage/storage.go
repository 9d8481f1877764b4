package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation помечает некорректный ввод, отклонённый до любого I/O.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound - операция адресована несуществующему id.
	ErrNotFound = errors.New("record not found")
	// ErrBackendUnavailable - удалённое хранилище недоступно (сеть, авторизация, таймаут).
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrConfiguration - запись невозможно надёжно сохранить ни в одно хранилище.
	ErrConfiguration = errors.New("storage configuration error")
	// ErrSchemaDrift - удалённая схема не содержит колонку из запроса.
	ErrSchemaDrift = errors.New("remote schema is missing a column")
)

// SchemaDriftError carries the column the remote store rejected.
type SchemaDriftError struct {
	Table  string
	Column string
}

func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("column %q does not exist in %q", e.Column, e.Table)
}

func (e *SchemaDriftError) Is(target error) bool {
	return target == ErrSchemaDrift
}

// Validation wraps a human readable reason into ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
