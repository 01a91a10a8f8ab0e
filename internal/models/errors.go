package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema - во входной таблице нет обязательных колонок
	ErrSchema = errors.New("required columns not found")
	// ErrDataUnavailable - таблицу ожидаемых часов не удалось получить ни из API, ни из снимка
	ErrDataUnavailable = errors.New("expected hours data unavailable")
	// ErrPersistence - не удалось записать результат
	ErrPersistence = errors.New("report could not be saved")

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyWorkbook     = errors.New("worksheet is empty")
)

// SchemaError перечисляет отсутствующие колонки
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// PersistenceError - ошибка записи файла отчета с исходной причиной
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s to %s: %v", ErrPersistence, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
