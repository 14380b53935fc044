package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation базовая ошибка некорректных входных данных заказа.
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound возвращается, если заказа с таким ID нет.
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError описывает некорректное поле заказа.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrValidation через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
