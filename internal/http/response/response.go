// Package response формирует единый JSON-конверт ответов административного API.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response стандартный ответ: Status "OK" или "Error", текст ошибки либо данные.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError собирает нарушения валидации в одну строку через "; ".
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describe(fe))
	}
	return Error(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must not be empty"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fe.Field() + " must be a date in DD.MM.YYYY format"
	}
	return fe.Field() + " is invalid"
}
