// Package sl содержит вспомогательные функции для формирования
// структурированных полей логов slog: ошибки, заказа и владельца.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to save order", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// OrderID возвращает поле с идентификатором заказа.
func OrderID(id int64) slog.Attr {
	return slog.Int64("order_id", id)
}

// OwnerID возвращает поле с идентификатором чата владельца.
func OwnerID(id int64) slog.Attr {
	return slog.Int64("owner_id", id)
}
