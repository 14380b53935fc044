// Package models содержит доменные структуры заказа на хранение картины,
// типизированное частичное обновление заказа и событие напоминания о заборе.
package models

import (
	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
)

// Status статус заказа.
type Status string

const (
	// StatusActive картина на хранении, заказ виден в списках и напоминаниях.
	StatusActive Status = "active"
	// StatusPickedUp картину забрали.
	StatusPickedUp Status = "picked_up"
	// StatusCancelled заказ отменён.
	StatusCancelled Status = "cancelled"
)

// Valid проверяет, что статус входит в допустимый набор.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPickedUp, StatusCancelled:
		return true
	}
	return false
}

// Order представляет картину, переданную в студию на хранение.
// DatePickup всегда равна DateTransfer + Months месяцев.
type Order struct {
	ID           int64         `json:"id"`
	OwnerID      int64         `json:"owner_id"`      // Идентификатор чата владельца
	Title        string        `json:"title"`         // Название картины
	DateTransfer calendar.Date `json:"date_transfer"` // Дата передачи в студию
	Months       int           `json:"months"`        // Срок хранения в месяцах
	DatePickup   calendar.Date `json:"date_pickup"`   // Дата, когда нужно забрать
	Status       Status        `json:"status"`
}

// NewOrderInput данные нового заказа в том виде, в котором их вводит пользователь.
type NewOrderInput struct {
	OwnerID      int64
	Title        string
	DateTransfer string // ДД.ММ.ГГГГ
	Months       int
}

// OrderUpdate частичное обновление заказа. Изменяются только заданные (не nil) поля,
// других изменяемых полей у заказа нет.
type OrderUpdate struct {
	Title        *string
	DateTransfer *calendar.Date
	Months       *int
	DatePickup   *calendar.Date
	Status       *Status
}

// IsEmpty сообщает, что обновление не меняет ни одного поля.
func (u OrderUpdate) IsEmpty() bool {
	return u.Title == nil && u.DateTransfer == nil && u.Months == nil &&
		u.DatePickup == nil && u.Status == nil
}

// Reminder событие напоминания о скором заборе картины.
type Reminder struct {
	OwnerID    int64         `json:"owner_id"`
	OrderID    int64         `json:"order_id"`
	Title      string        `json:"title"`
	DatePickup calendar.Date `json:"date_pickup"`
	DaysLeft   int           `json:"days_left"`
}
