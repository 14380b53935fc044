// Package reminder находит заказы, до забора которых осталось 7, 2 или 0 дней,
// и публикует по каждому из них напоминание.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

// ReminderDays дни до забора, в которые отправляется напоминание.
var ReminderDays = []int{7, 2, 0}

// Qualifies сообщает, нужно ли напоминание при delta днях до забора.
func Qualifies(delta int) bool {
	return slices.Contains(ReminderDays, delta)
}

// OrderRepository источник активных заказов.
type OrderRepository interface {
	ListActive(ctx context.Context) ([]*models.Order, error)
}

// Publisher доставляет напоминание дальше по конвейеру.
type Publisher interface {
	Publish(ctx context.Context, message any) error
}

// Result итог одного прохода.
type Result struct {
	Scanned int
	Emitted int
	Failed  int
}

// Scanner не хранит состояния между проходами: повторный запуск в тот же день
// выпустит те же напоминания.
type Scanner struct {
	repo      OrderRepository
	publisher Publisher
	log       *slog.Logger
}

// NewScanner создает новый экземпляр Scanner.
func NewScanner(repo OrderRepository, publisher Publisher, log *slog.Logger) *Scanner {
	return &Scanner{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Scan проходит по активным заказам относительно дня today. Ошибка чтения
// хранилища прерывает проход, ошибка публикации по одному заказу только учитывается.
func (s *Scanner) Scan(ctx context.Context, today calendar.Date) (Result, error) {
	const op = "services.reminder.Scan"
	log := s.log.With(slog.String("op", op), slog.String("today", today.String()))

	log.Info("starting reminder scan")
	orders, err := s.repo.ListActive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	var res Result
	for _, order := range orders {
		res.Scanned++
		delta := calendar.DaysBetween(today, order.DatePickup)
		if !Qualifies(delta) {
			continue
		}

		reminder := models.Reminder{
			OwnerID:    order.OwnerID,
			OrderID:    order.ID,
			Title:      order.Title,
			DatePickup: order.DatePickup,
			DaysLeft:   delta,
		}
		if err := s.publisher.Publish(ctx, reminder); err != nil {
			res.Failed++
			metrics.RemindersFailedTotal.Inc()
			log.Error("failed to publish reminder", sl.OrderID(order.ID), sl.Err(err))
			continue
		}
		res.Emitted++
		metrics.RemindersEmittedTotal.WithLabelValues(strconv.Itoa(delta)).Inc()
	}

	metrics.ReminderScansTotal.Inc()
	log.Info("reminder scan finished",
		slog.Int("scanned", res.Scanned),
		slog.Int("emitted", res.Emitted),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}
