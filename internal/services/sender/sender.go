// Package sender доставляет напоминания о заборе картин владельцам в чат.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

var (
	// ErrUnsupportedDelta напоминание с числом дней, для которого нет текста.
	ErrUnsupportedDelta = errors.New("unsupported days left")
	// ErrMalformedMessage тело сообщения не разбирается как напоминание.
	ErrMalformedMessage = errors.New("malformed reminder message")
)

// Messenger отправляет текст в чат.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type SenderService struct {
	messenger Messenger
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService. rps ограничивает
// частоту отправки, при rps <= 0 ограничения нет.
func NewSenderService(messenger Messenger, rps float64, log *slog.Logger) *SenderService {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &SenderService{
		messenger: messenger,
		limiter:   rate.NewLimiter(limit, 1),
		log:       log,
	}
}

// RenderReminder возвращает текст напоминания для 7, 2 и 0 дней до забора.
func RenderReminder(r models.Reminder) (string, error) {
	var head string
	switch r.DaysLeft {
	case 7:
		head = fmt.Sprintf("Напоминание: через 7 дней нужно забрать картину \"%s\".", r.Title)
	case 2:
		head = fmt.Sprintf("Напоминание: через 2 дня нужно забрать картину \"%s\".", r.Title)
	case 0:
		head = fmt.Sprintf("Сегодня крайний день забрать картину \"%s\".", r.Title)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDelta, r.DaysLeft)
	}
	return head + "\nДата забора: " + r.DatePickup.String(), nil
}

// SendReminder разбирает сообщение очереди и отправляет напоминание владельцу.
func (s *SenderService) SendReminder(ctx context.Context, body []byte) error {
	const op = "services.sender.SendReminder"

	var reminder models.Reminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedMessage, err)
	}

	text, err := RenderReminder(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.messenger.SendText(ctx, reminder.OwnerID, text); err != nil {
		s.log.Error("failed to deliver reminder",
			sl.OrderID(reminder.OrderID), sl.OwnerID(reminder.OwnerID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.RemindersDeliveredTotal.Inc()
	s.log.Info("reminder delivered",
		sl.OrderID(reminder.OrderID),
		sl.OwnerID(reminder.OwnerID),
		slog.Int("days_left", reminder.DaysLeft),
	)
	return nil
}

// Handler возвращает обработчик для потребителя очереди. Любая неудачная
// доставка логируется и подтверждается: повтор заблокированного чата ничего
// не даст, а повторно доставленный текст уже устарел бы. В очередь сообщение
// возвращается только при остановке процесса.
func (s *SenderService) Handler(ctx context.Context) func([]byte) error {
	return func(body []byte) error {
		err := s.SendReminder(ctx, body)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		s.log.Warn("dropping reminder", sl.Err(err))
		return nil
	}
}
