// Package bot ведёт диалог с владельцем картин: главное меню, пошаговое
// внесение заказа и список заказов с выгрузкой в Excel.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/studio-orders/internal/export"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/models"
	"github.com/magabrotheeeer/studio-orders/internal/telegram"
)

// OrderService операции над заказами, нужные диалогу.
type OrderService interface {
	Preview(title, dateTransfer string, months int) (*models.Order, error)
	Create(ctx context.Context, in models.NewOrderInput) (*models.Order, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error)
}

// Messenger отправка сообщений в чат.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendMenu(ctx context.Context, chatID int64, text string) error
	SendPrompt(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
}

// Sessions хранилище состояния мастера.
type Sessions interface {
	Load(ctx context.Context, chatID int64) (Session, error)
	Save(ctx context.Context, chatID int64, sess Session) error
	Clear(ctx context.Context, chatID int64) error
}

type Bot struct {
	orders         OrderService
	sessions       Sessions
	messenger      Messenger
	exportFilename string
	log            *slog.Logger
}

// New создаёт контроллер диалога.
func New(orders OrderService, sessions Sessions, messenger Messenger, exportFilename string, log *slog.Logger) *Bot {
	return &Bot{
		orders:         orders,
		sessions:       sessions,
		messenger:      messenger,
		exportFilename: exportFilename,
		log:            log,
	}
}

// Run обрабатывает входящие сообщения до закрытия канала или отмены ctx.
// Ошибка одного сообщения не останавливает обработку остальных.
func (b *Bot) Run(ctx context.Context, updates <-chan telegram.Incoming) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-updates:
			if !ok {
				return
			}
			if err := b.Handle(ctx, in); err != nil {
				b.log.Error("failed to handle message", sl.OwnerID(in.ChatID), sl.Err(err))
			}
		}
	}
}

// Handle обрабатывает одно сообщение. Команды меню работают на любом шаге
// мастера, остальной текст трактуется как ответ на текущий вопрос.
func (b *Bot) Handle(ctx context.Context, in telegram.Incoming) error {
	const op = "bot.Handle"
	text := strings.TrimSpace(in.Text)

	var err error
	switch text {
	case cmdStart:
		err = b.start(ctx, in.ChatID)
	case cmdHelp:
		err = b.messenger.SendText(ctx, in.ChatID, textHelp)
	case telegram.ButtonNewOrder:
		err = b.beginWizard(ctx, in.ChatID, textAskTitle)
	case telegram.ButtonMyOrders:
		err = b.listOrders(ctx, in.ChatID)
	default:
		err = b.continueWizard(ctx, in.ChatID, text)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (b *Bot) start(ctx context.Context, chatID int64) error {
	if err := b.sessions.Clear(ctx, chatID); err != nil {
		return err
	}
	return b.messenger.SendMenu(ctx, chatID, textGreeting)
}

func (b *Bot) beginWizard(ctx context.Context, chatID int64, prompt string) error {
	if err := b.sessions.Save(ctx, chatID, Session{State: StateWaitingTitle}); err != nil {
		return err
	}
	return b.messenger.SendPrompt(ctx, chatID, prompt)
}

func (b *Bot) continueWizard(ctx context.Context, chatID int64, text string) error {
	sess, err := b.sessions.Load(ctx, chatID)
	if err != nil {
		return err
	}

	switch sess.State {
	case StateWaitingTitle:
		return b.onTitle(ctx, chatID, sess, text)
	case StateWaitingDate:
		return b.onDate(ctx, chatID, sess, text)
	case StateWaitingMonths:
		return b.onMonths(ctx, chatID, sess, text)
	case StateWaitingConfirm:
		return b.onConfirm(ctx, chatID, sess, text)
	default:
		return b.messenger.SendMenu(ctx, chatID, textUnknown)
	}
}

func (b *Bot) onTitle(ctx context.Context, chatID int64, sess Session, text string) error {
	if text == "" {
		return b.messenger.SendText(ctx, chatID, textEmptyTitle)
	}
	sess.Title = text
	sess.State = StateWaitingDate
	if err := b.sessions.Save(ctx, chatID, sess); err != nil {
		return err
	}
	return b.messenger.SendText(ctx, chatID, textAskDate)
}

func (b *Bot) onDate(ctx context.Context, chatID int64, sess Session, text string) error {
	// Preview с заведомо корректными остальными полями проверяет только дату.
	if _, err := b.orders.Preview(sess.Title, text, 1); err != nil {
		return b.messenger.SendText(ctx, chatID, textBadDate)
	}
	sess.DateTransfer = text
	sess.State = StateWaitingMonths
	if err := b.sessions.Save(ctx, chatID, sess); err != nil {
		return err
	}
	return b.messenger.SendText(ctx, chatID, textAskMonths)
}

// ParseMonths берёт первое слово ответа как целое число месяцев: "3", "3 мес".
func ParseMonths(text string) (int, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	months, err := strconv.Atoi(fields[0])
	if err != nil || months <= 0 {
		return 0, false
	}
	return months, true
}

func (b *Bot) onMonths(ctx context.Context, chatID int64, sess Session, text string) error {
	months, ok := ParseMonths(text)
	if !ok {
		return b.messenger.SendText(ctx, chatID, textBadMonths)
	}
	preview, err := b.orders.Preview(sess.Title, sess.DateTransfer, months)
	if err != nil {
		return b.messenger.SendText(ctx, chatID, textBadMonths)
	}

	sess.Months = months
	sess.State = StateWaitingConfirm
	if err := b.sessions.Save(ctx, chatID, sess); err != nil {
		return err
	}
	confirm := fmt.Sprintf(textConfirm, sess.Title, sess.DateTransfer, months, preview.DatePickup)
	return b.messenger.SendText(ctx, chatID, confirm)
}

// IsConfirmation распознаёт "Все верно" без учёта регистра, кавычек и буквы ё.
func IsConfirmation(text string) bool {
	clean := strings.NewReplacer(`"`, "", "«", "", "»", "").Replace(strings.ToLower(text))
	clean = strings.TrimSpace(clean)
	return clean == "все верно" || clean == "всё верно"
}

func (b *Bot) onConfirm(ctx context.Context, chatID int64, sess Session, text string) error {
	if strings.EqualFold(text, cmdNew) {
		return b.beginWizard(ctx, chatID, textRestart)
	}
	if !IsConfirmation(text) {
		return b.messenger.SendText(ctx, chatID, textReconfirm)
	}

	order, err := b.orders.Create(ctx, models.NewOrderInput{
		OwnerID:      chatID,
		Title:        sess.Title,
		DateTransfer: sess.DateTransfer,
		Months:       sess.Months,
	})
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			_ = b.sessions.Clear(ctx, chatID)
		}
		if sendErr := b.messenger.SendMenu(ctx, chatID, textSaveFailed); sendErr != nil {
			b.log.Error("failed to report save error", sl.Err(sendErr))
		}
		return err
	}
	metrics.OrdersCreatedTotal.Inc()

	if err := b.sessions.Clear(ctx, chatID); err != nil {
		b.log.Warn("failed to clear session", sl.OwnerID(chatID), sl.Err(err))
	}
	return b.messenger.SendMenu(ctx, chatID, fmt.Sprintf(textSaved, order.Title, order.DatePickup))
}

func (b *Bot) listOrders(ctx context.Context, chatID int64) error {
	orders, err := b.orders.ListByOwner(ctx, chatID)
	if err != nil {
		if sendErr := b.messenger.SendMenu(ctx, chatID, textListFailed); sendErr != nil {
			b.log.Error("failed to report list error", sl.Err(sendErr))
		}
		return err
	}
	if len(orders) == 0 {
		return b.messenger.SendMenu(ctx, chatID, textNoOrders)
	}

	lines := []string{textOrdersHeader}
	for i, o := range orders {
		lines = append(lines, fmt.Sprintf(textOrderLine, i+1, o.Title, o.DatePickup))
	}
	if err := b.messenger.SendText(ctx, chatID, strings.Join(lines, "\n")); err != nil {
		return err
	}

	data, err := export.OrdersXLSX(orders)
	if err != nil {
		return err
	}
	return b.messenger.SendDocument(ctx, chatID, b.exportFilename, data, textExportNote)
}
